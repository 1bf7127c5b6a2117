package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"smartfinance/internal/domain"
	"smartfinance/internal/dto"
	"smartfinance/internal/respond"
)

type ReportService interface {
	Generate(ctx context.Context, scope domain.Scope) (*domain.PeriodReport, error)
}

type ReportController struct {
	service ReportService
	out     *respond.Writer
	logger  *zap.Logger
	now     func() time.Time
}

func NewReportController(service ReportService, logger *zap.Logger) *ReportController {
	return &ReportController{
		service: service,
		out:     respond.NewWriter(logger),
		logger:  logger,
		now:     time.Now,
	}
}

// Get serves GET /api/reports?dia=&mes=&ano=&mes_inteiro.
func (c *ReportController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	report, err := c.service.Generate(r.Context(), c.scopeFromQuery(r))
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewReportResponse(report))
}

// scopeFromQuery defaults month and year to the current ones. The day
// defaults to today unless mes_inteiro is present, and an out-of-range day
// also falls back to today.
func (c *ReportController) scopeFromQuery(r *http.Request) domain.Scope {
	q := r.URL.Query()
	now := c.now().UTC()

	month := queryInt(q.Get("mes"), int(now.Month()))
	year := queryInt(q.Get("ano"), now.Year())
	scope := domain.Scope{Month: &month, Year: &year}

	if _, wholeMonth := q["mes_inteiro"]; !wholeMonth {
		day := queryInt(q.Get("dia"), now.Day())
		if day < 1 || day > 31 {
			day = now.Day()
		}
		scope.Day = &day
	}

	return scope
}

func queryInt(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

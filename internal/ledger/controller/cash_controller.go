package controller

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"smartfinance/internal/domain"
	"smartfinance/internal/dto"
	"smartfinance/internal/respond"
)

type CashbookService interface {
	CreateManual(ctx context.Context, req dto.CashEntryRequest) (*domain.CashEntry, error)
	DeleteManual(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.CashEntry, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
}

type CashController struct {
	service CashbookService
	out     *respond.Writer
	logger  *zap.Logger
}

func NewCashController(service CashbookService, logger *zap.Logger) *CashController {
	return &CashController{
		service: service,
		out:     respond.NewWriter(logger),
		logger:  logger,
	}
}

func (c *CashController) List(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	limit, offset, err := respond.Page(r)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	entries, err := c.service.List(r.Context(), limit, offset)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	balance, err := c.service.Balance(r.Context())
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewCashEntryListResponse(entries, balance))
}

func (c *CashController) Balance(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	balance, err := c.service.Balance(r.Context())
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewBalanceResponse(balance))
}

func (c *CashController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	var req dto.CashEntryRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	entry, err := c.service.CreateManual(r.Context(), req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusCreated, dto.NewCashEntryResponse(*entry))
}

func (c *CashController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	if err := c.service.DeleteManual(r.Context(), id); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.NoContent(w)
}

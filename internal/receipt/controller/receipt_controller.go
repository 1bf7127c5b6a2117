package controller

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"smartfinance/internal/respond"
)

type ReceiptService interface {
	SaleReceipt(ctx context.Context, id int64) (string, error)
	ServiceReceipt(ctx context.Context, id int64) (string, error)
	PrintService(ctx context.Context, id int64) error
}

type ReceiptController struct {
	service ReceiptService
	out     *respond.Writer
	logger  *zap.Logger
}

func NewReceiptController(service ReceiptService, logger *zap.Logger) *ReceiptController {
	return &ReceiptController{
		service: service,
		out:     respond.NewWriter(logger),
		logger:  logger,
	}
}

func (c *ReceiptController) Sale(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, c.service.SaleReceipt)
}

func (c *ReceiptController) Service(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, c.service.ServiceReceipt)
}

func (c *ReceiptController) PrintService(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	if err := c.service.PrintService(r.Context(), id); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.NoContent(w)
}

func (c *ReceiptController) render(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (string, error)) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	text, err := fn(r.Context(), id)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, text); err != nil {
		c.logger.Error("failed to write receipt", zap.String("traceId", traceID), zap.Error(err))
	}
}

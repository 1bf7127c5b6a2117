package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"smartfinance/internal/domain"
	"smartfinance/internal/dto"
	"smartfinance/internal/respond"
)

type SaleService interface {
	Get(ctx context.Context, id int64) (*domain.Sale, error)
	List(ctx context.Context, limit, offset int) ([]domain.Sale, error)
	Create(ctx context.Context, req dto.SaleRequest) (*domain.Sale, error)
	Update(ctx context.Context, id int64, req dto.SaleUpdateRequest) (*domain.Sale, error)
	Delete(ctx context.Context, id int64) error
}

type SaleController struct {
	service SaleService
	out     *respond.Writer
	logger  *zap.Logger
}

func NewSaleController(service SaleService, logger *zap.Logger) *SaleController {
	return &SaleController{
		service: service,
		out:     respond.NewWriter(logger),
		logger:  logger,
	}
}

func (c *SaleController) List(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	limit, offset, err := respond.Page(r)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	sales, err := c.service.List(r.Context(), limit, offset)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewSaleListResponse(sales))
}

func (c *SaleController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	sale, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewSaleResponse(*sale))
}

func (c *SaleController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	var req dto.SaleRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		c.out.Error(w, traceID, err)
		return
	}

	sale, err := c.service.Create(r.Context(), req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusCreated, dto.NewSaleResponse(*sale))
}

func (c *SaleController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	var req dto.SaleUpdateRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	sale, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewSaleResponse(*sale))
}

func (c *SaleController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.NoContent(w)
}

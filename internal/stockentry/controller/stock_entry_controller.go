package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"smartfinance/internal/domain"
	"smartfinance/internal/dto"
	"smartfinance/internal/respond"
)

type StockEntryService interface {
	Get(ctx context.Context, id int64) (*domain.StockEntry, error)
	List(ctx context.Context, limit, offset int) (*dto.StockEntryList, error)
	Create(ctx context.Context, req dto.StockEntryRequest) (*domain.StockEntry, error)
	Update(ctx context.Context, id int64, req dto.StockEntryUpdateRequest) (*domain.StockEntry, error)
	Delete(ctx context.Context, id int64) error
}

type StockEntryController struct {
	service StockEntryService
	out     *respond.Writer
	logger  *zap.Logger
}

func NewStockEntryController(service StockEntryService, logger *zap.Logger) *StockEntryController {
	return &StockEntryController{
		service: service,
		out:     respond.NewWriter(logger),
		logger:  logger,
	}
}

func (c *StockEntryController) List(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	limit, offset, err := respond.Page(r)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	list, err := c.service.List(r.Context(), limit, offset)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewStockEntryListResponse(list))
}

func (c *StockEntryController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	entry, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewStockEntryResponse(*entry))
}

func (c *StockEntryController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	var req dto.StockEntryRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		c.out.Error(w, traceID, err)
		return
	}

	entry, err := c.service.Create(r.Context(), req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusCreated, dto.NewStockEntryResponse(*entry))
}

func (c *StockEntryController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	var req dto.StockEntryUpdateRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	entry, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewStockEntryResponse(*entry))
}

func (c *StockEntryController) Delete(w http.ResponseWriter, r *http.Request) {
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

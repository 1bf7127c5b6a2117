package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"smartfinance/internal/domain"
	"smartfinance/internal/dto"
	"smartfinance/internal/respond"
)

type ServiceOrderService interface {
	Get(ctx context.Context, id int64) (*domain.ServiceOrder, error)
	List(ctx context.Context, limit, offset int) ([]domain.ServiceOrder, error)
	Create(ctx context.Context, req dto.ServiceOrderRequest) (*domain.ServiceOrder, error)
	Update(ctx context.Context, id int64, req dto.ServiceOrderRequest) (*domain.ServiceOrder, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceOrderController struct {
	service ServiceOrderService
	out     *respond.Writer
	logger  *zap.Logger
}

func NewServiceOrderController(service ServiceOrderService, logger *zap.Logger) *ServiceOrderController {
	return &ServiceOrderController{
		service: service,
		out:     respond.NewWriter(logger),
		logger:  logger,
	}
}

func (c *ServiceOrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	limit, offset, err := respond.Page(r)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	orders, err := c.service.List(r.Context(), limit, offset)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewServiceOrderListResponse(orders))
}

func (c *ServiceOrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewServiceOrderResponse(*order))
}

func (c *ServiceOrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	var req dto.ServiceOrderRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		c.out.Error(w, traceID, err)
		return
	}

	order, err := c.service.Create(r.Context(), req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusCreated, dto.NewServiceOrderResponse(*order))
}

func (c *ServiceOrderController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	var req dto.ServiceOrderRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	order, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewServiceOrderResponse(*order))
}

func (c *ServiceOrderController) Delete(w http.ResponseWriter, r *http.Request) {
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

package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"smartfinance/internal/domain"
	"smartfinance/internal/dto"
	"smartfinance/internal/respond"
)

type ProductService interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductList, error)
	Create(ctx context.Context, req dto.ProductRequest) (*domain.Product, error)
	Update(ctx context.Context, id int64, req dto.ProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (*dto.DeleteResult, error)
}

type ProductController struct {
	service ProductService
	out     *respond.Writer
	logger  *zap.Logger
}

func NewProductController(service ProductService, logger *zap.Logger) *ProductController {
	return &ProductController{
		service: service,
		out:     respond.NewWriter(logger),
		logger:  logger,
	}
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	limit, offset, err := respond.Page(r)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	list, err := c.service.List(r.Context(), dto.ProductFilter{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewProductListResponse(list))
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	product, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewProductResponse(*product))
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	var req dto.ProductRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		c.out.Error(w, traceID, err)
		return
	}

	product, err := c.service.Create(r.Context(), req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusCreated, dto.NewProductResponse(*product))
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	var req dto.ProductRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	product, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, dto.NewProductResponse(*product))
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := respond.TraceID(r.Context())

	id, err := respond.PathID(r, "id")
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	result, err := c.service.Delete(r.Context(), id)
	if err != nil {
		c.out.Error(w, traceID, err)
		return
	}

	c.out.JSON(w, http.StatusOK, result)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sparkd/inventory-manager/internal/models"
	"github.com/sparkd/inventory-manager/internal/repository"
	"github.com/sparkd/inventory-manager/internal/service"
)

// ProductHandler handles catalogue and product CRUD HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// productRequest is the write payload for create/update. expirationDate is
// nullable on the wire; clients always send the key, null meaning "cleared".
type productRequest struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	UnitPrice      float64 `json:"unitPrice"`
	Stock          int     `json:"stock"`
	ExpirationDate *string `json:"expirationDate"`
}

func (r *productRequest) toModel() *models.Product {
	return &models.Product{
		Name:           r.Name,
		Category:       r.Category,
		UnitPrice:      r.UnitPrice,
		Stock:          r.Stock,
		ExpirationDate: r.ExpirationDate,
	}
}

// Search handles GET /api/v1/products
func (h *ProductHandler) Search(c *gin.Context) {
	q := repository.ProductSearch{
		Name:         c.Query("name"),
		Category:     c.Query("category"),
		Availability: c.DefaultQuery("availability", "all"),
		SortBy:       c.DefaultQuery("sortBy", "id"),
		Direction:    c.DefaultQuery("direction", "asc"),
		Page:         1,
		Size:         10,
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			apiError(c, http.StatusBadRequest, reasonBadRequest, "page must be a positive integer")
			return
		}
		q.Page = n
	}
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Size = n
		}
	}

	page, err := h.productService.Search(q)
	if err != nil {
		log.Error().Err(err).Msg("product search failed")
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Metrics handles GET /api/v1/products/metrics
func (h *ProductHandler) Metrics(c *gin.Context) {
	metrics, err := h.productService.CategoryMetrics()
	if err != nil {
		log.Error().Err(err).Msg("category metrics failed")
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, reasonValidation, "invalid request body")
		return
	}

	created, err := h.productService.Create(req.toModel())
	if err != nil {
		h.writeProductError(c, err)
		return
	}
	c.Header("Location", "/api/v1/products/"+strconv.FormatInt(created.ID, 10))
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, reasonBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, reasonValidation, "invalid request body")
		return
	}

	updated, err := h.productService.Update(id, req.toModel())
	if err != nil {
		h.writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, reasonBadRequest, "invalid product id")
		return
	}

	if err := h.productService.Delete(id); err != nil {
		h.writeProductError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeProductError maps service errors to HTTP responses.
func (h *ProductHandler) writeProductError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apiError(c, http.StatusNotFound, reasonNotFound, err.Error())
	case errors.As(err, &validation):
		apiError(c, http.StatusBadRequest, reasonValidation, validation.Error())
	default:
		log.Error().Err(err).Msg("product write failed")
		internalError(c)
	}
}

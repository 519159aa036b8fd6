package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sparkd/inventory-manager/internal/service"
)

// CategoryHandler handles category CRUD HTTP endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// categoryRequest is the write payload for create/update.
type categoryRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.GetAllSortedByName()
	if err != nil {
		log.Error().Err(err).Msg("category list failed")
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get handles GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, reasonBadRequest, "invalid category id")
		return
	}

	category, err := h.categoryService.GetByID(id)
	if err != nil {
		h.writeCategoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, reasonValidation, "invalid request body")
		return
	}

	created, err := h.categoryService.Create(req.Name)
	if err != nil {
		h.writeCategoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, reasonBadRequest, "invalid category id")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, reasonValidation, "invalid request body")
		return
	}

	updated, err := h.categoryService.Update(id, req.Name)
	if err != nil {
		h.writeCategoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		apiError(c, http.StatusBadRequest, reasonBadRequest, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(id); err != nil {
		h.writeCategoryError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeCategoryError maps service errors to HTTP responses.
func (h *CategoryHandler) writeCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		apiError(c, http.StatusNotFound, reasonNotFound, err.Error())
	case errors.Is(err, service.ErrCategoryNameBlank):
		apiError(c, http.StatusBadRequest, reasonBadRequest, err.Error())
	case errors.Is(err, service.ErrCategoryNameTaken):
		apiError(c, http.StatusConflict, reasonConflict, err.Error())
	default:
		log.Error().Err(err).Msg("category write failed")
		internalError(c)
	}
}

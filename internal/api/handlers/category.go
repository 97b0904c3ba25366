package handlers

import (
	"net/http"

	"linkvault-backend/internal/api/response"
	"linkvault-backend/internal/auth"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	categoryService service.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService service.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /categories
// @Summary List the caller's categories
// @Tags categories
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return
	}

	page, limit := pageQuery(c)
	result, err := h.categoryService.List(userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Categories retrieved successfully")
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return
	}

	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, category, "Category created successfully")
}

// Get handles GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	userID, categoryID, ok := h.categoryParams(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(userID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category, "Category retrieved successfully")
}

// Update handles PATCH /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	userID, categoryID, ok := h.categoryParams(c)
	if !ok {
		return
	}

	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(userID, categoryID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, category, "Category updated successfully")
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, categoryID, ok := h.categoryParams(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(userID, categoryID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}

func (h *CategoryHandler) categoryParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return uuid.Nil, uuid.Nil, false
	}
	categoryID, err := uuidParam(c, "id", apperrors.ErrCategoryNotFound)
	if err != nil {
		respondError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, categoryID, true
}

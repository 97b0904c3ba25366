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

// LinkHandler handles HTTP requests for links
type LinkHandler struct {
	linkService service.LinkServiceInterface
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkService service.LinkServiceInterface) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// List handles GET /links
// @Summary List the caller's links
// @Tags links
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by status (unread, read, archived)"
// @Param favorite query bool false "Filter by favorite flag"
// @Param search query string false "Free-text search over title, url and notes"
// @Param excludeCollection query string false "Exclude links already in this collection"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /links [get]
func (h *LinkHandler) List(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return
	}

	page, limit := pageQuery(c)
	query := service.ListLinksQuery{
		Page:     page,
		Limit:    limit,
		Status:   c.Query("status"),
		Favorite: boolQuery(c, "favorite"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("excludeCollection"); raw != "" {
		collectionID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid collection id")
			return
		}
		query.ExcludeCollectionID = &collectionID
	}

	result, err := h.linkService.List(userID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Links retrieved successfully")
}

// ListPublic handles GET /links/public
func (h *LinkHandler) ListPublic(c *gin.Context) {
	h.listByPrivacy(c, false)
}

// ListPrivate handles GET /links/private
func (h *LinkHandler) ListPrivate(c *gin.Context) {
	h.listByPrivacy(c, true)
}

func (h *LinkHandler) listByPrivacy(c *gin.Context, private bool) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return
	}

	page, limit := pageQuery(c)
	result, err := h.linkService.List(userID, service.ListLinksQuery{
		Page:    page,
		Limit:   limit,
		Private: &private,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Links retrieved successfully")
}

// Create handles POST /links
// @Summary Save a new link
// @Tags links
// @Accept json
// @Produce json
// @Param link body service.CreateLinkRequest true "Link data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /links [post]
func (h *LinkHandler) Create(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return
	}

	var req service.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.linkService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, link, "Link created successfully")
}

// Get handles GET /links/:id
func (h *LinkHandler) Get(c *gin.Context) {
	userID, linkID, ok := h.linkParams(c)
	if !ok {
		return
	}

	link, err := h.linkService.GetByID(userID, linkID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, link, "Link retrieved successfully")
}

// Update handles PATCH /links/:id
func (h *LinkHandler) Update(c *gin.Context) {
	userID, linkID, ok := h.linkParams(c)
	if !ok {
		return
	}

	var req service.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, changed, err := h.linkService.Update(userID, linkID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Link updated successfully"
	if !changed {
		message = "No changes made"
	}
	response.Success(c, http.StatusOK, link, message)
}

// ToggleRead handles PATCH /links/:id/read
func (h *LinkHandler) ToggleRead(c *gin.Context) {
	userID, linkID, ok := h.linkParams(c)
	if !ok {
		return
	}

	link, err := h.linkService.ToggleRead(userID, linkID)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Link marked as unread"
	if link.Status == "read" {
		message = "Link marked as read"
	}
	response.Success(c, http.StatusOK, link, message)
}

// ToggleArchive handles PATCH /links/:id/archive
func (h *LinkHandler) ToggleArchive(c *gin.Context) {
	userID, linkID, ok := h.linkParams(c)
	if !ok {
		return
	}

	link, err := h.linkService.ToggleArchive(userID, linkID)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Link unarchived"
	if link.Status == "archived" {
		message = "Link archived"
	}
	response.Success(c, http.StatusOK, link, message)
}

// ToggleFavorite handles PATCH /links/:id/favorite
func (h *LinkHandler) ToggleFavorite(c *gin.Context) {
	userID, linkID, ok := h.linkParams(c)
	if !ok {
		return
	}

	link, err := h.linkService.ToggleFavorite(userID, linkID)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Link removed from favorites"
	if link.IsFavorite {
		message = "Link added to favorites"
	}
	response.Success(c, http.StatusOK, link, message)
}

// Delete handles DELETE /links/:id
func (h *LinkHandler) Delete(c *gin.Context) {
	userID, linkID, ok := h.linkParams(c)
	if !ok {
		return
	}

	if err := h.linkService.Delete(userID, linkID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Link deleted successfully")
}

func (h *LinkHandler) linkParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return uuid.Nil, uuid.Nil, false
	}
	linkID, err := uuidParam(c, "id", apperrors.ErrLinkNotFound)
	if err != nil {
		respondError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, linkID, true
}

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

// CollectionHandler handles HTTP requests for collections
type CollectionHandler struct {
	collectionService service.CollectionServiceInterface
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionService service.CollectionServiceInterface) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// List handles GET /collections
// @Summary List the caller's collections with link counts
// @Tags collections
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /collections [get]
func (h *CollectionHandler) List(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return
	}

	page, limit := pageQuery(c)
	result, err := h.collectionService.List(userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Collections retrieved successfully")
}

// Create handles POST /collections
func (h *CollectionHandler) Create(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return
	}

	var req service.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	collection, err := h.collectionService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, collection, "Collection created successfully")
}

// Get handles GET /collections/:id. Owners see their own collections,
// everyone else sees public ones only.
func (h *CollectionHandler) Get(c *gin.Context) {
	userID, collectionID, ok := h.collectionParams(c)
	if !ok {
		return
	}

	collection, err := h.collectionService.GetByID(userID, collectionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, collection, "Collection retrieved successfully")
}

// Update handles PATCH /collections/:id
func (h *CollectionHandler) Update(c *gin.Context) {
	userID, collectionID, ok := h.collectionParams(c)
	if !ok {
		return
	}

	var req service.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	collection, changed, err := h.collectionService.Update(userID, collectionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Collection updated successfully"
	if !changed {
		message = "No changes made"
	}
	response.Success(c, http.StatusOK, collection, message)
}

// Delete handles DELETE /collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	userID, collectionID, ok := h.collectionParams(c)
	if !ok {
		return
	}

	if err := h.collectionService.Delete(userID, collectionID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Collection deleted successfully")
}

// AddLinks handles POST /collections/:id/links. The batch is rejected as a
// whole when any link is invalid, private-into-public or already present.
func (h *CollectionHandler) AddLinks(c *gin.Context) {
	userID, collectionID, ok := h.collectionParams(c)
	if !ok {
		return
	}

	var req service.AddLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.collectionService.AddLinks(userID, collectionID, &req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, nil, "Links added to collection")
}

// ListLinks handles GET /collections/:id/links
func (h *CollectionHandler) ListLinks(c *gin.Context) {
	userID, collectionID, ok := h.collectionParams(c)
	if !ok {
		return
	}

	page, limit := pageQuery(c)
	result, err := h.collectionService.ListLinks(userID, collectionID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Collection links retrieved successfully")
}

// RemoveLink handles DELETE /collections/:id/links/:linkId
func (h *CollectionHandler) RemoveLink(c *gin.Context) {
	userID, collectionID, ok := h.collectionParams(c)
	if !ok {
		return
	}
	linkID, err := uuidParam(c, "linkId", apperrors.ErrCollectionLinkNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.collectionService.RemoveLink(userID, collectionID, linkID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil, "Link removed from collection")
}

// Clone handles POST /collections/:id/clone
// @Summary Clone one of the caller's collections
// @Tags collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /collections/{id}/clone [post]
func (h *CollectionHandler) Clone(c *gin.Context) {
	userID, collectionID, ok := h.collectionParams(c)
	if !ok {
		return
	}

	clone, err := h.collectionService.Clone(userID, collectionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, clone, "Collection cloned successfully")
}

func (h *CollectionHandler) collectionParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return uuid.Nil, uuid.Nil, false
	}
	collectionID, err := uuidParam(c, "id", apperrors.ErrCollectionNotFound)
	if err != nil {
		respondError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, collectionID, true
}

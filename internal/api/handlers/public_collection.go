package handlers

import (
	"net/http"

	"linkvault-backend/internal/api/response"
	"linkvault-backend/internal/auth"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicCollectionHandler handles the open public view of collections and
// the authenticated cross-user clone
type PublicCollectionHandler struct {
	collectionService service.CollectionServiceInterface
}

// NewPublicCollectionHandler creates a new public collection handler
func NewPublicCollectionHandler(collectionService service.CollectionServiceInterface) *PublicCollectionHandler {
	return &PublicCollectionHandler{collectionService: collectionService}
}

// Get handles GET /public/collections/:id. No authentication: a public
// collection returns its metadata, owner name and public links; a private
// one returns a minimal acknowledgment instead of its contents.
func (h *PublicCollectionHandler) Get(c *gin.Context) {
	collectionID, err := uuidParam(c, "id", apperrors.ErrCollectionNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	page, limit := pageQuery(c)
	view, err := h.collectionService.PublicView(collectionID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	if view.Collection.IsPrivate {
		response.Success(c, http.StatusOK, view, "Collection is private")
		return
	}
	response.Success(c, http.StatusOK, view, "Public collection retrieved successfully")
}

// Clone handles POST /public/collections/:id/clone. Requires auth; copies
// another user's public collection under the caller, duplicating its
// public links.
func (h *PublicCollectionHandler) Clone(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
		return
	}
	collectionID, err := uuidParam(c, "id", apperrors.ErrCollectionNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	clone, err := h.collectionService.ClonePublic(userID, collectionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, clone, "Collection cloned successfully")
}

package handlers

import (
	"net/http"

	"linkvault-backend/internal/api/response"
	apperrors "linkvault-backend/internal/errors"
	"linkvault-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ExploreHandler handles the open explore endpoints
type ExploreHandler struct {
	exploreService service.ExploreServiceInterface
}

// NewExploreHandler creates a new explore handler
func NewExploreHandler(exploreService service.ExploreServiceInterface) *ExploreHandler {
	return &ExploreHandler{exploreService: exploreService}
}

// SearchUsers handles GET /explore/users
// @Summary Search users with public content
// @Tags explore
// @Produce json
// @Param q query string false "Name filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 50)"
// @Success 200 {object} response.Envelope
// @Router /explore/users [get]
func (h *ExploreHandler) SearchUsers(c *gin.Context) {
	page, limit := pageQuery(c)
	result, err := h.exploreService.SearchUsers(c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Users retrieved successfully")
}

// GetUser handles GET /explore/users/:userId
func (h *ExploreHandler) GetUser(c *gin.Context) {
	userID, err := uuidParam(c, "userId", apperrors.ErrUserNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.exploreService.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "User retrieved successfully")
}

// ListUserCollections handles GET /explore/users/:userId/collections
func (h *ExploreHandler) ListUserCollections(c *gin.Context) {
	userID, err := uuidParam(c, "userId", apperrors.ErrUserNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	page, limit := pageQuery(c)
	result, err := h.exploreService.ListUserCollections(userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Public collections retrieved successfully")
}

// ListUserLinks handles GET /explore/users/:userId/links
func (h *ExploreHandler) ListUserLinks(c *gin.Context) {
	userID, err := uuidParam(c, "userId", apperrors.ErrUserNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	page, limit := pageQuery(c)
	result, err := h.exploreService.ListUserLinks(userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Public links retrieved successfully")
}

// ListUserCollectionLinks handles GET /explore/users/:userId/collections/:collectionId/links
func (h *ExploreHandler) ListUserCollectionLinks(c *gin.Context) {
	userID, err := uuidParam(c, "userId", apperrors.ErrUserNotFound)
	if err != nil {
		respondError(c, err)
		return
	}
	collectionID, err := uuidParam(c, "collectionId", apperrors.ErrCollectionNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	page, limit := pageQuery(c)
	result, err := h.exploreService.ListUserCollectionLinks(userID, collectionID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, "Collection links retrieved successfully")
}

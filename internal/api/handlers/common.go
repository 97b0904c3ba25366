package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"linkvault-backend/internal/api/response"
	apperrors "linkvault-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// conflictErrors are business rule rejections reported as 400
var conflictErrors = []error{
	apperrors.ErrEmailRegistered,
	apperrors.ErrCategoryExists,
	apperrors.ErrLinkAlreadyInCollection,
	apperrors.ErrLinksAlreadyInCollection,
	apperrors.ErrInvalidLinks,
	apperrors.ErrInvalidCategories,
	apperrors.ErrPrivateLinkInPublic,
	apperrors.ErrCloneSourcePrivate,
}

// respondError maps service errors onto the response envelope. Unexpected
// errors surface their full text outside release mode only.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		response.Error(c, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		response.Error(c, http.StatusNotFound, err.Error())
	case apperrors.IsAuthentication(err):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case isConflict(err):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).Error("request failed")
		if gin.Mode() == gin.ReleaseMode {
			response.Error(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}

func isConflict(err error) bool {
	for _, conflict := range conflictErrors {
		if errors.Is(err, conflict) {
			return true
		}
	}
	return false
}

// pageQuery reads page and limit query parameters. Absent or malformed
// values come back zero; services apply their own defaults.
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

// uuidParam parses a path parameter as a UUID. A malformed id resolves to
// the entity's not-found error, the same as a missing row.
func uuidParam(c *gin.Context, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// boolQuery reads an optional boolean query parameter
func boolQuery(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

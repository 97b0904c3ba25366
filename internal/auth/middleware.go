package auth

import (
	"net/http"
	"strings"

	"linkvault-backend/internal/api/response"
	apperrors "linkvault-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDKey is the gin context key holding the authenticated user's id
const userIDKey = "userID"

// Middleware provides JWT authentication middleware
type Middleware struct {
	service ServiceInterface
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(service ServiceInterface) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth validates the bearer token and puts the resolved user id on
// the request context. Every core operation receives the id explicitly from
// here; there is no ambient request state.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, apperrors.ErrTokenNotProvided.Error())
			c.Abort()
			return
		}

		userID, err := m.service.ValidateAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id set by RequireAuth
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

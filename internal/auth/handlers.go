package auth

import (
	"net/http"
	"time"

	"linkvault-backend/internal/api/response"
	apperrors "linkvault-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// refreshCookieName is the httpOnly cookie carrying the refresh token
const refreshCookieName = "refreshToken"

// Handler handles HTTP requests for authentication
type Handler struct {
	service       ServiceInterface
	secureCookies bool
}

// NewHandler creates a new auth handler
func NewHandler(service ServiceInterface, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// sessionData is the auth response payload
type sessionData struct {
	AccessToken string    `json:"accessToken"`
	User        *UserInfo `json:"user,omitempty"`
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.service.Register(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, session)
	response.Success(c, http.StatusCreated, sessionData{
		AccessToken: session.AccessToken,
		User:        session.User,
	}, "User created and logged in successfully")
}

// Login handles POST /api/auth/login
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.service.Login(&req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, session)
	response.Success(c, http.StatusOK, sessionData{
		AccessToken: session.AccessToken,
		User:        session.User,
	}, "Login successful")
}

// Refresh handles POST /api/auth/refresh. A failed rotation clears the
// cookie so the client drops its credential instead of retrying forever.
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		response.Error(c, http.StatusUnauthorized, apperrors.ErrRefreshTokenNotProvided.Error())
		return
	}

	session, err := h.service.Refresh(refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, session)
	response.Success(c, http.StatusOK, sessionData{
		AccessToken: session.AccessToken,
	}, "Token refreshed successfully")
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)
	if err := h.service.Logout(refreshToken); err != nil {
		logrus.WithError(err).Error("failed to delete refresh token")
	}

	h.clearRefreshCookie(c)
	response.Success(c, http.StatusOK, nil, "Logout successful")
}

func (h *Handler) setRefreshCookie(c *gin.Context, session *Session) {
	c.SetSameSite(http.SameSiteStrictMode)
	maxAge := int(time.Until(session.RefreshExpiresAt).Seconds())
	c.SetCookie(refreshCookieName, session.RefreshToken, maxAge, "/", "", h.secureCookies, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.secureCookies, true)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		response.Error(c, http.StatusBadRequest, err.Error())
	case apperrors.IsAuthentication(err):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case err == apperrors.ErrEmailRegistered:
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		logrus.WithError(err).Error("auth operation failed")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}

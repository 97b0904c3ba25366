package handlers

import (
	"net/http"

	"linkvault-backend/internal/api/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := gin.H{"status": "ok", "database": "up"}

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		status["database"] = "down"
		response.Error(c, http.StatusServiceUnavailable, "Service unhealthy")
		return
	}

	response.Success(c, http.StatusOK, status, "Service healthy")
}

package handlers

import (
	"net/http"
	"net/url"

	"linkvault-backend/internal/api/response"
	"linkvault-backend/internal/scraper"
	"linkvault-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ScraperHandler handles the page-title fetch endpoint
type ScraperHandler struct {
	scraper *scraper.Scraper
}

// NewScraperHandler creates a new scraper handler
func NewScraperHandler(scraper *scraper.Scraper) *ScraperHandler {
	return &ScraperHandler{scraper: scraper}
}

// FetchTitle handles GET /scraper/fetch-title?url=...
// @Summary Fetch the page title of a URL
// @Tags scraper
// @Produce json
// @Param url query string true "Page URL"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /scraper/fetch-title [get]
func (h *ScraperHandler) FetchTitle(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		response.Error(c, http.StatusBadRequest, "URL is required")
		return
	}

	normalized := service.NormalizeURL(raw)
	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Hostname() == "" {
		response.Error(c, http.StatusBadRequest, "Invalid URL")
		return
	}

	title := h.scraper.FetchTitle(c.Request.Context(), normalized)
	response.Success(c, http.StatusOK, gin.H{"title": title}, "Title fetched successfully")
}

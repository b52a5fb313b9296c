package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"blast-detection-api/models"
	"blast-detection-api/services"

	"github.com/gin-gonic/gin"
)

type RiskHandler struct {
	cache        *services.CacheService
	featuresPath string
}

func NewRiskHandler(cache *services.CacheService, featuresPath string) *RiskHandler {
	return &RiskHandler{cache: cache, featuresPath: featuresPath}
}

// GetCurrent returns the single most recent risk reading. An empty or
// missing series is an explicit no-data state, never a LOW reading.
func (h *RiskHandler) GetCurrent(c *gin.Context) {
	series, ok := h.loadSeries(c)
	if !ok {
		return
	}

	current, err := services.Current(series)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no risk data available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": current})
}

// GetSeries returns the full scored time series for trend display.
func (h *RiskHandler) GetSeries(c *gin.Context) {
	const cacheKey = "risk:series"

	var cached struct {
		Data []models.RiskReading `json:"data"`
	}
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	series, ok := h.loadSeries(c)
	if !ok {
		return
	}

	resp := gin.H{"data": series}
	go h.cache.Set(context.Background(), cacheKey, resp, 60*time.Second)

	c.JSON(http.StatusOK, resp)
}

func (h *RiskHandler) loadSeries(c *gin.Context) ([]models.RiskReading, bool) {
	series, err := services.LoadRiskSeries(h.featuresPath)
	if err != nil {
		var missing *models.MissingColumnsError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": missing.Error()})
			return nil, false
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "no risk data available"})
		return nil, false
	}
	return series, true
}

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"blast-detection-api/models"
	"blast-detection-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PredictionsHandler struct {
	db      *gorm.DB
	cache   *services.CacheService
	csvPath string
}

func NewPredictionsHandler(db *gorm.DB, cache *services.CacheService, csvPath string) *PredictionsHandler {
	return &PredictionsHandler{db: db, cache: cache, csvPath: csvPath}
}

// GetHistory pages over logged audit analyses, newest first.
func (h *PredictionsHandler) GetHistory(c *gin.Context) {
	p := ParsePagination(c)

	mode := c.Query("mode")
	if mode != "" && !models.IsAuditRole(mode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be an audit role (officer or demo)"})
		return
	}

	beforeStr := ""
	if p.Before != nil {
		beforeStr = p.Before.Format(time.RFC3339Nano)
	}
	cacheKey := fmt.Sprintf("predictions:history:%s:%d:%s", mode, p.Limit, beforeStr)

	var cached CursorResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	query := h.db.Model(&models.PredictionRecord{}).Order("ts DESC").Limit(p.Limit + 1)
	if p.Before != nil {
		query = query.Where("ts < ?", *p.Before)
	}
	if mode != "" {
		query = query.Where("mode = ?", mode)
	}

	var rows []models.PredictionRecord
	if err := query.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].TS.Format(time.RFC3339Nano)
	}

	resp := CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore}
	go h.cache.Set(context.Background(), cacheKey, resp, 30*time.Second)

	c.JSON(http.StatusOK, resp)
}

// Export streams the raw append-only audit CSV.
func (h *PredictionsHandler) Export(c *gin.Context) {
	if _, err := os.Stat(h.csvPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no predictions logged yet"})
		return
	}
	c.FileAttachment(h.csvPath, "predictions.csv")
}

package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"blast-detection-api/config"
	"blast-detection-api/middleware"
	"blast-detection-api/models"
	"blast-detection-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Threshold bounds for the interactive surface. Offline tooling accepts
// the full (0,1) range; here out-of-band values are rejected, not clamped.
const (
	minThreshold = 0.05
	maxThreshold = 0.95
)

type AnalyzeHandler struct {
	db        *gorm.DB
	cache     *services.CacheService
	predictor *services.PredictorService
	logger    *services.PredictionLogger

	modelPath        string
	defaultThreshold float64
	uploadDir        string
}

func NewAnalyzeHandler(
	db *gorm.DB,
	cache *services.CacheService,
	predictor *services.PredictorService,
	logger *services.PredictionLogger,
	cfg config.ModelConfig,
	uploadDir string,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		db:               db,
		cache:            cache,
		predictor:        predictor,
		logger:           logger,
		modelPath:        cfg.Path,
		defaultThreshold: cfg.Threshold,
		uploadDir:        uploadDir,
	}
}

type AnalyzeResponse struct {
	Prediction *models.Prediction `json:"prediction"`
	Guidance   []string           `json:"guidance"`
	Logged     bool               `json:"logged"`
}

// Analyze accepts a multipart image upload, classifies it, and returns the
// labeled prediction plus role-specific guidance. Audit roles (officer,
// demo) are appended to the prediction log and mirrored to Postgres.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image upload"})
		return
	}

	threshold := h.defaultThreshold
	if v := c.PostForm("threshold"); v != "" {
		threshold, err = strconv.ParseFloat(v, 64)
		if err != nil || threshold < minThreshold || threshold > maxThreshold {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "threshold must be a number between 0.05 and 0.95",
			})
			return
		}
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload"})
		return
	}
	tmpPath := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to stage upload"})
		return
	}
	defer os.Remove(tmpPath)

	pred, err := h.predictor.Predict(c.Request.Context(), h.modelPath, tmpPath, threshold)
	if err != nil {
		analysesFailed.Inc()
		h.renderPredictError(c, err)
		return
	}
	analysesTotal.WithLabelValues(pred.Predicted).Inc()

	lines := services.Guidance(claims.Role, pred.Predicted, pred.ProbBlast)

	logged := false
	if models.IsAuditRole(claims.Role) {
		rec := models.LogRecord{
			Timestamp:   time.Now(),
			Mode:        claims.Role,
			Filename:    file.Filename,
			Predicted:   pred.Predicted,
			ProbBlast:   pred.ProbBlast,
			ProbHealthy: pred.ProbHealthy,
			Threshold:   pred.Threshold,
		}
		if err := h.logger.Append(rec); err != nil {
			// A silently skipped audit row is worse than a failed request.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write prediction log"})
			return
		}
		auditRowsLogged.Inc()
		logged = true

		record := models.PredictionRecord{
			TS:          rec.Timestamp,
			Mode:        rec.Mode,
			Filename:    rec.Filename,
			Predicted:   rec.Predicted,
			ProbBlast:   rec.ProbBlast,
			ProbHealthy: rec.ProbHealthy,
			Threshold:   rec.Threshold,
		}
		if err := h.db.Create(&record).Error; err != nil {
			log.Printf("prediction history insert failed: %v", err)
		}
		go h.publish(record)
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Prediction: pred,
		Guidance:   lines,
		Logged:     logged,
	})
}

func (h *AnalyzeHandler) publish(record models.PredictionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.cache.Publish(ctx, services.PredictionChannel, record); err != nil {
		log.Printf("prediction publish failed: %v", err)
	}
}

func (h *AnalyzeHandler) renderPredictError(c *gin.Context, err error) {
	var rangeErr *models.ProbabilityRangeError
	switch {
	case errors.Is(err, models.ErrModelNotFound):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model artifact not found"})
	case errors.Is(err, models.ErrImageNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded image could not be read"})
	case errors.As(err, &rangeErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "classifier returned a probability outside [0,1]"})
	default:
		log.Printf("analyze failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot analyze image"})
	}
}

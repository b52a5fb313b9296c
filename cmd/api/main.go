package main

import (
	"fmt"
	"log"
	"path/filepath"

	"blast-detection-api/config"
	"blast-detection-api/handlers"
	"blast-detection-api/middleware"
	"blast-detection-api/models"
	"blast-detection-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql db handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.PredictionRecord{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	// Redis cache + pub/sub
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
	}
	defer cache.Close()

	authService := services.NewAuthService(cfg.JWT)
	predictor := services.NewPredictorService(services.NewHTTPScorerLoader(cfg.Model.ScorerURL))
	predLogPath := filepath.Join(cfg.Reports.Dir, "predictions.csv")
	predLogger := services.NewPredictionLogger(predLogPath)

	authHandler := handlers.NewAuthHandler(db, authService)
	analyzeHandler := handlers.NewAnalyzeHandler(db, cache, predictor, predLogger, cfg.Model, cfg.Reports.UploadDir)
	predictionsHandler := handlers.NewPredictionsHandler(db, cache, predLogPath)
	riskHandler := handlers.NewRiskHandler(cache, cfg.Satellite.FeaturesPath)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "UP",
			"message": "Leaf Blast Detection API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.GET("/risk", riskHandler.GetCurrent)
		api.GET("/risk/series", riskHandler.GetSeries)

		audit := api.Group("/predictions")
		audit.Use(middleware.RequireRoles(models.RoleOfficer, models.RoleDemo))
		{
			audit.GET("", predictionsHandler.GetHistory)
			audit.GET("/export", predictionsHandler.Export)
		}
	}

	router.GET("/ws/live", handlers.LiveWebSocket(cache, authService))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

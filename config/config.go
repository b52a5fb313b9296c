package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Model     ModelConfig
	Reports   ReportsConfig
	Satellite SatelliteConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type CORSConfig struct {
	AllowedOrigins string
}

// ModelConfig points at the classifier artifact and the scorer sidecar
// that runs the actual forward pass.
type ModelConfig struct {
	Path      string
	Threshold float64
	ScorerURL string
}

type ReportsConfig struct {
	Dir       string
	UploadDir string
}

// SatelliteConfig fixes the pilot area and date range for the offline
// NDVI extraction run.
type SatelliteConfig struct {
	BaseURL      string
	Lat          float64
	Lon          float64
	BufferM      int
	StartDate    string
	EndDate      string
	FeaturesPath string
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtExpiry, err := getIntEnv("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}

	threshold, err := getFloatEnv("MODEL_THRESHOLD", 0.50)
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_THRESHOLD: %w", err)
	}

	satLat, err := getFloatEnv("SATELLITE_LAT", 7.76)
	if err != nil {
		return nil, fmt.Errorf("invalid SATELLITE_LAT: %w", err)
	}

	satLon, err := getFloatEnv("SATELLITE_LON", 80.56)
	if err != nil {
		return nil, fmt.Errorf("invalid SATELLITE_LON: %w", err)
	}

	satBuffer, err := getIntEnv("SATELLITE_BUFFER_M", 2000)
	if err != nil {
		return nil, fmt.Errorf("invalid SATELLITE_BUFFER_M: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "leafblast"),
			Password: getEnv("DB_PASSWORD", "leafblast_dev_password"),
			Name:     getEnv("DB_NAME", "leafblast"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "leafblast_dev_secret"),
			ExpiryHours: jwtExpiry,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Model: ModelConfig{
			Path:      getEnv("MODEL_PATH", "models/rice_leaf_blast_cnn.keras"),
			Threshold: threshold,
			ScorerURL: getEnv("SCORER_URL", "http://localhost:8501"),
		},
		Reports: ReportsConfig{
			Dir:       getEnv("REPORTS_DIR", "reports"),
			UploadDir: getEnv("UPLOAD_DIR", ".tmp"),
		},
		Satellite: SatelliteConfig{
			BaseURL:      getEnv("SATELLITE_BASE_URL", "http://localhost:8600"),
			Lat:          satLat,
			Lon:          satLon,
			BufferM:      satBuffer,
			StartDate:    getEnv("SATELLITE_START_DATE", "2024-10-01"),
			EndDate:      getEnv("SATELLITE_END_DATE", "2025-03-01"),
			FeaturesPath: getEnv("RISK_FEATURES_PATH", "data/satellite/risk_features.csv"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getFloatEnv(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

package config

import (
	"os"
	"strings"
	"testing"
)

var configEnvKeys = []string{
	"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"JWT_SECRET", "JWT_EXPIRY_HOURS", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"CORS_ALLOWED_ORIGINS", "MODEL_PATH", "MODEL_THRESHOLD", "SCORER_URL",
	"REPORTS_DIR", "UPLOAD_DIR", "SATELLITE_BASE_URL", "SATELLITE_LAT", "SATELLITE_LON",
	"SATELLITE_BUFFER_M", "SATELLITE_START_DATE", "SATELLITE_END_DATE", "RISK_FEATURES_PATH",
}

func clearConfigEnv() {
	for _, key := range configEnvKeys {
		os.Unsetenv(key)
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "leafblast",
		Password: "secret",
		Name:     "leafblast",
		SSLMode:  "disable",
	}
	dsn := db.GetDSN()

	expected := "host=localhost port=5432 user=leafblast password=secret dbname=leafblast sslmode=disable"
	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetDSNCustomValues(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		User:     "admin",
		Password: "p@ss",
		Name:     "mydb",
		SSLMode:  "require",
	}
	dsn := db.GetDSN()

	if !strings.Contains(dsn, "host=db.example.com") {
		t.Errorf("DSN missing host, got: %s", dsn)
	}
	if !strings.Contains(dsn, "port=5433") {
		t.Errorf("DSN missing port, got: %s", dsn)
	}
	if !strings.Contains(dsn, "sslmode=require") {
		t.Errorf("DSN missing sslmode, got: %s", dsn)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want %q", got, "default")
	}

	os.Setenv("TEST_CONFIG_VAR", "custom")
	defer os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "custom" {
		t.Errorf("getEnv() = %q, want %q", got, "custom")
	}
}

func TestGetIntEnv(t *testing.T) {
	t.Run("fallback when unset", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 8080 {
			t.Errorf("getIntEnv() = %d, want %d", got, 8080)
		}
	})

	t.Run("parses valid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "9090")
		defer os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 9090 {
			t.Errorf("getIntEnv() = %d, want %d", got, 9090)
		}
	})

	t.Run("error on invalid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "not_int")
		defer os.Unsetenv("TEST_INT_VAR")
		_, err := getIntEnv("TEST_INT_VAR", 8080)
		if err == nil {
			t.Error("expected error for invalid int value")
		}
	})
}

func TestGetFloatEnv(t *testing.T) {
	t.Run("fallback when unset", func(t *testing.T) {
		os.Unsetenv("TEST_FLOAT_VAR")
		got, err := getFloatEnv("TEST_FLOAT_VAR", 0.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 0.5 {
			t.Errorf("getFloatEnv() = %v, want %v", got, 0.5)
		}
	})

	t.Run("parses valid float", func(t *testing.T) {
		os.Setenv("TEST_FLOAT_VAR", "0.65")
		defer os.Unsetenv("TEST_FLOAT_VAR")
		got, err := getFloatEnv("TEST_FLOAT_VAR", 0.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 0.65 {
			t.Errorf("getFloatEnv() = %v, want %v", got, 0.65)
		}
	})

	t.Run("error on invalid float", func(t *testing.T) {
		os.Setenv("TEST_FLOAT_VAR", "not_float")
		defer os.Unsetenv("TEST_FLOAT_VAR")
		_, err := getFloatEnv("TEST_FLOAT_VAR", 0.5)
		if err == nil {
			t.Error("expected error for invalid float value")
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.JWT.ExpiryHours != 24 {
		t.Errorf("JWT.ExpiryHours = %d, want 24", cfg.JWT.ExpiryHours)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want 6379", cfg.Redis.Port)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, "*")
	}
	if cfg.Model.Path != "models/rice_leaf_blast_cnn.keras" {
		t.Errorf("Model.Path = %q, want default artifact path", cfg.Model.Path)
	}
	if cfg.Model.Threshold != 0.50 {
		t.Errorf("Model.Threshold = %v, want 0.50", cfg.Model.Threshold)
	}
	if cfg.Satellite.Lat != 7.76 || cfg.Satellite.Lon != 80.56 {
		t.Errorf("Satellite coords = (%v, %v), want Galewela pilot area", cfg.Satellite.Lat, cfg.Satellite.Lon)
	}
	if cfg.Satellite.StartDate != "2024-10-01" || cfg.Satellite.EndDate != "2025-03-01" {
		t.Errorf("Satellite dates = %q..%q, unexpected defaults", cfg.Satellite.StartDate, cfg.Satellite.EndDate)
	}
	if cfg.Satellite.FeaturesPath != "data/satellite/risk_features.csv" {
		t.Errorf("Satellite.FeaturesPath = %q, unexpected default", cfg.Satellite.FeaturesPath)
	}
}

func TestLoadConfigCustom(t *testing.T) {
	clearConfigEnv()
	os.Setenv("SERVER_PORT", "3000")
	os.Setenv("DB_HOST", "db.prod")
	os.Setenv("MODEL_THRESHOLD", "0.65")
	os.Setenv("MODEL_PATH", "models/custom.keras")
	defer clearConfigEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.prod" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "db.prod")
	}
	if cfg.Model.Threshold != 0.65 {
		t.Errorf("Model.Threshold = %v, want 0.65", cfg.Model.Threshold)
	}
	if cfg.Model.Path != "models/custom.keras" {
		t.Errorf("Model.Path = %q, want %q", cfg.Model.Path, "models/custom.keras")
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	clearConfigEnv()
	os.Setenv("SERVER_PORT", "invalid")
	defer os.Unsetenv("SERVER_PORT")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for invalid SERVER_PORT")
	}
}

func TestLoadConfigInvalidThreshold(t *testing.T) {
	clearConfigEnv()
	os.Setenv("MODEL_THRESHOLD", "high")
	defer os.Unsetenv("MODEL_THRESHOLD")

	_, err := LoadConfig()
	if err == nil {
		t.Error("expected error for invalid MODEL_THRESHOLD")
	}
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds all application configuration
type Config struct {
	ServiceName string
	ServicePort int
	Database    DatabaseConfig
	Auth        AuthConfig
	Vision      VisionConfig
	Storage     StorageConfig
	Anomaly     AnomalyConfig
	Forecast    ForecastConfig
	Admin       AdminConfig
	CORS        CORSConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds JWT settings
type AuthConfig struct {
	SecretKey        string
	TokenExpiryHours int
}

// VisionConfig holds settings for the meter-photo extraction collaborator
type VisionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// StorageConfig holds object storage settings for meter photos
type StorageConfig struct {
	Bucket string
	Region string
	Prefix string
}

// AnomalyConfig holds the anomaly-classifier subprocess settings
type AnomalyConfig struct {
	Command        string
	Script         string
	TimeoutSeconds int
}

// ForecastConfig holds the usage-forecaster subprocess settings
type ForecastConfig struct {
	Command        string
	Script         string
	TimeoutSeconds int
}

// AdminConfig names the admin account seeded on first startup
type AdminConfig struct {
	Name     string
	Username string
}

// CORSConfig holds allowed frontend origins
type CORSConfig struct {
	AllowOrigin string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "electricity-billing-backend"),
		ServicePort: getEnvAsInt("SERVICE_PORT", 8080),
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			SecretKey:        getEnv("SECRET_KEY", ""),
			TokenExpiryHours: getEnvAsInt("TOKEN_EXPIRY_HOURS", 2),
		},
		Vision: VisionConfig{
			APIKey:  getEnv("VISION_API_KEY", ""),
			BaseURL: getEnv("VISION_BASE_URL", ""),
			Model:   getEnv("VISION_MODEL", "gpt-4o-mini"),
		},
		Storage: StorageConfig{
			Bucket: getEnv("PHOTO_BUCKET", ""),
			Region: getEnv("AWS_REGION", "us-east-1"),
			Prefix: getEnv("PHOTO_PREFIX", "meter-photos"),
		},
		Anomaly: AnomalyConfig{
			Command:        getEnv("ANOMALY_COMMAND", "python"),
			Script:         getEnv("ANOMALY_SCRIPT", "detect_anomaly.py"),
			TimeoutSeconds: getEnvAsInt("ANOMALY_TIMEOUT_SECONDS", 120),
		},
		Forecast: ForecastConfig{
			Command:        getEnv("FORECAST_COMMAND", "python"),
			Script:         getEnv("FORECAST_SCRIPT", "monthly_forecast.py"),
			TimeoutSeconds: getEnvAsInt("FORECAST_TIMEOUT_SECONDS", 120),
		},
		Admin: AdminConfig{
			Name:     getEnv("ADMIN_NAME", "System Admin"),
			Username: getEnv("ADMIN_USERNAME", "admin"),
		},
		CORS: CORSConfig{
			AllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "http://localhost:5173"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set in environment variables")
	}
	if cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required but not set in environment variables")
	}

	return cfg, nil
}

// InitDB opens the postgres connection used by all repositories.
func InitDB(cfg *Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return db
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Workspaces
	JWTSecret         string
	WorkspaceTokenTTL time.Duration
	WorkspaceIdleTTL  time.Duration
	AdminAPIKey       string

	// Canvas geometry used to clamp dragged cards
	CanvasWidth float64
	CardWidth   float64

	// Audit trail
	AuditDBDriver   string
	AuditSQLitePath string

	// Postgres audit database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		JWTSecret:         getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		WorkspaceTokenTTL: getDuration("WORKSPACE_TOKEN_TTL", 24*time.Hour),
		WorkspaceIdleTTL:  getDuration("WORKSPACE_IDLE_TTL", 2*time.Hour),
		AdminAPIKey:       getEnv("ADMIN_API_KEY", ""),

		CanvasWidth: getFloat("CANVAS_WIDTH", 2400),
		CardWidth:   getFloat("CARD_WIDTH", 320),

		AuditDBDriver:   getEnv("AUDIT_DB_DRIVER", "sqlite"),
		AuditSQLitePath: getEnv("AUDIT_SQLITE_PATH", "dealcanvas_audit.db"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "dealcanvas"),
		DBPassword: getEnv("DB_PASSWORD", "dealcanvas"),
		DBName:     getEnv("DB_NAME", "dealcanvas"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getFloat(key string, defaultValue float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, raw, defaultValue)
		return defaultValue
	}
	return f
}

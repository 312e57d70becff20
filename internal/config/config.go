package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ServerPort int
	BaseURL    string

	DBDSN string

	JWTSecret      string
	SessionTimeout time.Duration

	CORSOrigin        string
	AllowRegistration bool

	GeminiAPIKey string
	UploadDir    string
}

// Load reads .env (if present) and builds the config with sane defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := &Config{
		ServerPort:        8080,
		BaseURL:           getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		DBDSN:             os.Getenv("DB_DSN"),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", "trading_dev_secret_change_me"),
		SessionTimeout:    30 * time.Minute,
		CORSOrigin:        getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
		AllowRegistration: os.Getenv("ALLOW_REGISTRATION") == "true",
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		UploadDir:         getEnvOrDefault("UPLOAD_DIR", "./uploads"),
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.ServerPort = p
		}
	}

	// SESSION_TIMEOUT is in seconds, matching the old deployment's setting
	if raw := os.Getenv("SESSION_TIMEOUT"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.SessionTimeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

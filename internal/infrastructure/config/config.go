// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresDSN string

	// MongoDB (inbound payload archive)
	MongoURI string
	MongoDB  string

	// Flight status vocabulary
	DefaultStatusCode string
	StatusCodes       []string

	// Integration hub
	HubBaseURL      string
	HubBearerToken  string
	HubClientID     string
	HubClientSecret string
	HubTokenURL     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=fis password=fis dbname=fis port=5432 sslmode=disable"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "fis"),

		DefaultStatusCode: getEnv("FIS_DEFAULT_STATUS", "SCHEDULED"),
		StatusCodes:       splitList(getEnv("FIS_STATUS_CODES", "SCHEDULED,BOARDING,DELAYED,CANCELLED,DEPARTED,ARRIVED,DIVERTED")),

		HubBaseURL:      getEnv("HUB_BASE_URL", ""),
		HubBearerToken:  getEnv("HUB_TOKEN", ""),
		HubClientID:     getEnv("HUB_CLIENT_ID", ""),
		HubClientSecret: getEnv("HUB_CLIENT_SECRET", ""),
		HubTokenURL:     getEnv("HUB_TOKEN_URL", ""),
	}

	return config, nil
}

// EndpointFor resolves the outbound hub endpoint for an event category. The
// environment is consulted on every call so endpoint changes take effect on
// the next dispatch. A per-category HUB_<CATEGORY>_URL overrides the base URL
// convention.
func (c *Config) EndpointFor(category string) string {
	if url := os.Getenv("HUB_" + category + "_URL"); url != "" {
		return url
	}

	base := os.Getenv("HUB_BASE_URL")
	if base == "" {
		base = c.HubBaseURL
	}
	if base == "" {
		return ""
	}

	return fmt.Sprintf("%s/api/v1/notifications/%s", strings.TrimRight(base, "/"), strings.ToLower(category))
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.ToUpper(trimmed))
		}
	}
	return out
}

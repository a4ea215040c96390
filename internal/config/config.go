package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration from environment variables.
type Config struct {
	// Application
	Addr      string
	StatePath string
	LogPath   string

	// Backend API
	BackendBaseURL string
	BackendTimeout time.Duration

	// OpenTelemetry
	OTELEnabled              bool
	OTELExporterOTLPEndpoint string
	OTELExporterOTLPInsecure bool
	OTELServiceName          string
}

// Load reads configuration from a .env file (if present) and the
// environment, with defaults for everything.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// The .env file is optional; only report real errors.
		if _, ok := err.(*os.PathError); !ok {
			slog.Warn("could not load .env file", "error", err)
		}
	}

	return &Config{
		Addr:      getEnv("STOREFRONT_ADDR", ":8080"),
		StatePath: getEnv("STOREFRONT_STATE", "storefront.sqlite3"),
		LogPath:   getEnv("STOREFRONT_LOG", ""),

		BackendBaseURL: getEnv("STOREFRONT_BACKEND_URL", "http://localhost:8000/api"),
		BackendTimeout: getEnvDuration("STOREFRONT_BACKEND_TIMEOUT", 15*time.Second),

		OTELEnabled:              getEnvBool("OTEL_ENABLED", false),
		OTELExporterOTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		OTELExporterOTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELServiceName:          getEnv("OTEL_SERVICE_NAME", "storefront"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}

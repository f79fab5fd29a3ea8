package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	LogLevel string

	// Inbound basic auth credentials protecting /export and /api routes.
	AuthUsername string
	AuthPassword string

	// Upstream document-AI API. The URL template carries {queue_id} and
	// {annotation_id} placeholders.
	DocAIAPIToken    string
	DocAIURLTemplate string

	// Downstream webhook receiving the converted document.
	SinkURL string

	DatabasePath string

	HTTPClientTimeout time.Duration
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	Cfg = &AppConfig{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AuthUsername: getEnv("AUTH_USERNAME", ""),
		AuthPassword: getEnv("AUTH_PASSWORD", ""),

		DocAIAPIToken:    getEnv("DOCAI_API_TOKEN", ""),
		DocAIURLTemplate: getEnv("DOCAI_URL_TEMPLATE", ""),

		SinkURL: getEnv("SINK_URL", ""),

		DatabasePath: getEnv("DATABASE_PATH", "./docbridge.db"),

		HTTPClientTimeout: getEnvAsDuration("HTTP_CLIENT_TIMEOUT", 30*time.Second),
	}

	if Cfg.AuthUsername == "" || Cfg.AuthPassword == "" {
		log.Fatalf("FATAL: AUTH_USERNAME and AUTH_PASSWORD must be set in environment or .env file.")
	}
	if Cfg.DocAIURLTemplate == "" {
		log.Fatalf("FATAL: DOCAI_URL_TEMPLATE is required, but it's not set in environment or .env file.")
	}
	if Cfg.SinkURL == "" {
		log.Fatalf("FATAL: SINK_URL is required, but it's not set in environment or .env file.")
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

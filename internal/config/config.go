package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// CasdoorConfig holds the settings for the Casdoor identity provider.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// KafkaConfig holds the settings for the domain event publisher. Publishing
// is disabled when no brokers are configured.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ImportConfig holds the settings for the spreadsheet bulk import.
type ImportConfig struct {
	// HasHeaderRow skips the first row of every sheet. The legacy importer
	// treated row 1 as data; defaulting to true corrects that.
	HasHeaderRow bool
	// MaxUploadBytes bounds the accepted upload size.
	MaxUploadBytes int64
}

type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	Casdoor CasdoorConfig
	Kafka   KafkaConfig
	Import  ImportConfig
}

// LoadConfig reads configuration from the environment, loading a local .env
// file first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: os.Getenv("CASDOOR_ORGANIZATION"),
			Application:  os.Getenv("CASDOOR_APPLICATION"),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "admin-service.events"),
		},
		Import: ImportConfig{
			HasHeaderRow:   getEnvBool("IMPORT_HAS_HEADER_ROW", true),
			MaxUploadBytes: getEnvInt64("IMPORT_MAX_UPLOAD_BYTES", 10<<20),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

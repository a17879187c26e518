package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional, enables the analysis event stream
	// and per-client rate limiting of /analyze)
	RedisURL string
	// AnalyzeRateLimit is the number of /analyze calls allowed per client IP per hour.
	// 0 (the default) disables it.
	AnalyzeRateLimit int

	// S3 configuration (optional, enables the analysis archive)
	S3BucketName string
	AWSRegion    string

	// Completion API configuration
	LLMProvider    string
	LLMAPIURL      string
	YandexAPIKey   string
	YandexFolderID string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ProviderYandex = "yandex"
	ProviderOpenAI = "openai"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI, Test:
		loadEnvConfig(cfg)
	case Development, Production:
		loadEnvConfig(cfg)
		loadSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	applyDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads every setting from the process environment
func loadEnvConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	cfg.DBDriver = os.Getenv("DB_DRIVER")
	cfg.DBPath = os.Getenv("DB_PATH")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")

	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.AnalyzeRateLimit = parseLimit(os.Getenv("ANALYZE_RATE_LIMIT"))

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	cfg.LLMProvider = os.Getenv("LLM_PROVIDER")
	cfg.LLMAPIURL = os.Getenv("LLM_API_URL")
	cfg.YandexAPIKey = os.Getenv("YA_API_KEY")
	cfg.YandexFolderID = os.Getenv("YA_FOLDER_ID")
}

// loadSecrets fills sensitive values from Docker secrets when the environment left them empty
func loadSecrets(cfg *Config) {
	fill := func(dst *string, name string) {
		if *dst == "" {
			*dst = readSecret(name)
		}
	}

	fill(&cfg.DBUser, "db_user")
	fill(&cfg.DBPassword, "db_password")
	fill(&cfg.RedisURL, "redis_url")
	fill(&cfg.YandexAPIKey, "ya_api_key")
	fill(&cfg.YandexFolderID, "ya_folder_id")
}

func applyDefaults(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "5000"
	}
	if cfg.ServerHost == "" {
		cfg.ServerHost = "0.0.0.0"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = DriverSQLite
	}
	if cfg.DBDriver == DriverSQLite && cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("instance", "foodsnap.db")
	}
	if cfg.DBDriver == DriverPostgres {
		if cfg.DBPort == "" {
			cfg.DBPort = "5432"
		}
		if cfg.DBSSLMode == "" {
			cfg.DBSSLMode = "disable"
		}
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = ProviderYandex
	}
}

// HasCompletionCredentials reports whether both Yandex credentials are configured
func (c *Config) HasCompletionCredentials() bool {
	return c.YandexAPIKey != "" && c.YandexFolderID != ""
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseLimit returns 0 for an empty value and -1 for a malformed one so
// validation can reject it
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return -1
	}
	return n
}

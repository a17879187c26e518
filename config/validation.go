package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable.
// Missing completion credentials are deliberately not an error: the
// completion client reports them per request instead.
func ValidateConfig(cfg *Config) error {
	var errors []string

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			errors = append(errors, ValidationError{"DB_PATH", "is required for the sqlite driver"}.Error())
		}
	case DriverPostgres:
		for field, value := range map[string]string{
			"DB_HOST": cfg.DBHost,
			"DB_USER": cfg.DBUser,
			"DB_NAME": cfg.DBName,
		} {
			if value == "" {
				errors = append(errors, ValidationError{field, "is required for the postgres driver"}.Error())
			}
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required for the postgres driver")
		}
	default:
		errors = append(errors, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	switch cfg.LLMProvider {
	case ProviderYandex, ProviderOpenAI:
	default:
		errors = append(errors, ValidationError{"LLM_PROVIDER", fmt.Sprintf("unsupported provider %q", cfg.LLMProvider)}.Error())
	}

	if cfg.S3BucketName != "" && cfg.AWSRegion == "" {
		errors = append(errors, ValidationError{"AWS_REGION", "is required when S3_BUCKET_NAME is set"}.Error())
	}

	if cfg.AnalyzeRateLimit < 0 {
		errors = append(errors, ValidationError{"ANALYZE_RATE_LIMIT", "must be a non-negative integer"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

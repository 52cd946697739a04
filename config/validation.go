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

// driverRequirements lists the settings each storage driver needs
var driverRequirements = map[string][]string{
	DriverMemory:   {},
	DriverSQLite:   {"SQLITE_PATH"},
	DriverPostgres: {"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
	DriverRedis:    {},
	DriverS3:       {"S3_BUCKET_NAME", "AWS_REGION"},
}

// ValidateConfig checks that the settings required by the selected storage
// driver are present
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"}.Error())
	}
	if strings.TrimSpace(cfg.StorageSlot) == "" {
		errs = append(errs, ValidationError{"STORAGE_SLOT", "is required"}.Error())
	}
	if cfg.RateLimitWrites < 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT_WRITES", "must not be negative"}.Error())
	}

	required, ok := driverRequirements[cfg.StorageDriver]
	if !ok {
		errs = append(errs, ValidationError{"STORAGE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StorageDriver)}.Error())
	}
	for _, key := range required {
		if settingValue(cfg, key) == "" {
			errs = append(errs, ValidationError{key, fmt.Sprintf("is required for the %s driver", cfg.StorageDriver)}.Error())
		}
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DBPassword == "" {
			errs = append(errs, "db_password secret or DB_PASSWORD is required for the postgres driver")
		}
	case DriverRedis:
		if cfg.RedisURL == "" && (cfg.RedisHost == "" || cfg.RedisPort == "") {
			errs = append(errs, "REDIS_URL or REDIS_HOST and REDIS_PORT are required for the redis driver")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

func settingValue(cfg *Config, key string) string {
	switch key {
	case "SQLITE_PATH":
		return cfg.SQLitePath
	case "DB_HOST":
		return cfg.DBHost
	case "DB_PORT":
		return cfg.DBPort
	case "DB_USER":
		return cfg.DBUser
	case "DB_NAME":
		return cfg.DBName
	case "S3_BUCKET_NAME":
		return cfg.S3Bucket
	case "AWS_REGION":
		return cfg.AWSRegion
	}
	return ""
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers selectable with STORAGE_DRIVER
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment `yaml:"-"`

	// Server configuration
	ServerHost  string   `yaml:"server_host"`
	ServerPort  string   `yaml:"server_port"`
	CORSOrigins []string `yaml:"cors_origins"`

	// Inventory persistence
	StorageDriver string `yaml:"storage_driver"`
	StorageSlot   string `yaml:"storage_slot"`
	SQLitePath    string `yaml:"sqlite_path"`

	// Database configuration
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"-"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_ssl_mode"`

	// Redis configuration
	RedisHost      string `yaml:"redis_host"`
	RedisPort      string `yaml:"redis_port"`
	RedisPassword  string `yaml:"-"`
	RedisDB        int    `yaml:"redis_db"`
	RedisURL       string `yaml:"redis_url"`
	RedisKeyPrefix string `yaml:"redis_key_prefix"`

	// S3 configuration
	S3Bucket   string `yaml:"s3_bucket"`
	S3Endpoint string `yaml:"s3_endpoint"`
	AWSRegion  string `yaml:"aws_region"`

	// Writes allowed per client per minute; 0 disables rate limiting
	RateLimitWrites int `yaml:"rate_limit_writes"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Env:            Development,
		ServerHost:     "0.0.0.0",
		ServerPort:     "8080",
		CORSOrigins:    []string{"http://localhost:5173"},
		StorageDriver:  DriverSQLite,
		StorageSlot:    "foodItems",
		SQLitePath:     "freshkeep.db",
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "postgres",
		DBName:         "freshkeep",
		DBSSLMode:      "disable",
		RedisHost:      "localhost",
		RedisPort:      "6379",
		RedisKeyPrefix: "freshkeep",
		AWSRegion:      "us-east-1",
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// (CONFIG_FILE), environment variables and Docker secrets, in that order.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env == Development {
		// A missing .env file is fine
		_ = godotenv.Load()
	}

	cfg := Default()
	cfg.Env = env

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment configuration: %w", err)
	}
	loadSecrets(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func loadEnv(cfg *Config) error {
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.StorageDriver, "STORAGE_DRIVER")
	setString(&cfg.StorageSlot, "STORAGE_SLOT")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	setString(&cfg.DBHost, "DB_HOST")
	setString(&cfg.DBPort, "DB_PORT")
	setString(&cfg.DBUser, "DB_USER")
	setString(&cfg.DBPassword, "DB_PASSWORD")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.DBSSLMode, "DB_SSL_MODE")
	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.RedisKeyPrefix, "REDIS_KEY_PREFIX")
	setString(&cfg.S3Bucket, "S3_BUCKET_NAME")
	setString(&cfg.S3Endpoint, "S3_ENDPOINT")
	setString(&cfg.AWSRegion, "AWS_REGION")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if err := setInt(&cfg.RedisDB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&cfg.RateLimitWrites, "RATE_LIMIT_WRITES"); err != nil {
		return err
	}
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	return nil
}

// loadSecrets fills passwords from Docker secrets when the environment did
// not provide them
func loadSecrets(cfg *Config) {
	if cfg.DBPassword == "" {
		cfg.DBPassword = readSecret("db_password")
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = readSecret("redis_password")
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the console.
type Config struct {
	App     AppConfig
	API     APIConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Images  ImageConfig
	Console ConsoleConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// APIConfig points at the remote records API.
type APIConfig struct {
	BaseURL         string
	TimeoutSeconds  int
	MaxConnsPerHost int
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level      string
	Output     string // stdout, file, both
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// AuthConfig defines session token verification parameters.
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
}

// ImageConfig selects and configures the image upload backend.
type ImageConfig struct {
	Driver       string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3PathStyle  bool
	MaxBytes     int64
	PublicPrefix string
}

// ConsoleConfig tunes the view layer and workspace lifetime.
type ConsoleConfig struct {
	PageSize             int
	IdleTimeoutMinutes   int
	SweepIntervalSeconds int
}

// IdleTimeout is how long an unused workspace is kept. Zero keeps it until
// its token expires.
func (c ConsoleConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// SweepInterval is the period of the workspace eviction sweep.
func (c ConsoleConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "directory-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		API: APIConfig{
			BaseURL:         strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
			TimeoutSeconds:  getEnvAsInt("API_TIMEOUT_SECONDS", 15),
			MaxConnsPerHost: getEnvAsInt("API_MAX_CONNS_PER_HOST", 64),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/console.log"),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 14),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", "dev-secret"),
			JWTIssuer: os.Getenv("AUTH_JWT_ISSUER"),
		},
		Images: ImageConfig{
			Driver:       strings.ToLower(getEnv("IMAGE_DRIVER", "memory")),
			S3Bucket:     os.Getenv("IMAGE_S3_BUCKET"),
			S3Region:     getEnv("IMAGE_S3_REGION", "us-east-1"),
			S3Endpoint:   os.Getenv("IMAGE_S3_ENDPOINT"),
			S3PathStyle:  getEnvAsBool("IMAGE_S3_PATH_STYLE", false),
			MaxBytes:     int64(getEnvAsInt("IMAGE_MAX_BYTES", 5*1024*1024)),
			PublicPrefix: getEnv("IMAGE_PUBLIC_PREFIX", "/public/"),
		},
		Console: ConsoleConfig{
			PageSize:             getEnvAsInt("CONSOLE_PAGE_SIZE", 25),
			IdleTimeoutMinutes:   getEnvAsInt("CONSOLE_IDLE_TIMEOUT_MINUTES", 30),
			SweepIntervalSeconds: getEnvAsInt("CONSOLE_SWEEP_INTERVAL_SECONDS", 60),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, errors.New("API_BASE_URL required")
	}
	if cfg.Images.Driver == "s3" && cfg.Images.S3Bucket == "" {
		return nil, errors.New("IMAGE_S3_BUCKET required for s3 image driver")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout bounds a single records API call when the caller sets no deadline.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hrledger/internal/platform/kv"
)

type Config struct {
	Addr               string
	Environment        string
	LogLevel           string
	StorageDriver      string
	DatabaseURL        string
	SQLitePath         string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RedisPrefix        string
	DataEncryptionKey  string
	JWTSecret          string
	SessionTTL         time.Duration
	StoreMaxValueBytes int
	SeedAdminUsername  string
	SeedAdminPassword  string
	AllowSelfSignup    bool
	RunMigrations      bool
	RunSeed            bool
	MigrationsDir      string
	MaxBodyBytes       int64
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration
	MetricsEnabled     bool
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StorageDriver:      getEnv("STORAGE_DRIVER", kv.DriverMemory),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SQLitePath:         getEnv("SQLITE_PATH", "hrledger.db"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPrefix:        getEnv("REDIS_PREFIX", "hrledger:"),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		SessionTTL:         getEnvDuration("SESSION_TTL", time.Hour),
		StoreMaxValueBytes: getEnvInt("STORE_MAX_VALUE_BYTES", 5*1024*1024),
		SeedAdminUsername:  getEnv("SEED_ADMIN_USERNAME", ""),
		SeedAdminPassword:  getEnv("SEED_ADMIN_PASSWORD", ""),
		AllowSelfSignup:    getEnvBool("ALLOW_SELF_SIGNUP", true),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", true),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", ""),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case kv.DriverMemory:
	case kv.DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
	case kv.DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite storage driver")
		}
	case kv.DriverRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis storage driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not one of memory, postgres, sqlite, redis", c.StorageDriver)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Environment == "production" {
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.StorageDriver == kv.DriverMemory {
			return fmt.Errorf("STORAGE_DRIVER memory keeps no data across restarts and is not allowed in production")
		}
	}
	if (c.SeedAdminUsername == "") != (c.SeedAdminPassword == "") {
		return fmt.Errorf("SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD must be set together")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.StoreMaxValueBytes < 1024 {
		return fmt.Errorf("STORE_MAX_VALUE_BYTES must be at least 1024")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// StorageConfig holds object storage settings. Driver selects the backend
// ("minio" or "s3"); both speak the S3 protocol.
type StorageConfig struct {
	Driver    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base used to build public asset URLs. When empty it is
	// derived from the endpoint and bucket.
	PublicURL string
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret              string
	TokenTTL               time.Duration
	BcryptCost             int
	AllowAdminRegistration bool
	LoginMaxAttempts       int
	LoginLockWindow        time.Duration
}

// RedisConfig holds the optional Redis connection used for login throttling.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SweeperConfig controls the background orphan cleanup.
type SweeperConfig struct {
	Schedule  string
	BatchSize int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env         string
	AppHost     string
	Port        string
	BodyLimitMB int
	Database    DatabaseConfig
	Storage     StorageConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Sweeper     SweeperConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Env:         getEnv("APP_ENV", "production"),
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 25),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "minio"),
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			Region:    getEnv("STORAGE_REGION", "us-east-1"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", ""),
			UseSSL:    getEnvBool("STORAGE_USE_SSL", false),
			PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:              getEnv("JWT_SECRET", ""),
			TokenTTL:               getEnvDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
			BcryptCost:             getEnvInt("BCRYPT_COST", 10),
			AllowAdminRegistration: getEnvBool("ALLOW_ADMIN_REGISTRATION", true),
			LoginMaxAttempts:       getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
			LoginLockWindow:        getEnvDuration("LOGIN_LOCK_WINDOW", 15*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Sweeper: SweeperConfig{
			Schedule:  getEnv("ORPHAN_SWEEP_CRON", "@every 15m"),
			BatchSize: getEnvInt("ORPHAN_SWEEP_BATCH", 50),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("72h") and a day suffix ("7d").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n := len(v); n > 1 && v[n-1] == 'd' {
		days, err := strconv.Atoi(v[:n-1])
		if err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour
		}
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

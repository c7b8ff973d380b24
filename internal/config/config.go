package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	Debug bool

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SecretKey string
	JWTVerify bool

	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFromName string
	PortalURL    string

	OutboxWorker      bool
	OutboxSchedule    string
	OutboxBatch       int
	OutboxMaxAttempts int
	ReconcileSchedule string

	CourseCacheTTL time.Duration
}

// Load reads .env (unless ENV_CHECK says the environment is already set up)
// and builds the configuration from environment variables.
func Load() (Config, error) {
	if os.Getenv("ENV_CHECK") == "" {
		// A missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
	}

	cfg := Config{
		Port:  getenv("PORT", "3005"),
		Debug: getenvBool("DEBUG", false),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBName:     getenv("DB_NAME", "isml"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		SecretKey: os.Getenv("SECRET_KEY"),
		JWTVerify: getenvBool("JWT_VERIFY", true),

		MailHost:     getenv("MAIL_HOST", "smtp.gmail.com"),
		MailPort:     getenvInt("MAIL_PORT", 587),
		MailUser:     os.Getenv("MAIL_USER"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFromName: getenv("MAIL_FROM_NAME", "ISML Team"),
		PortalURL:    getenv("PORTAL_URL", "https://studentportal.iypan.com/login"),

		OutboxWorker:      getenvBool("OUTBOX_WORKER", true),
		OutboxSchedule:    getenv("OUTBOX_SCHEDULE", "@every 10s"),
		OutboxBatch:       getenvInt("OUTBOX_BATCH", 20),
		OutboxMaxAttempts: getenvInt("OUTBOX_MAX_ATTEMPTS", 5),
		ReconcileSchedule: getenv("RECONCILE_SCHEDULE", "0 0 3 * * *"),

		CourseCacheTTL: getenvDuration("COURSE_CACHE_TTL", 10*time.Minute),
	}

	if cfg.JWTVerify && cfg.SecretKey == "" {
		return cfg, errors.New("SECRET_KEY is required when JWT_VERIFY is enabled")
	}
	if cfg.OutboxMaxAttempts < 1 {
		return cfg, fmt.Errorf("OUTBOX_MAX_ATTEMPTS must be positive, got %d", cfg.OutboxMaxAttempts)
	}
	return cfg, nil
}

// DSN is the Postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

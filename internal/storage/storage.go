package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"isml_backend/internal/apperr"
	"isml_backend/internal/config"
	"isml_backend/internal/logger"
	"isml_backend/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func ConnectDatabase(cfg config.Config) (*gorm.DB, error) {
	level := gormLogger.Warn
	if cfg.Debug {
		level = gormLogger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("database connected")
	return db, nil
}

// ConnectTestingDatabase opens the database named by the TEST_DB_* variables.
// It returns nil when TEST_DB_HOST is unset so integration tests can skip.
func ConnectTestingDatabase() (*gorm.DB, error) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return nil, nil
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host,
		os.Getenv("TEST_DB_PORT"),
		os.Getenv("TEST_DB_USER"),
		os.Getenv("TEST_DB_PASSWORD"),
		os.Getenv("TEST_DB_NAME"))
	return gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger.Discard})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

func InitRedis(cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return client, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

// Translate maps a gorm or Postgres error onto the apperr taxonomy.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperr.Wrap(apperr.ErrDuplicate, err)
		case "23503": // foreign_key_violation
			return apperr.Wrap(apperr.ErrReference, err)
		}
	}
	return apperr.Wrap(apperr.ErrPersistence, err)
}

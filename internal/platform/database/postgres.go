package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
}

// NewPostgresDB opens the shared connection pool, retrying while the database starts up.
func NewPostgresDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 10
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	var err error
	for i := 1; i <= cfg.MaxRetries; i++ {
		slog.Info("Connecting to database", "attempt", i, "max_attempts", cfg.MaxRetries)

		var db *sql.DB
		db, err = sql.Open("postgres", cfg.DSN)
		if err == nil {
			err = db.PingContext(ctx)
			if err == nil {
				configurePool(db, cfg)
				slog.Info("Database connected successfully")
				return db, nil
			}
			db.Close()
		}

		slog.Warn("Database not ready yet", "error", err, "retry_in", cfg.RetryDelay.String())

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database: %w", err)
}

func configurePool(db *sql.DB, cfg Config) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// NewGormDB wraps an existing pool so gorm and database/sql share connections.
func NewGormDB(db *sql.DB) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return gdb, nil
}

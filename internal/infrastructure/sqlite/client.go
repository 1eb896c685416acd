package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/fastygo/progress/assets"
	"github.com/fastygo/progress/internal/config"
)

// Open opens (creating if needed) the SQLite database file.
func Open(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*sqlx.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open("sqlite3", cfg.Path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("opened sqlite database", zap.String("path", cfg.Path))
	return db, nil
}

// RunMigrations applies the embedded sqlite migrations to db.
func RunMigrations(db *sqlx.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(assets.Migrations, "migrations/sqlite")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logger.Info("sqlite migrations applied")
	return nil
}

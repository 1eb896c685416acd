package postgres

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fastygo/progress/assets"
	"github.com/fastygo/progress/internal/config"
)

// RunMigrations applies the embedded postgres migrations.
func RunMigrations(cfg config.DatabaseConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	sqlDB, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(assets.Migrations, "migrations/postgres")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.Name, driver)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logger.Info("postgres migrations applied")
	return nil
}

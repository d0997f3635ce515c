package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"jobdispatch/cmd"
	"jobdispatch/internal/adapters/out/postgres/jobrepo"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openDatabase brings the schema up to date and returns the GORM handle. Postgres is
// migrated with the SQL files under DB_MIGRATIONS_PATH; sqlite uses AutoMigrate.
func openDatabase(cfg cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	switch cfg.DBDriver {
	case cmd.DBDriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DBPath+"?_busy_timeout=5000"), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)

		if err = db.AutoMigrate(&jobrepo.JobDTO{}, &jobrepo.DistanceDTO{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("sqlite schema migrated", "path", cfg.DBPath)
		return db, nil

	default:
		if err := runMigrations(cfg, logger); err != nil {
			return nil, err
		}
		db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	}
}

func runMigrations(cfg cmd.Config, logger *slog.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	if err = sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.DBMigrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migration instance: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}
	logger.Info("postgres schema migrated", "version", version, "dirty", dirty)
	return nil
}

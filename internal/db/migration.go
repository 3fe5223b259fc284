package db

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/spdeepak/rex-identity-server/config"
)

func migrationURL(cfg config.PostgresConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(cfg.UserName),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
}

// RunMigrations applies migrations/ (or MIGRATIONS_PATH) up to the latest version.
func RunMigrations(cfg config.PostgresConfig) error {
	migrationsPath := "file://migrations"
	if path, ok := os.LookupEnv("MIGRATIONS_PATH"); ok {
		migrationsPath = "file://" + path
	}
	wd, _ := os.Getwd()
	slog.Info("Setting up migrations",
		"working_directory", wd,
		"migrations_path", migrationsPath,
	)

	m, err := migrate.New(migrationsPath, migrationURL(cfg))
	if err != nil {
		slog.Error("Failed to create migrate instance",
			"error", err,
			"migrations_path", migrationsPath,
			"database", cfg.DBName,
		)
		return err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		slog.Error("Failed to get current migration version", "error", err)
		return err
	}
	if errors.Is(err, migrate.ErrNilVersion) {
		slog.Info("No migrations have been run yet")
	} else {
		slog.Info("Current migration version", "version", version, "dirty", dirty)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("No new migrations to run - database is up to date")
			return nil
		}
		slog.Error("Failed to run migrations up",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return err
	}

	newVersion, dirty, _ := m.Version()
	slog.Info("Database migrations completed successfully", "new_version", newVersion, "dirty", dirty)
	return nil
}

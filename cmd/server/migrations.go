package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/Atr004/StudentHub/internal/platform/postgres"
)

// handleMigrations runs the requested goose migration command against the
// embedded migration files and returns once it completes.
func handleMigrations(db *sql.DB, command string, logger *slog.Logger) error {
	goose.SetBaseFS(postgres.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	logger.Info("executing migrations", slog.String("command", command))

	switch command {
	case "up":
		if err := goose.Up(db, postgres.MigrationsDir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	case "down":
		if err := goose.Down(db, postgres.MigrationsDir); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	case "status":
		if err := goose.Status(db, postgres.MigrationsDir); err != nil {
			return fmt.Errorf("failed to report migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
	}

	logger.Info("migrations completed", slog.String("command", command))
	return nil
}

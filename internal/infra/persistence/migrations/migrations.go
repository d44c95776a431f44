// Package migrations embeds the SQL schema and applies it with goose.
// The SQL is kept portable between PostgreSQL and SQLite.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"blog/config"
	"blog/internal/errors"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies every pending migration for the given driver ("sqlite" or "postgres").
func Up(ctx context.Context, db *sql.DB, driver string, logger *slog.Logger) error {
	dialect, err := dialectFor(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(files)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return errors.Wrap(err, "read schema version")
	}

	if logger != nil {
		logger.Info("Database schema is up to date", slog.String("driver", driver), slog.Int64("version", version))
	}

	return nil
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case config.DriverSQLite:
		return "sqlite3", nil
	case config.DriverPostgres:
		return "postgres", nil
	default:
		return "", errors.Errorf("no migration dialect for driver %q", driver)
	}
}

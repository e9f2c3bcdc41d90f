package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"pressroom/internal/logging"
)

//go:embed sql/*.sql
var migrations embed.FS

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// EnsureMigrated applies every pending embedded migration. It is safe to call
// on each start; goose tracks applied versions in goose_db_version.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	logger := logging.Component("database")
	start := time.Now()

	logger.Info().
		Str("event", "db_migration_start").
		Str("db_host", dbHost).
		Msg("applying schema migrations")

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUp(ctx, db, "sql"); err != nil {
		logger.Error().
			Err(err).
			Str("event", "db_migration_failed").
			Str("db_host", dbHost).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema migration failed")
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Info().
		Str("event", "db_migration_success").
		Str("db_host", dbHost).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("schema is up to date")

	return nil
}

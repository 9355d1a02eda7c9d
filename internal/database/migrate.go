package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/BuzzHive_Go/internal/database/migrations"
)

// MigratePostgres brings the Postgres schema up to date through the pool
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Migrate(ctx, db, goose.DialectPostgres, migrations.Postgres, postgresMigrationsDir)
}

// MigrateSQLite brings a SQLite schema up to date
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	return Migrate(ctx, db, goose.DialectSQLite3, migrations.SQLite, sqliteMigrationsDir)
}

// Migrate applies every pending migration found in dir of fsys
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMigrationsDirMissing, err)
	}

	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateMigrator, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
	}

	log := slog.Default()
	if len(results) == 0 {
		log.Info(LogMsgSchemaUpToDate, "dialect", dialect)
	}
	for _, r := range results {
		log.Info(LogMsgAppliedMigration, "dialect", dialect, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

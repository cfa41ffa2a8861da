// Package db provides database connection pooling via pgx.
package db

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const logPrefix = "db:pool"

// Pool sizing for a catalog that is read once at startup and by the CLI.
const (
	poolMaxConns        = 4
	poolMinConns        = 0
	poolApplicationName = "gamestats"
)

// catalogTables are created by migrations/001_catalog.sql.
var catalogTables = []string{"catalog_settings", "regions", "endpoint_groups", "group_regions"}

// poolConfig parses databaseURL and applies the catalog pool limits.
func poolConfig(databaseURL string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s - failed to parse database URL: %w", logPrefix, err)
	}
	cfg.MaxConns = poolMaxConns
	cfg.MinConns = poolMinConns
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = poolApplicationName
	}
	return cfg, nil
}

// NewPool opens a catalog pool and verifies it with a ping.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("%s - Connecting to %s/%s", logPrefix, cfg.ConnConfig.Host, cfg.ConnConfig.Database))

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s - failed to create pool: %w", logPrefix, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s - failed to ping database: %w", logPrefix, err)
	}
	return pool, nil
}

// RunMigrations applies the migration bodies in order, each in its own transaction.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, migrationFiles []string) error {
	for i, sql := range migrationFiles {
		err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, sql)
			return err
		})
		if err != nil {
			return fmt.Errorf("%s - migration %d of %d failed: %w", logPrefix, i+1, len(migrationFiles), err)
		}
	}
	slog.Info(fmt.Sprintf("%s - Applied %d migrations", logPrefix, len(migrationFiles)))
	return nil
}

// MissingCatalogTables returns the catalog tables absent from the public schema.
func MissingCatalogTables(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx,
		`SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ANY($1)`,
		catalogTables)
	if err != nil {
		return nil, fmt.Errorf("%s - failed to check schema: %w", logPrefix, err)
	}
	present, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s - failed to read schema: %w", logPrefix, err)
	}

	seen := make(map[string]bool, len(present))
	for _, name := range present {
		seen[name] = true
	}
	var missing []string
	for _, name := range catalogTables {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// MigrationStatus prints whether the catalog schema is in place.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool, migrationPath string) error {
	return writeMigrationStatus(ctx, os.Stdout, pool, migrationPath)
}

func writeMigrationStatus(ctx context.Context, w io.Writer, pool *pgxpool.Pool, migrationPath string) error {
	missing, err := MissingCatalogTables(ctx, pool)
	if err != nil {
		return err
	}
	migrations, err := LoadMigrations(migrationPath)
	if err != nil {
		return fmt.Errorf("%s - load migration list: %w", logPrefix, err)
	}

	switch {
	case len(missing) == 0:
		fmt.Fprintf(w, "Migration status: applied (%d migration files in %s)\n", len(migrations), migrationPath)
	case len(missing) == len(catalogTables):
		fmt.Fprintf(w, "Migration status: not applied (run 'gamestats migrate up'). %d migration files in %s\n", len(migrations), migrationPath)
	default:
		fmt.Fprintf(w, "Migration status: partial, missing tables %v (run 'gamestats migrate up')\n", missing)
	}
	return nil
}

// MigrationDown is not supported; migrations are forward-only.
func MigrationDown(ctx context.Context, pool *pgxpool.Pool, _ string) error {
	fmt.Println("Migration down: not supported (migrations are forward-only). Use a database backup to roll back.")
	return nil
}

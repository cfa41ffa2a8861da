package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/morezero/gamestats/internal/config"
	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/db"
)

const catalogLogPrefix = "server:catalog"

// LoadCatalog returns the catalog the client is built from. With STATS_CATALOG_SOURCE=db
// the pool is returned open for health checks; the caller closes it.
func LoadCatalog(ctx context.Context, cfg *config.Config) (*catalog.CatalogConfig, *pgxpool.Pool, error) {
	if !cfg.UseDBCatalog() {
		cat, err := loadCatalogFile(cfg.CatalogFile)
		return cat, nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%s - failed to connect to database: %w", catalogLogPrefix, err)
	}

	if cfg.RunMigrations {
		migrationSQL, err := db.LoadMigrationFiles(cfg.MigrationPath)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s - failed to load migrations: %w", catalogLogPrefix, err)
		}
		if err := db.RunMigrations(ctx, pool, migrationSQL); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s - failed to run migrations: %w", catalogLogPrefix, err)
		}
		if err := db.SeedCatalogFile(ctx, pool, cfg.CatalogFile); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%s - failed to seed catalog: %w", catalogLogPrefix, err)
		}
	}

	cat, err := db.NewRepository(pool).LoadCatalog(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("%s - failed to load catalog from database: %w", catalogLogPrefix, err)
	}
	if len(cat.Groups) == 0 {
		pool.Close()
		return nil, nil, fmt.Errorf("%s - catalog tables are empty (run 'gamestats seed')", catalogLogPrefix)
	}
	slog.Info(fmt.Sprintf("%s - Catalog %s@%s loaded from database", catalogLogPrefix, cat.Name, cat.Version))
	return cat, pool, nil
}

func loadCatalogFile(path string) (*catalog.CatalogConfig, error) {
	var paths []string
	if path != "" {
		paths = append(paths, path)
	}
	cat, err := catalog.LoadCatalogConfig(paths...)
	if err != nil {
		return nil, fmt.Errorf("%s - failed to load catalog: %w", catalogLogPrefix, err)
	}
	slog.Info(fmt.Sprintf("%s - Catalog %s@%s loaded", catalogLogPrefix, cat.Name, cat.Version))
	return cat, nil
}

package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/morezero/gamestats/pkg/catalog"
)

const seedLogPrefix = "db:seed"

// SeedCatalogFile loads a catalog via catalog.LoadCatalogConfig (explicit path first,
// then the usual search order) and seeds it.
func SeedCatalogFile(ctx context.Context, pool *pgxpool.Pool, path string) error {
	var paths []string
	if path != "" {
		paths = append(paths, path)
	}
	cfg, err := catalog.LoadCatalogConfig(paths...)
	if err != nil {
		return fmt.Errorf("%s - load catalog: %w", seedLogPrefix, err)
	}
	return SeedCatalog(ctx, pool, cfg)
}

// SeedCatalog writes cfg into the catalog tables in a single transaction.
// Idempotent: rows are upserted and each seeded group's region list is replaced.
// Groups and regions absent from cfg are left untouched.
func SeedCatalog(ctx context.Context, pool *pgxpool.Pool, cfg *catalog.CatalogConfig) error {
	if cfg == nil {
		return fmt.Errorf("%s - nil catalog", seedLogPrefix)
	}
	if err := catalog.Validate(cfg); err != nil {
		return fmt.Errorf("%s - invalid catalog: %w", seedLogPrefix, err)
	}

	rows := FromCatalogConfig(cfg)
	slog.Info(fmt.Sprintf("%s - Seeding catalog %s@%s: groups=%d regions=%d",
		seedLogPrefix, cfg.Name, cfg.Version, len(rows.Groups), len(rows.Regions)))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s - begin tx: %w", seedLogPrefix, err)
	}
	defer tx.Rollback(ctx)

	for key, value := range rows.Settings {
		_, err := tx.Exec(ctx,
			`INSERT INTO catalog_settings (key, value)
			 VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, modified = NOW()`,
			key, value)
		if err != nil {
			return fmt.Errorf("%s - upsert setting %s: %w", seedLogPrefix, key, err)
		}
	}

	for _, r := range rows.Regions {
		_, err := tx.Exec(ctx,
			`INSERT INTO regions (code, platform_id, host)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (code) DO UPDATE SET
			   platform_id = EXCLUDED.platform_id,
			   host = EXCLUDED.host,
			   modified = NOW()`,
			r.Code, r.PlatformID, r.Host)
		if err != nil {
			return fmt.Errorf("%s - upsert region %s: %w", seedLogPrefix, r.Code, err)
		}
	}

	for _, g := range rows.Groups {
		_, err := tx.Exec(ctx,
			`INSERT INTO endpoint_groups (name, api_version, description)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (name) DO UPDATE SET
			   api_version = EXCLUDED.api_version,
			   description = COALESCE(EXCLUDED.description, endpoint_groups.description),
			   modified = NOW()`,
			g.Name, g.APIVersion, g.Description)
		if err != nil {
			return fmt.Errorf("%s - upsert group %s: %w", seedLogPrefix, g.Name, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM group_regions WHERE group_name = $1`, g.Name); err != nil {
			return fmt.Errorf("%s - reset regions of %s: %w", seedLogPrefix, g.Name, err)
		}
	}

	for _, l := range rows.GroupRegions {
		_, err := tx.Exec(ctx,
			`INSERT INTO group_regions (group_name, region_code)
			 VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			l.GroupName, l.RegionCode)
		if err != nil {
			return fmt.Errorf("%s - link %s/%s: %w", seedLogPrefix, l.GroupName, l.RegionCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s - commit: %w", seedLogPrefix, err)
	}
	slog.Info(fmt.Sprintf("%s - Catalog seeded", seedLogPrefix))
	return nil
}

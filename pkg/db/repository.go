package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/morezero/gamestats/pkg/catalog"
)

const repoLogPrefix = "db:repository"

// Repository provides read access to the persisted catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// LoadCatalog reads all catalog tables in one snapshot and assembles a CatalogConfig.
// An empty database yields a catalog with no groups and no regions.
func (r *Repository) LoadCatalog(ctx context.Context) (*catalog.CatalogConfig, error) {
	slog.Debug(fmt.Sprintf("%s - LoadCatalog", repoLogPrefix))

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("%s - begin tx: %w", repoLogPrefix, err)
	}
	defer tx.Rollback(ctx)

	var rows CatalogRows
	if rows.Settings, err = listSettings(ctx, tx); err != nil {
		return nil, err
	}
	if rows.Regions, err = listRegions(ctx, tx); err != nil {
		return nil, err
	}
	if rows.Groups, err = listEndpointGroups(ctx, tx); err != nil {
		return nil, err
	}
	if rows.GroupRegions, err = listGroupRegions(ctx, tx); err != nil {
		return nil, err
	}

	slog.Info(fmt.Sprintf("%s - Loaded catalog: groups=%d regions=%d", repoLogPrefix, len(rows.Groups), len(rows.Regions)))
	return ToCatalogConfig(rows), nil
}

// ListEndpointGroups returns all endpoint groups ordered by name.
func (r *Repository) ListEndpointGroups(ctx context.Context) ([]EndpointGroupRow, error) {
	return listEndpointGroups(ctx, r.pool)
}

// ListRegions returns all regions ordered by code.
func (r *Repository) ListRegions(ctx context.Context) ([]RegionRow, error) {
	return listRegions(ctx, r.pool)
}

// GetEndpointGroup finds a group by name. Returns nil, nil when absent.
func (r *Repository) GetEndpointGroup(ctx context.Context, name string) (*EndpointGroupRow, error) {
	var g EndpointGroupRow
	err := r.pool.QueryRow(ctx,
		`SELECT name, api_version, description, created, modified
		 FROM endpoint_groups
		 WHERE name = $1`, name,
	).Scan(&g.Name, &g.APIVersion, &g.Description, &g.Created, &g.Modified)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s - GetEndpointGroup failed: %w", repoLogPrefix, err)
	}
	return &g, nil
}

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listSettings(ctx context.Context, q querier) (map[string]string, error) {
	rows, err := q.Query(ctx, `SELECT key, value FROM catalog_settings`)
	if err != nil {
		return nil, fmt.Errorf("%s - list settings failed: %w", repoLogPrefix, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("%s - settings scan failed: %w", repoLogPrefix, err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func listRegions(ctx context.Context, q querier) ([]RegionRow, error) {
	rows, err := q.Query(ctx,
		`SELECT code, platform_id, host, created, modified
		 FROM regions
		 ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s - list regions failed: %w", repoLogPrefix, err)
	}
	defer rows.Close()

	var out []RegionRow
	for rows.Next() {
		var r RegionRow
		if err := rows.Scan(&r.Code, &r.PlatformID, &r.Host, &r.Created, &r.Modified); err != nil {
			return nil, fmt.Errorf("%s - regions scan failed: %w", repoLogPrefix, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func listEndpointGroups(ctx context.Context, q querier) ([]EndpointGroupRow, error) {
	rows, err := q.Query(ctx,
		`SELECT name, api_version, description, created, modified
		 FROM endpoint_groups
		 ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s - list endpoint groups failed: %w", repoLogPrefix, err)
	}
	defer rows.Close()

	var out []EndpointGroupRow
	for rows.Next() {
		var g EndpointGroupRow
		if err := rows.Scan(&g.Name, &g.APIVersion, &g.Description, &g.Created, &g.Modified); err != nil {
			return nil, fmt.Errorf("%s - endpoint groups scan failed: %w", repoLogPrefix, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func listGroupRegions(ctx context.Context, q querier) ([]GroupRegionRow, error) {
	rows, err := q.Query(ctx,
		`SELECT group_name, region_code
		 FROM group_regions
		 ORDER BY group_name ASC, region_code ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s - list group regions failed: %w", repoLogPrefix, err)
	}
	defer rows.Close()

	var out []GroupRegionRow
	for rows.Next() {
		var l GroupRegionRow
		if err := rows.Scan(&l.GroupName, &l.RegionCode); err != nil {
			return nil, fmt.Errorf("%s - group regions scan failed: %w", repoLogPrefix, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

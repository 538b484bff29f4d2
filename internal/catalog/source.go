// Package catalog loads and caches the scheme catalog. The cache is built
// once at startup from the primary source with a bundled-file fallback, then
// served read-only for the process lifetime.
package catalog

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/vaanisetu/scheme-cli/internal/db"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

// Source is a bulk reader of scheme records.
type Source interface {
	FetchAll(ctx context.Context) ([]model.Scheme, error)
}

// PostgresSource reads the schemes table.
type PostgresSource struct {
	pool db.Pool
}

// NewPostgresSource wraps an existing pool; the caller owns its lifecycle.
func NewPostgresSource(pool db.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// NewPostgresSourceFromURL connects a new pool and verifies it with a ping.
// Close releases the pool.
func NewPostgresSourceFromURL(ctx context.Context, connString string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "catalog: ping")
	}
	return &PostgresSource{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *PostgresSource) Close() {
	s.pool.Close()
}

const selectSchemes = `
SELECT
    id,
    name,
    COALESCE(scheme_type, 'general'),
    target_groups,
    eligible_occupations,
    income_limit,
    min_age,
    max_age,
    states,
    documents,
    COALESCE(benefit_summary, ''),
    apply_steps,
    COALESCE(official_url, ''),
    COALESCE(sample_form_url, '')
FROM schemes
ORDER BY name`

// FetchAll returns every scheme record.
func (s *PostgresSource) FetchAll(ctx context.Context) ([]model.Scheme, error) {
	rows, err := s.pool.Query(ctx, selectSchemes)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: query schemes")
	}
	defer rows.Close()

	var schemes []model.Scheme
	for rows.Next() {
		var sc model.Scheme
		err := rows.Scan(
			&sc.ID,
			&sc.Name,
			&sc.SchemeType,
			&sc.TargetGroups,
			&sc.EligibleOccupations,
			&sc.IncomeLimit,
			&sc.MinAge,
			&sc.MaxAge,
			&sc.States,
			&sc.Documents,
			&sc.BenefitSummary,
			&sc.ApplySteps,
			&sc.OfficialURL,
			&sc.SampleFormURL,
		)
		if err != nil {
			return nil, eris.Wrap(err, "catalog: scan scheme")
		}
		schemes = append(schemes, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "catalog: iterate schemes")
	}
	return schemes, nil
}

// FileSource reads schemes from a JSON snapshot bundled with the binary.
// It backs the cold-start fallback path when the database is unreachable.
type FileSource struct {
	Path string
}

// FetchAll decodes the snapshot file.
func (f FileSource) FetchAll(_ context.Context) ([]model.Scheme, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", f.Path)
	}
	var schemes []model.Scheme
	if err := json.Unmarshal(data, &schemes); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", f.Path)
	}
	return schemes, nil
}

// StaticSource serves a fixed in-memory slice. Tests use it to build
// synthetic catalogs.
type StaticSource []model.Scheme

// FetchAll returns the slice as-is.
func (s StaticSource) FetchAll(_ context.Context) ([]model.Scheme, error) {
	return s, nil
}

package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/vaanisetu/scheme-cli/internal/db"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// preparedStatements lists queries to prepare on each new connection for the
// hot-path log operations.
var preparedStatements = map[string]string{
	"insert_query":  `INSERT INTO query_log (id, query, language, profile, data_source, duration_ms, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	"insert_result": `INSERT INTO query_results (id, query_id, scheme_name, score, confidence, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS query_log (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	query       TEXT NOT NULL,
	language    TEXT NOT NULL DEFAULT 'en',
	profile     JSONB NOT NULL,
	data_source TEXT NOT NULL,
	duration_ms BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS query_results (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	query_id    TEXT NOT NULL REFERENCES query_log(id),
	scheme_name TEXT NOT NULL,
	score       INT NOT NULL,
	confidence  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_query_results_query_id ON query_results(query_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) LogQuery(ctx context.Context, rec *QueryRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal profile")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO query_log (id, query, language, profile, data_source, duration_ms, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.Query, rec.Language, profileJSON, rec.DataSource, rec.DurationMS, rec.CreatedAt)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert query")
	}
	return rec.ID, nil
}

func (s *PostgresStore) LogResults(ctx context.Context, queryID string, matches []model.SchemeMatch) error {
	now := time.Now().UTC()
	for _, m := range matches {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO query_results (id, query_id, scheme_name, score, confidence, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), queryID, m.Name, m.Score, m.Confidence, now)
		if err != nil {
			return eris.Wrapf(err, "postgres: insert result for %s", m.Name)
		}
	}
	return nil
}

func (s *PostgresStore) RecentQueries(ctx context.Context, limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, query, language, profile, data_source, duration_ms, created_at FROM query_log ORDER BY created_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: recent queries")
	}
	defer rows.Close()

	var out []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		var profileJSON []byte
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Language, &profileJSON, &rec.DataSource, &rec.DurationMS, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan query")
		}
		if err := json.Unmarshal(profileJSON, &rec.Profile); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal profile")
		}
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate queries")
}

func (s *PostgresStore) Results(ctx context.Context, queryID string) ([]ResultRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, query_id, scheme_name, score, confidence, created_at FROM query_results WHERE query_id = $1 ORDER BY score DESC`,
		queryID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query results")
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var rec ResultRecord
		if err := rows.Scan(&rec.ID, &rec.QueryID, &rec.SchemeName, &rec.Score, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan result")
		}
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate results")
}

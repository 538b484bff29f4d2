package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS query_log (
	id          TEXT PRIMARY KEY,
	query       TEXT NOT NULL,
	language    TEXT NOT NULL DEFAULT 'en',
	profile     TEXT NOT NULL,
	data_source TEXT NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS query_results (
	id          TEXT PRIMARY KEY,
	query_id    TEXT NOT NULL REFERENCES query_log(id),
	scheme_name TEXT NOT NULL,
	score       INTEGER NOT NULL,
	confidence  TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log(created_at);
CREATE INDEX IF NOT EXISTS idx_query_results_query_id ON query_results(query_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LogQuery(ctx context.Context, rec *QueryRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal profile")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO query_log (id, query, language, profile, data_source, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Query, rec.Language, string(profileJSON), rec.DataSource, rec.DurationMS, rec.CreatedAt)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert query")
	}
	return rec.ID, nil
}

func (s *SQLiteStore) LogResults(ctx context.Context, queryID string, matches []model.SchemeMatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, m := range matches {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO query_results (id, query_id, scheme_name, score, confidence, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), queryID, m.Name, m.Score, m.Confidence, now)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert result for %s", m.Name)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit results")
}

func (s *SQLiteStore) RecentQueries(ctx context.Context, limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, language, profile, data_source, duration_ms, created_at FROM query_log ORDER BY created_at DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: recent queries")
	}
	defer rows.Close()

	var out []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		var profileJSON string
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Language, &profileJSON, &rec.DataSource, &rec.DurationMS, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan query")
		}
		if err := json.Unmarshal([]byte(profileJSON), &rec.Profile); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal profile")
		}
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate queries")
}

func (s *SQLiteStore) Results(ctx context.Context, queryID string) ([]ResultRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query_id, scheme_name, score, confidence, created_at FROM query_results WHERE query_id = ? ORDER BY score DESC`,
		queryID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query results")
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var rec ResultRecord
		if err := rows.Scan(&rec.ID, &rec.QueryID, &rec.SchemeName, &rec.Score, &rec.Confidence, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan result")
		}
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate results")
}

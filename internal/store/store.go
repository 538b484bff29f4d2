// Package store persists the query log: every analyzed query, the profile
// extracted from it, and the schemes it matched.
package store

import (
	"context"
	"time"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

// QueryRecord is one logged analysis request.
type QueryRecord struct {
	ID         string        `json:"id"`
	Query      string        `json:"query"`
	Language   string        `json:"language"`
	Profile    model.Profile `json:"profile"`
	DataSource string        `json:"data_source"`
	DurationMS int64         `json:"duration_ms"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ResultRecord is one scheme matched for a logged query.
type ResultRecord struct {
	ID         string    `json:"id"`
	QueryID    string    `json:"query_id"`
	SchemeName string    `json:"scheme_name"`
	Score      int       `json:"score"`
	Confidence string    `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store defines the query log persistence interface.
type Store interface {
	// LogQuery records an analyzed query and returns its assigned ID.
	LogQuery(ctx context.Context, rec *QueryRecord) (string, error)

	// LogResults records the matched schemes for a query.
	LogResults(ctx context.Context, queryID string, matches []model.SchemeMatch) error

	// RecentQueries lists the most recent logged queries, newest first.
	RecentQueries(ctx context.Context, limit int) ([]QueryRecord, error)

	// Results lists the matched schemes recorded for a query.
	Results(ctx context.Context, queryID string) ([]ResultRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// NopStore discards everything. Used when no store driver is configured so
// callers never have to nil-check.
type NopStore struct{}

func (NopStore) LogQuery(context.Context, *QueryRecord) (string, error) { return "", nil }

func (NopStore) LogResults(context.Context, string, []model.SchemeMatch) error { return nil }

func (NopStore) RecentQueries(context.Context, int) ([]QueryRecord, error) { return nil, nil }

func (NopStore) Results(context.Context, string) ([]ResultRecord, error) { return nil, nil }

func (NopStore) Migrate(context.Context) error { return nil }

func (NopStore) Close() error { return nil }

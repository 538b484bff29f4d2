// Package monitoring aggregates usage metrics from the query log.
package monitoring

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"

	"github.com/vaanisetu/scheme-cli/internal/model"
	"github.com/vaanisetu/scheme-cli/internal/store"
)

// maxSampleQueries bounds how many recent queries a snapshot covers.
const maxSampleQueries = 1000

// SchemeCount is one entry in the most-matched-schemes ranking.
type SchemeCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MetricsSnapshot holds a point-in-time view of query log activity.
type MetricsSnapshot struct {
	// Query metrics (within lookback window).
	TotalQueries      int            `json:"total_queries"`
	NeedsMoreInfo     int            `json:"needs_more_info"`
	AvgDurationMS     float64        `json:"avg_duration_ms"`
	QueriesByLanguage map[string]int `json:"queries_by_language"`
	QueriesByCategory map[string]int `json:"queries_by_category"`

	// Match metrics.
	TotalMatches        int           `json:"total_matches"`
	HighConfidenceShare float64       `json:"high_confidence_share"`
	TopSchemes          []SchemeCount `json:"top_schemes"`

	// Metadata.
	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers metrics from the query log.
type Collector struct {
	store store.Store
}

// NewCollector creates a new metrics collector.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// Collect gathers a snapshot of query activity over the given lookback
// window. A non-positive lookback covers all sampled queries.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*MetricsSnapshot, error) {
	snap := &MetricsSnapshot{
		QueriesByLanguage: map[string]int{},
		QueriesByCategory: map[string]int{},
		LookbackHours:     lookbackHours,
		CollectedAt:       time.Now().UTC(),
	}

	queries, err := c.store.RecentQueries(ctx, maxSampleQueries)
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list queries")
	}

	var cutoff time.Time
	if lookbackHours > 0 {
		cutoff = time.Now().UTC().Add(-time.Duration(lookbackHours) * time.Hour)
	}

	var totalDuration int64
	schemeCounts := map[string]int{}
	highMatches := 0

	for _, q := range queries {
		if !cutoff.IsZero() && q.CreatedAt.Before(cutoff) {
			continue
		}
		snap.TotalQueries++
		totalDuration += q.DurationMS

		lang := q.Language
		if lang == "" {
			lang = "en"
		}
		snap.QueriesByLanguage[lang]++

		cat := q.Profile.Category
		if cat == "" {
			cat = model.CategoryGeneral
		}
		snap.QueriesByCategory[cat]++
		if q.Profile.NeedsMoreInfo() {
			snap.NeedsMoreInfo++
		}

		results, err := c.store.Results(ctx, q.ID)
		if err != nil {
			return nil, eris.Wrapf(err, "monitoring: results for %s", q.ID)
		}
		for _, r := range results {
			snap.TotalMatches++
			schemeCounts[r.SchemeName]++
			if r.Confidence == model.ConfidenceHigh {
				highMatches++
			}
		}
	}

	if snap.TotalQueries > 0 {
		snap.AvgDurationMS = float64(totalDuration) / float64(snap.TotalQueries)
	}
	if snap.TotalMatches > 0 {
		snap.HighConfidenceShare = float64(highMatches) / float64(snap.TotalMatches)
	}
	snap.TopSchemes = topSchemes(schemeCounts, 5)

	return snap, nil
}

// topSchemes ranks scheme match counts descending, names ascending on ties.
func topSchemes(counts map[string]int, limit int) []SchemeCount {
	out := make([]SchemeCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, SchemeCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

package catalog

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vaanisetu/scheme-cli/internal/db"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

const schemesMigration = `
CREATE TABLE IF NOT EXISTS schemes (
	id                   TEXT PRIMARY KEY,
	name                 TEXT NOT NULL,
	scheme_type          TEXT,
	target_groups        TEXT[] NOT NULL DEFAULT '{}',
	eligible_occupations TEXT[] NOT NULL DEFAULT '{}',
	income_limit         INT,
	min_age              INT,
	max_age              INT,
	states               TEXT[] NOT NULL DEFAULT '{}',
	documents            TEXT[] NOT NULL DEFAULT '{}',
	benefit_summary      TEXT,
	apply_steps          TEXT[] NOT NULL DEFAULT '{}',
	official_url         TEXT,
	sample_form_url      TEXT
);

CREATE INDEX IF NOT EXISTS idx_schemes_scheme_type ON schemes(scheme_type);
`

var schemeColumns = []string{
	"id", "name", "scheme_type", "target_groups", "eligible_occupations",
	"income_limit", "min_age", "max_age", "states", "documents",
	"benefit_summary", "apply_steps", "official_url", "sample_form_url",
}

// Migrate creates the schemes table if it does not exist.
func Migrate(ctx context.Context, pool db.Pool) error {
	_, err := pool.Exec(ctx, schemesMigration)
	return eris.Wrap(err, "catalog: migrate")
}

// Seed writes scheme records into the database. By default records upsert
// keyed on id, so re-seeding refreshes the catalog in place. With replace the
// table is truncated and reloaded via COPY.
func Seed(ctx context.Context, pool db.Pool, schemes []model.Scheme, replace bool) (int64, error) {
	rows := make([][]any, 0, len(schemes))
	for _, s := range schemes {
		id := s.ID
		if id == "" {
			id = slugify(s.Name)
		}
		rows = append(rows, []any{
			id, s.Name, s.SchemeType, s.TargetGroups, s.EligibleOccupations,
			s.IncomeLimit, s.MinAge, s.MaxAge, s.States, s.Documents,
			s.BenefitSummary, s.ApplySteps, s.OfficialURL, s.SampleFormURL,
		})
	}

	if replace {
		if _, err := pool.Exec(ctx, "TRUNCATE schemes"); err != nil {
			return 0, eris.Wrap(err, "catalog: truncate schemes")
		}
		n, err := db.CopyFrom(ctx, pool, "schemes", schemeColumns, rows)
		if err != nil {
			return 0, err
		}
		zap.L().Info("catalog: schemes replaced", zap.Int64("rows", n))
		return n, nil
	}

	n, err := db.BulkUpsert(ctx, pool, db.UpsertConfig{
		Table:        "schemes",
		Columns:      schemeColumns,
		ConflictKeys: []string{"id"},
	}, rows)
	if err != nil {
		return 0, err
	}
	zap.L().Info("catalog: schemes upserted", zap.Int64("rows", n))
	return n, nil
}

// slugify derives a stable id from the scheme name.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

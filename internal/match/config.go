// Package match implements weighted eligibility scoring and ranking of
// welfare schemes against an applicant profile.
package match

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/vaanisetu/scheme-cli/internal/config"
)

// DefaultConfig returns a config.MatchConfig with the standard weights.
// Category, occupation, income, and age weights follow the 40-30-30-20
// split; state relevance adds 30 for an exact region match or 10 for a
// nationwide one.
func DefaultConfig() config.MatchConfig {
	return config.MatchConfig{
		// Weights.
		CategoryWeight:        40,
		CanonicalBonus:        25,
		GeneralCategoryPoints: 20,
		StudentNoisePenalty:   20,
		OccupationWeight:      30,
		OccupationWildcard:    10,
		IncomeWeight:          30,
		AgeWeight:             20,
		StateWeight:           30,
		NationalWeight:        10,

		// Thresholds.
		MinScore:  40,
		CoreFloor: 75,

		// Result shaping.
		MaxResults: 5,
		MaxHigh:    2,
		MaxMedium:  2,
	}
}

// ValidateConfig checks that a MatchConfig is internally consistent.
func ValidateConfig(c config.MatchConfig) error {
	var errs []string

	weights := map[string]int{
		"category_weight":         c.CategoryWeight,
		"canonical_bonus":         c.CanonicalBonus,
		"general_category_points": c.GeneralCategoryPoints,
		"student_noise_penalty":   c.StudentNoisePenalty,
		"occupation_weight":       c.OccupationWeight,
		"occupation_wildcard":     c.OccupationWildcard,
		"income_weight":           c.IncomeWeight,
		"age_weight":              c.AgeWeight,
		"state_weight":            c.StateWeight,
		"national_weight":         c.NationalWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	if c.MinScore < 0 {
		errs = append(errs, "min_score must be >= 0")
	}
	if c.CoreFloor < c.MinScore {
		errs = append(errs, "core_floor must be >= min_score")
	}
	if c.MaxResults <= 0 {
		errs = append(errs, "max_results must be > 0")
	}
	if c.MaxHigh < 0 || c.MaxMedium < 0 {
		errs = append(errs, "max_high and max_medium must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("match: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

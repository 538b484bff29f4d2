package match

import (
	"strings"

	"github.com/vaanisetu/scheme-cli/internal/config"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

// explicitTrainingKeywords are query words that signal the applicant is
// actually asking for employment help, lifting the confidence cap on
// training schemes.
var explicitTrainingKeywords = []string{"job", "employment", "skill training", "unemployment", "skill"}

// normalize resolves final confidence tiers, recommendation levels, and the
// truncated output list from scored candidates. Candidates must already be
// sorted.
func normalize(p model.Profile, ranked []candidate, cfg config.MatchConfig) []model.SchemeMatch {
	cat := p.Category
	if cat == "" {
		cat = model.CategoryGeneral
	}

	query := strings.ToLower(p.RawQuery)
	hasExplicitTraining := false
	for _, kw := range explicitTrainingKeywords {
		if strings.Contains(query, kw) {
			hasExplicitTraining = true
			break
		}
	}

	highAssigned := 0
	mediumAssigned := 0

	for i := range ranked {
		c := &ranked[i]
		m := &c.match
		nameLower := strings.ToLower(m.Name)

		// Recommendation level.
		switch {
		case strings.Contains(nameLower, "insurance"), containsFold(m.TargetGroups, model.CategoryGeneral):
			m.RecommendationLevel = model.RecommendationSecondary
		case strings.Contains(nameLower, "training"), strings.Contains(nameLower, "kaushalya"):
			m.RecommendationLevel = model.RecommendationSecondary
		case c.isPrimary:
			m.RecommendationLevel = model.RecommendationPrimary
		default:
			m.RecommendationLevel = model.RecommendationSecondary
		}

		// Per-category confidence caps on off-topic scheme types.
		confCap := ""
		switch cat {
		case model.CategoryFarmer:
			switch c.schemeType {
			case model.TypeHealth, model.TypeHousing, model.TypeFinancialSupport,
				model.TypePension, model.TypeGeneral, model.TypeInsurance:
				if !c.isPrimary {
					confCap = model.ConfidenceMedium
				}
			}
		case model.CategoryStudent:
			switch {
			case c.schemeType == model.TypeGeneral || c.schemeType == model.TypeInsurance:
				confCap = model.ConfidenceLow
			case c.schemeType == model.TypeTraining && !hasExplicitTraining:
				confCap = model.ConfidenceMedium
			}
		}

		// Base confidence from score and cap.
		var conf string
		switch {
		case c.score < cfg.MinScore || confCap == model.ConfidenceLow:
			conf = model.ConfidenceLow
		case c.score >= 60 && confCap != model.ConfidenceMedium:
			conf = model.ConfidenceHigh
		case c.score >= 50:
			conf = model.ConfidenceMedium
		default:
			conf = model.ConfidenceLow
		}

		// Hard overrides.
		if c.isCoreMatch && confCap == "" {
			conf = model.ConfidenceHigh
		} else if c.schemeType == model.TypeEducation && cat == model.CategoryStudent && c.score >= 60 {
			conf = model.ConfidenceHigh
		}

		// Scarce tier distribution: overflow demotes one tier at a time.
		switch conf {
		case model.ConfidenceHigh:
			if highAssigned < cfg.MaxHigh {
				m.Confidence = model.ConfidenceHigh
				highAssigned++
			} else if mediumAssigned < cfg.MaxMedium {
				m.Confidence = model.ConfidenceMedium
				mediumAssigned++
			} else {
				m.Confidence = model.ConfidenceLow
			}
		case model.ConfidenceMedium:
			if mediumAssigned < cfg.MaxMedium {
				m.Confidence = model.ConfidenceMedium
				mediumAssigned++
			} else {
				m.Confidence = model.ConfidenceLow
			}
		default:
			m.Confidence = model.ConfidenceLow
		}

		m.EligibilityScore = strings.ToLower(m.Confidence)
	}

	sortCandidates(ranked)

	return truncate(ranked, cfg)
}

// truncate keeps up to three schemes that cleared the minimum score, then
// admits extras only when they add real value: general-class schemes need a
// score above 80, everything else at least 50. General-class schemes are
// labelled so callers can present them apart from the tailored ones.
func truncate(ranked []candidate, cfg config.MatchConfig) []model.SchemeMatch {
	out := make([]model.SchemeMatch, 0, cfg.MaxResults)
	for _, c := range ranked {
		m := c.match

		isGeneral := containsFold(m.TargetGroups, model.CategoryGeneral) ||
			c.schemeType == model.TypeGeneral || c.schemeType == model.TypeInsurance
		if isGeneral {
			m.SimpleReason = "Also Available Scheme: " + m.SimpleReason
		}

		if len(out) < 3 {
			if c.score >= cfg.MinScore {
				m.Sanitize()
				out = append(out, m)
			}
		} else {
			if isGeneral && c.score > 80 {
				m.Sanitize()
				out = append(out, m)
			} else if !isGeneral && c.score >= 50 {
				m.Sanitize()
				out = append(out, m)
			}
		}

		if len(out) >= cfg.MaxResults {
			break
		}
	}
	return out
}

package model

import "strings"

// Confidence tiers for a scheme match. The final distribution is scarce by
// design: at most two High and two Medium per result set.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Recommendation levels distinguish canonical matches from supporting ones.
const (
	RecommendationPrimary   = "primary"
	RecommendationSecondary = "secondary"
)

// SchemeMatch is one ranked result handed to callers. Scheme fields are
// passed through so the transport layer needs no second catalog lookup.
type SchemeMatch struct {
	Name                string   `json:"name"`
	Score               int      `json:"score"`
	Confidence          string   `json:"confidence"`
	EligibilityScore    string   `json:"eligibilityScore"`
	Reason              string   `json:"reason"`
	SimpleReason        string   `json:"simple_reason"`
	Documents           []string `json:"documents"`
	Benefit             string   `json:"benefit"`
	Steps               []string `json:"steps"`
	MatchedFactors      []string `json:"matched_factors"`
	TargetGroups        []string `json:"target_groups"`
	SchemeType          string   `json:"scheme_type,omitempty"`
	EstimatedValue      string   `json:"estimated_value,omitempty"`
	OfficialURL         string   `json:"official_url,omitempty"`
	SampleFormURL       string   `json:"sample_form_url,omitempty"`
	RecommendationLevel string   `json:"recommendation_level"`
}

// HasFactor reports whether the given factor label was recorded during
// scoring.
func (m SchemeMatch) HasFactor(label string) bool {
	for _, f := range m.MatchedFactors {
		if f == label {
			return true
		}
	}
	return false
}

// Sanitize trims every string field and normalizes line endings, so callers
// always receive clean text regardless of how catalog rows were authored.
func (m *SchemeMatch) Sanitize() {
	clean := func(s string) string {
		return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	}
	cleanAll := func(ss []string) {
		for i, s := range ss {
			ss[i] = clean(s)
		}
	}
	m.Name = clean(m.Name)
	m.Confidence = clean(m.Confidence)
	m.EligibilityScore = clean(m.EligibilityScore)
	m.Reason = clean(m.Reason)
	m.SimpleReason = clean(m.SimpleReason)
	m.Benefit = clean(m.Benefit)
	m.EstimatedValue = clean(m.EstimatedValue)
	m.OfficialURL = clean(m.OfficialURL)
	m.SampleFormURL = clean(m.SampleFormURL)
	m.RecommendationLevel = clean(m.RecommendationLevel)
	cleanAll(m.Documents)
	cleanAll(m.Steps)
	cleanAll(m.MatchedFactors)
	cleanAll(m.TargetGroups)
}

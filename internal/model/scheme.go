package model

import "strings"

// SchemeType classifies what a scheme provides. The set is fixed; stale
// catalog rows are reclassified by name during scoring.
const (
	TypeFarmerSupport    = "farmer_support"
	TypeEducation        = "education"
	TypeTraining         = "training"
	TypeFinancialSupport = "financial_support"
	TypeHousing          = "housing"
	TypeHealth           = "health"
	TypePension          = "pension"
	TypeWomenSpecific    = "women_specific"
	TypeInsurance        = "insurance"
	TypeGeneral          = "general"
	TypeBusiness         = "business"
	TypeEmployment       = "employment"
)

// nationwideWildcards are state-list entries meaning the scheme applies in
// every region.
var nationwideWildcards = map[string]bool{
	"all":      true,
	"national": true,
	"india":    true,
	"central":  true,
}

// Scheme is a government welfare program record as sourced from the catalog.
// Records are read-only once loaded.
type Scheme struct {
	ID                  string   `json:"id,omitempty"`
	Name                string   `json:"name"`
	SchemeType          string   `json:"scheme_type"`
	TargetGroups        []string `json:"target_groups"`
	EligibleOccupations []string `json:"eligible_occupations"`
	IncomeLimit         *int     `json:"income_limit,omitempty"`
	MinAge              *int     `json:"min_age,omitempty"`
	MaxAge              *int     `json:"max_age,omitempty"`
	States              []string `json:"states"`
	Documents           []string `json:"documents"`
	BenefitSummary      string   `json:"benefit_summary"`
	ApplySteps          []string `json:"apply_steps"`
	OfficialURL         string   `json:"official_url,omitempty"`
	SampleFormURL       string   `json:"sample_form_url,omitempty"`
}

// NormalizedStates returns the scheme's state list lower-cased with empty
// entries dropped. An empty list is treated as the "all" wildcard.
func (s Scheme) NormalizedStates() []string {
	if len(s.States) == 0 {
		return []string{"all"}
	}
	out := make([]string, 0, len(s.States))
	for _, st := range s.States {
		st = strings.ToLower(strings.TrimSpace(st))
		if st != "" {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		return []string{"all"}
	}
	return out
}

// Nationwide reports whether the scheme applies in every region.
func (s Scheme) Nationwide() bool {
	for _, st := range s.NormalizedStates() {
		if nationwideWildcards[st] {
			return true
		}
	}
	return false
}

// TargetsGroup reports whether the scheme declares the given category tag.
func (s Scheme) TargetsGroup(group string) bool {
	for _, g := range s.TargetGroups {
		if strings.EqualFold(g, group) {
			return true
		}
	}
	return false
}

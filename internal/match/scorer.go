package match

import (
	"sort"
	"strings"

	"github.com/vaanisetu/scheme-cli/internal/config"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

// Matched factor labels recorded during scoring. Explanation text keys off
// these exact strings.
const (
	factorOccupation        = "Occupation"
	factorOccupationGeneral = "Occupation (General)"
	factorIncomeLevel       = "Income Level"
	factorIncomeNoLimit     = "Income (No Limit)"
	factorAge               = "Age"
	factorState             = "State"
	factorNationwide        = "Location (All India)"
)

// candidate pairs a scored match with the ranking metadata the normalization
// pass needs. Only the embedded match survives into the final output.
type candidate struct {
	match           model.SchemeMatch
	schemeType      string
	score           int
	sortPriority    int
	isPrimary       bool
	isCoreMatch     bool
	isStateSpecific bool
}

// classifyType resolves the effective scheme type. Name keywords override
// stale catalog tags: anything mentioning insurance is insurance, anything
// mentioning pension is a pension.
func classifyType(s model.Scheme) string {
	name := strings.ToLower(s.Name)
	if strings.Contains(name, "bima") || strings.Contains(name, "insurance") {
		return model.TypeInsurance
	}
	if strings.Contains(name, "pension") {
		return model.TypePension
	}
	if s.SchemeType == "" {
		return model.TypeGeneral
	}
	return s.SchemeType
}

// canonicalBonus returns the bonus for a scheme type that is the canonical
// benefit for the given category, e.g. education schemes for students.
// Students also earn smaller bonuses for financial support and training.
func canonicalBonus(cat, schemeType string, cfg config.MatchConfig) (bonus int, primary bool) {
	switch cat {
	case model.CategoryStudent:
		switch schemeType {
		case model.TypeEducation:
			return cfg.CanonicalBonus, true
		case model.TypeFinancialSupport:
			return 15, false
		case model.TypeTraining:
			return 5, false
		}
	case model.CategoryFarmer:
		if schemeType == model.TypeFarmerSupport {
			return cfg.CanonicalBonus, true
		}
	case model.CategoryBusiness:
		if schemeType == model.TypeFinancialSupport || schemeType == model.TypeBusiness {
			return cfg.CanonicalBonus, true
		}
	case model.CategoryWomen:
		if schemeType == model.TypeWomenSpecific {
			return cfg.CanonicalBonus, true
		}
	case model.CategorySenior:
		if schemeType == model.TypePension {
			return cfg.CanonicalBonus, true
		}
	case model.CategoryWorker:
		switch schemeType {
		case model.TypeFinancialSupport, model.TypeTraining, model.TypeEmployment:
			return cfg.CanonicalBonus, true
		}
	}
	return 0, false
}

// isCoreMatch reports the category/type pairings whose confidence must never
// be downgraded by normalization.
func isCoreMatch(cat, schemeType string) bool {
	switch {
	case cat == model.CategoryStudent && schemeType == model.TypeEducation:
		return true
	case cat == model.CategoryFarmer && schemeType == model.TypeFarmerSupport:
		return true
	case cat == model.CategorySenior && schemeType == model.TypePension:
		return true
	}
	return false
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}

// loweredNonEmpty lower-cases a string slice and drops blank entries.
func loweredNonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// scoreScheme scores one scheme against the profile. The second return is
// false when a hard filter excludes the scheme or its score stays below the
// minimum.
func scoreScheme(p model.Profile, scheme model.Scheme, cfg config.MatchConfig) (candidate, bool) {
	schemeType := classifyType(scheme)
	targets := loweredNonEmpty(scheme.TargetGroups)

	cat := p.Category
	if cat == "" {
		cat = model.CategoryGeneral
	}
	gender := strings.ToLower(p.Gender)
	if gender == "" {
		gender = model.Unknown
	}

	// Hard filter: women-specific schemes require a female applicant or the
	// women category.
	if schemeType == model.TypeWomenSpecific && gender != model.GenderFemale && cat != model.CategoryWomen {
		return candidate{}, false
	}

	// Hard filter: the scheme must target the applicant's category or be
	// open to all.
	targetsCategory := containsFold(targets, cat)
	targetsGeneral := containsFold(targets, model.CategoryGeneral)
	if !targetsCategory && !targetsGeneral {
		return candidate{}, false
	}

	score := 0
	var factors []string
	isPrimary := false

	// Category component.
	if targetsCategory && cat != model.CategoryGeneral {
		score += cfg.CategoryWeight
		factors = append(factors, "Category ("+titleCase(cat)+")")

		bonus, primary := canonicalBonus(cat, schemeType, cfg)
		score += bonus
		isPrimary = primary
	} else if targetsGeneral {
		score += cfg.GeneralCategoryPoints
		factors = append(factors, "Category (General)")
	}

	// Insurance, general, and pension schemes are noise for students.
	if cat == model.CategoryStudent {
		switch schemeType {
		case model.TypeInsurance, model.TypeGeneral, model.TypePension:
			score -= cfg.StudentNoisePenalty
		}
	}

	// Occupation component.
	eligibleOccs := loweredNonEmpty(scheme.EligibleOccupations)
	occ := strings.ToLower(p.Occupation)
	if occ != "" && len(eligibleOccs) > 0 {
		if containsFold(eligibleOccs, occ) {
			score += cfg.OccupationWeight
			factors = append(factors, factorOccupation)
		} else if containsFold(eligibleOccs, "all") {
			// A generic "all" match earns less so it cannot dominate.
			score += cfg.OccupationWildcard
			factors = append(factors, factorOccupationGeneral)
		}
	} else if len(eligibleOccs) == 0 || containsFold(eligibleOccs, "all") {
		score += cfg.OccupationWildcard
		factors = append(factors, factorOccupationGeneral)
	}

	// Income component. A scheme without an income limit is open to all.
	if scheme.IncomeLimit != nil {
		if p.Income != nil && *p.Income <= *scheme.IncomeLimit {
			score += cfg.IncomeWeight
			factors = append(factors, factorIncomeLevel)
		}
	} else {
		score += cfg.IncomeWeight
		factors = append(factors, factorIncomeNoLimit)
	}

	// Age component. Unknown age is assumed eligible but not listed as a
	// matched factor.
	ageEligible := true
	if p.Age != nil {
		if scheme.MinAge != nil && *p.Age < *scheme.MinAge {
			ageEligible = false
		}
		if scheme.MaxAge != nil && *p.Age > *scheme.MaxAge {
			ageEligible = false
		}
	}
	if ageEligible {
		score += cfg.AgeWeight
		if p.Age != nil {
			factors = append(factors, factorAge)
		}
	}

	// State component. A state-specific scheme is excluded outright unless
	// the applicant's region matches.
	states := scheme.NormalizedStates()
	isNational := scheme.Nationwide()
	isStateSpecific := false
	if p.StateKnown() {
		userState := strings.ToLower(p.State)
		if !isNational && !containsFold(states, userState) {
			return candidate{}, false
		}
		if containsFold(states, userState) && !isNational {
			score += cfg.StateWeight
			factors = append(factors, factorState)
			isStateSpecific = true
		} else if isNational {
			score += cfg.NationalWeight
			factors = append(factors, factorNationwide)
		}
	} else {
		if !isNational {
			return candidate{}, false
		}
		score += cfg.NationalWeight
		factors = append(factors, factorNationwide)
	}

	if score < cfg.MinScore {
		return candidate{}, false
	}

	coreMatch := isCoreMatch(cat, schemeType)
	if coreMatch && score < cfg.CoreFloor {
		score = cfg.CoreFloor
	}

	m := model.SchemeMatch{
		Name:             scheme.Name,
		Score:            score,
		Confidence:       model.ConfidenceLow, // resolved during normalization
		EligibilityScore: "low",
		Reason:           explain(p, scheme, factors),
		SimpleReason:     simpleReason(p, schemeType, targets, factors),
		Documents:        scheme.Documents,
		Benefit:          scheme.BenefitSummary,
		Steps:            scheme.ApplySteps,
		MatchedFactors:   factors,
		TargetGroups:     targets,
		SchemeType:       schemeType,
		EstimatedValue:   estimateValue(scheme.BenefitSummary),
		OfficialURL:      scheme.OfficialURL,
		SampleFormURL:    scheme.SampleFormURL,
	}
	if m.Name == "" {
		m.Name = "Unknown Scheme"
	}

	return candidate{
		match:           m,
		schemeType:      schemeType,
		score:           score,
		sortPriority:    sortPriority(cat, schemeType, targets, isStateSpecific),
		isPrimary:       isPrimary,
		isCoreMatch:     coreMatch,
		isStateSpecific: isStateSpecific,
	}, true
}

// sortPriority buckets candidates for ranking. State-specific schemes always
// lead; general and insurance schemes always trail.
func sortPriority(cat, schemeType string, targets []string, stateSpecific bool) int {
	switch {
	case stateSpecific:
		return -1
	case containsFold(targets, model.CategoryGeneral),
		schemeType == model.TypeInsurance,
		schemeType == model.TypeGeneral:
		return 4
	case schemeType == model.TypeEducation:
		return 1
	case schemeType == model.TypeFinancialSupport && cat == model.CategoryStudent:
		return 2
	case schemeType == model.TypeTraining:
		return 3
	default:
		return 2
	}
}

// simpleReason picks a one-line plain-language reason, preferring the scheme
// type over profile specifics.
func simpleReason(p model.Profile, schemeType string, targets, factors []string) string {
	if containsFold(targets, model.CategoryGeneral) || schemeType == model.TypeInsurance || schemeType == model.TypeGeneral {
		return "Available to all eligible citizens."
	}
	switch schemeType {
	case model.TypeEducation:
		return "This scholarship helps students pay school or college fees."
	case model.TypeTraining:
		return "This program offers skill training for employment."
	case model.TypeFarmerSupport:
		return "This scheme provides direct support to farmers for agriculture."
	case model.TypeFinancialSupport:
		return "This scheme offers financial assistance for your needs."
	case model.TypeHousing:
		return "This scheme helps with housing and accommodation."
	case model.TypeHealth:
		return "This scheme provides health and medical benefits."
	case model.TypePension:
		return "This provides regular pension or retirement benefits."
	case model.TypeWomenSpecific:
		return "This is a dedicated welfare scheme for women."
	}
	has := func(label string) bool {
		for _, f := range factors {
			if f == label {
				return true
			}
		}
		return false
	}
	if has(factorOccupation) && p.Occupation != "" && p.Occupation != model.Unknown {
		return "You are a " + p.Occupation + ", so this scheme suits you."
	}
	if has(factorIncomeLevel) || has(factorIncomeNoLimit) {
		return "Based on your income, this scheme is a good fit."
	}
	return "This scheme matches your profile."
}

// estimateValue pulls a rough monetary figure out of the benefit text when
// one is mentioned.
func estimateValue(benefit string) string {
	if strings.Contains(benefit, "Rs") || strings.Contains(benefit, "lakh") || strings.Contains(benefit, "₹") {
		return strings.SplitN(benefit, ".", 2)[0]
	}
	return ""
}

// scoreAll scores every scheme and returns surviving candidates sorted by
// priority bucket ascending, then score descending.
func scoreAll(p model.Profile, schemes []model.Scheme, cfg config.MatchConfig) []candidate {
	var ranked []candidate
	for _, scheme := range schemes {
		if c, ok := scoreScheme(p, scheme, cfg); ok {
			ranked = append(ranked, c)
		}
	}
	sortCandidates(ranked)
	return ranked
}

func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].sortPriority != cands[j].sortPriority {
			return cands[i].sortPriority < cands[j].sortPriority
		}
		return cands[i].score > cands[j].score
	})
}

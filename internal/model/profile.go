package model

// Unknown is the explicit sentinel for occupation, income, and state fields
// the extractor could not resolve. Downstream logic distinguishes "not
// provided" from an empty value by checking for it.
const Unknown = "unknown"

// LowIncomeSentinel is assigned when a query mentions low income or poverty
// qualitatively without a parseable figure. It doubles as a marker in summary
// phrasing, so it must stay a single recognizable constant.
const LowIncomeSentinel = 50000

// Occupation values form a closed set; anything else extracts to Unknown.
const (
	OccupationFarmer   = "farmer"
	OccupationStudent  = "student"
	OccupationWidow    = "widow"
	OccupationWorker   = "worker"
	OccupationBusiness = "business"
	OccupationSenior   = "senior"
)

// Category values classify the broader welfare class a citizen belongs to,
// independent of occupation.
const (
	CategoryStudent  = "student"
	CategoryFarmer   = "farmer"
	CategoryWomen    = "women"
	CategorySenior   = "senior"
	CategoryBusiness = "business"
	CategoryWorker   = "worker"
	CategoryGeneral  = "general"
)

// Gender values recognized by the extractor. Empty means not detected.
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

// Profile holds the structured applicant attributes derived from one
// free-text query. Extraction always produces a fully constructed profile:
// numeric fields are nil when absent, string fields carry Unknown or their
// zero value.
type Profile struct {
	Occupation string `json:"occupation"`
	Category   string `json:"category"`
	Income     *int   `json:"income"`
	Age        *int   `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	State      string `json:"state"`
	RawQuery   string `json:"raw_query,omitempty"`
}

// IncomeKnown reports whether a numeric income (parsed or sentinel) is set.
func (p Profile) IncomeKnown() bool {
	return p.Income != nil
}

// StateKnown reports whether a region was resolved.
func (p Profile) StateKnown() bool {
	return p.State != "" && p.State != Unknown
}

// NeedsMoreInfo reports the fully-unresolved state: no occupation and only
// the default category. Callers should ask a clarifying question rather than
// return broad matches.
func (p Profile) NeedsMoreInfo() bool {
	return p.Occupation == Unknown && p.Category == CategoryGeneral
}

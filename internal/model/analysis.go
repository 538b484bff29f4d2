package model

// AnalysisRequest is one citizen query, typed or voice-transcribed.
type AnalysisRequest struct {
	Query     string `json:"query"`
	Language  string `json:"language,omitempty"`
	StateHint string `json:"state_hint,omitempty"`
}

// AnalysisResponse is the full result of a single analysis: the extracted
// profile, ranked matches, and the narrative texts built from them.
type AnalysisResponse struct {
	Profile          Profile       `json:"profile"`
	ProfileSummary   string        `json:"profile_summary"`
	Schemes          []SchemeMatch `json:"schemes"`
	BenefitsSummary  string        `json:"benefits_summary"`
	SpeakableText    string        `json:"speakable_text"`
	ProcessingTimeMS int64         `json:"processing_time_ms"`
	DataSource       string        `json:"data_source,omitempty"`
	FollowUpQuestion string        `json:"follow_up_question,omitempty"`
}

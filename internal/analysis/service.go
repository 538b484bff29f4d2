// Package analysis orchestrates the full query pipeline: profile
// extraction, scheme matching, narrative generation, and query logging.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vaanisetu/scheme-cli/internal/extract"
	"github.com/vaanisetu/scheme-cli/internal/match"
	"github.com/vaanisetu/scheme-cli/internal/model"
	"github.com/vaanisetu/scheme-cli/internal/store"
)

// DataSourceLabel identifies where analysis results come from in responses.
const DataSourceLabel = "Government scheme database and eligibility engine"

// followUpQuestion is asked when the query resolved neither an occupation
// nor a category.
const followUpQuestion = "Are you a student, farmer, business owner, or senior citizen?"

// speakableByLanguage holds the localized one-line result summaries. The
// count placeholder is substituted at render time.
var speakableByLanguage = map[string]string{
	"en": "Based on your profile, I found %d government schemes you may be eligible for.",
	"hi": "आपकी प्रोफ़ाइल के आधार पर, मुझे %d सरकारी योजनाएं मिली हैं जिनके लिए आप पात्र हो सकते हैं।",
	"ta": "உங்கள் சுயவிவரத்தின் அடிப்படையில், நீங்கள் தகுதிபெறக்கூடிய %d அரசுத் திட்டங்களை நான் கண்டறிந்துள்ளேன்.",
	"te": "మీ ప్రొఫైల్ ఆధారంగా, మీరు అర్హత సాధించే %d ప్రభుత్వ పథకాలను నేను కనుగొన్నాను.",
}

// Service wires the extractor, match engine, and query log together.
type Service struct {
	extractor *extract.Extractor
	engine    *match.Engine
	log       store.Store
	status    func() string
}

// New creates a Service. The status func reports the catalog source state
// for inclusion in responses and health checks; log may be a NopStore.
func New(extractor *extract.Extractor, engine *match.Engine, log store.Store, status func() string) *Service {
	if log == nil {
		log = store.NopStore{}
	}
	return &Service{extractor: extractor, engine: engine, log: log, status: status}
}

// Analyze runs the full pipeline for one request. It never fails on bad
// input: empty or too-short queries yield a friendly prompt instead of an
// error, and logging failures are swallowed.
func (s *Service) Analyze(ctx context.Context, req model.AnalysisRequest) model.AnalysisResponse {
	query := strings.TrimSpace(req.Query)
	if len(query) < 3 {
		return model.AnalysisResponse{
			Profile:         model.Profile{},
			ProfileSummary:  "We need a little more information.",
			Schemes:         []model.SchemeMatch{},
			BenefitsSummary: "Please describe your situation so we can help.",
			SpeakableText:   "Please tell me about your situation so I can help.",
			DataSource:      DataSourceLabel,
		}
	}

	start := time.Now()

	profile := s.extractor.Extract(req.Query)
	if req.StateHint != "" && !profile.StateKnown() {
		profile.State = strings.ToLower(strings.TrimSpace(req.StateHint))
	}
	profileSummary := extract.Summary(profile)

	schemes := s.engine.Match(profile)

	needsMoreInfo := profile.NeedsMoreInfo()
	followUp := ""
	if needsMoreInfo {
		profileSummary = "We need more information about your occupation."
		followUp = followUpQuestion
		schemes = narrowToGeneral(schemes)
	}
	if schemes == nil {
		schemes = []model.SchemeMatch{}
	}

	zap.L().Info("analysis: query processed",
		zap.String("query", req.Query),
		zap.String("occupation", profile.Occupation),
		zap.String("category", profile.Category),
		zap.String("state", profile.State),
		zap.Int("schemes", len(schemes)))

	benefits := match.SummarizeBenefits(schemes)
	speakable := speakableText(req.Language, len(schemes), needsMoreInfo)

	resp := model.AnalysisResponse{
		Profile:          profile,
		ProfileSummary:   profileSummary,
		Schemes:          schemes,
		BenefitsSummary:  benefits,
		SpeakableText:    speakable,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
		DataSource:       DataSourceLabel,
		FollowUpQuestion: followUp,
	}

	s.record(ctx, req, profile, schemes, resp.ProcessingTimeMS)

	return resp
}

// narrowToGeneral keeps at most three general-class schemes and downgrades
// any High confidence among them. Without a resolved occupation or category,
// confident specific recommendations would be guesses.
func narrowToGeneral(schemes []model.SchemeMatch) []model.SchemeMatch {
	var out []model.SchemeMatch
	for _, m := range schemes {
		general := false
		for _, g := range m.TargetGroups {
			if g == model.CategoryGeneral {
				general = true
				break
			}
		}
		if general || m.SchemeType == model.TypeGeneral || m.SchemeType == model.TypeInsurance {
			if m.Confidence == model.ConfidenceHigh {
				m.Confidence = model.ConfidenceMedium
				m.EligibilityScore = "medium"
			}
			out = append(out, m)
		}
		if len(out) >= 3 {
			break
		}
	}
	return out
}

func speakableText(language string, count int, needsMoreInfo bool) string {
	if count == 0 || needsMoreInfo {
		return "I couldn't find exact matches yet. Please tell me about your situation so I can help, or are you a student, farmer, business owner, or senior citizen?"
	}
	tmpl, ok := speakableByLanguage[language]
	if !ok {
		tmpl = speakableByLanguage["en"]
	}
	return fmt.Sprintf(tmpl, count)
}

// record logs the query and its results. Failures are logged and ignored;
// persistence must never affect the response.
func (s *Service) record(ctx context.Context, req model.AnalysisRequest, profile model.Profile, schemes []model.SchemeMatch, durationMS int64) {
	rec := &store.QueryRecord{
		Query:      req.Query,
		Language:   req.Language,
		Profile:    profile,
		DataSource: s.statusLabel(),
		DurationMS: durationMS,
	}
	queryID, err := s.log.LogQuery(ctx, rec)
	if err != nil {
		zap.L().Warn("analysis: query log write failed", zap.Error(err))
		return
	}
	if queryID == "" {
		return
	}
	if err := s.log.LogResults(ctx, queryID, schemes); err != nil {
		zap.L().Warn("analysis: result log write failed", zap.Error(err))
	}
}

func (s *Service) statusLabel() string {
	if s.status == nil {
		return ""
	}
	return s.status()
}

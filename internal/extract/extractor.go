// Package extract turns unstructured citizen queries into structured
// applicant profiles using regex numeric extraction and fuzzy lexicon
// matching. Extraction is best-effort per field and never fails: a parse
// miss leaves the field at its defined unknown value.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vaanisetu/scheme-cli/internal/fuzzy"
	"github.com/vaanisetu/scheme-cli/internal/lexicon"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

// RegionThreshold is the stricter similarity cutoff for approximate region
// matching; region names are long enough that 0.8 produces false positives
// between neighboring states.
const RegionThreshold = 0.86

var (
	incomeAfter  = regexp.MustCompile(`income.*?(\d{1,2}(?:,\d{3})+|\d+k|\d{2,})`)
	incomeBefore = regexp.MustCompile(`(\d{1,2}(?:,\d{3})+|\d+k|\d{2,}).*?income`)
	ageYearsOld  = regexp.MustCompile(`(\d{1,3})\s*years?\s*old`)
	agePrefixed  = regexp.MustCompile(`age.*?\b(\d{1,3})\b`)

	femaleWords = []string{" woman", "female", "girl", "widow", "lady", "aurat"}
	maleWords   = []string{" man", "male", "boy", "aadmi"}

	titleCaser = cases.Title(language.English)
)

// Extractor derives applicant profiles from raw text against a fixed
// lexicon.
type Extractor struct {
	lex       *lexicon.Lexicon
	threshold float64
}

// New creates an Extractor. A nil lexicon uses the built-in tables.
func New(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Extractor{lex: lex, threshold: fuzzy.DefaultThreshold}
}

// Extract builds a Profile from query text. Every field has a defined
// absent/unknown value, so the profile is always fully constructed even for
// empty or garbled input.
func (e *Extractor) Extract(query string) model.Profile {
	lower := strings.ToLower(query)
	words := fuzzy.Normalize(query)

	p := model.Profile{
		Occupation: model.Unknown,
		Category:   model.CategoryGeneral,
		State:      model.Unknown,
		RawQuery:   query,
	}

	// Occupation: first lexicon entry in declared priority order wins.
	for _, set := range e.lex.Occupations {
		if fuzzy.Matches(words, set.Keywords, e.threshold) {
			p.Occupation = set.Name
			break
		}
	}

	if state, ok := e.extractRegion(words); ok {
		p.State = state
	}

	if income, ok := extractIncome(lower); ok {
		p.Income = &income
	}

	if age, ok := extractAge(lower); ok {
		p.Age = &age
	}

	p.Gender = extractGender(lower)

	// Category: same strategy as occupation, different lexicon. Age 60+
	// overrides whatever the keywords said.
	for _, set := range e.lex.Categories {
		if fuzzy.Matches(words, set.Keywords, e.threshold) {
			p.Category = set.Name
			break
		}
	}
	if p.Age != nil && *p.Age >= 60 {
		p.Category = model.CategorySenior
	}

	return p
}

// extractRegion resolves a region in two passes. Pass 1 takes the first
// exact containment hit with full confidence. Pass 2 keeps the single
// best-scoring approximate candidate across the whole list. Best-match-wins
// here, unlike occupation detection, because region names confuse easily.
func (e *Extractor) extractRegion(words []string) (string, bool) {
	joined := strings.Join(words, " ")
	padded := " " + joined + " "

	for _, region := range e.lex.Regions {
		if region == joined || strings.Contains(padded, " "+region+" ") {
			return region, true
		}
	}

	var best string
	var bestRatio float64
	for _, region := range e.lex.Regions {
		regionWords := strings.Fields(region)
		if len(regionWords) == 1 {
			if _, r, ok := fuzzy.ClosestMatch(region, words, RegionThreshold); ok && r > bestRatio {
				best, bestRatio = region, r
			}
			continue
		}
		if r := fuzzy.BestWindowRatio(region, words, len(regionWords)); r >= RegionThreshold && r > bestRatio {
			best, bestRatio = region, r
		}
	}
	return best, best != ""
}

// extractIncome parses an annual income figure mentioned near an income
// keyword, in either order. Comma-grouped thousands and a "k" suffix are
// supported. A qualitative low-income phrase without a figure yields the
// sentinel value.
func extractIncome(lower string) (int, bool) {
	m := incomeAfter.FindStringSubmatch(lower)
	if m == nil {
		m = incomeBefore.FindStringSubmatch(lower)
	}
	if m != nil {
		val := strings.ReplaceAll(m[1], ",", "")
		mult := 1
		if strings.Contains(val, "k") {
			val = strings.ReplaceAll(val, "k", "")
			mult = 1000
		}
		n, err := strconv.Atoi(val)
		if err == nil {
			return n * mult, true
		}
	}
	if strings.Contains(lower, "low income") || strings.Contains(lower, "poor") {
		return model.LowIncomeSentinel, true
	}
	return 0, false
}

func extractAge(lower string) (int, bool) {
	m := ageYearsOld.FindStringSubmatch(lower)
	if m == nil {
		m = agePrefixed.FindStringSubmatch(lower)
	}
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractGender checks small fixed word lists, female before male. The
// leading space on " woman" and " man" avoids hits inside "businesswoman"
// style compounds and the "man" in "human".
func extractGender(lower string) string {
	for _, w := range femaleWords {
		if strings.Contains(lower, w) {
			return model.GenderFemale
		}
	}
	for _, w := range maleWords {
		if strings.Contains(lower, w) {
			return model.GenderMale
		}
	}
	return ""
}

// Summary renders a one-line human description of the profile for display
// above the match list.
func Summary(p model.Profile) string {
	var parts []string
	if p.Occupation != "" && p.Occupation != model.Unknown {
		parts = append(parts, titleCaser.String(p.Occupation))
	} else {
		parts = append(parts, "Citizen")
	}
	if p.StateKnown() {
		parts = append(parts, "from "+titleCaser.String(p.State))
	}
	if p.Income != nil {
		if *p.Income == model.LowIncomeSentinel {
			parts = append(parts, "with low income")
		} else {
			parts = append(parts, fmt.Sprintf("with an estimated income of ₹%d", *p.Income))
		}
	}
	if p.Age != nil {
		parts = append(parts, fmt.Sprintf("(Age: %d)", *p.Age))
	}
	return strings.Join(parts, " ")
}

package match

import (
	"fmt"
	"strings"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

// deduceType resolves a scheme type from the name and target groups when a
// match carries none, so summaries still group sensibly.
func deduceType(m model.SchemeMatch) string {
	if m.SchemeType != "" {
		return m.SchemeType
	}
	name := strings.ToLower(m.Name)
	switch {
	case containsFold(m.TargetGroups, model.CategoryFarmer),
		strings.Contains(name, "kisan"),
		strings.Contains(name, "krishi"),
		strings.Contains(name, "fasal"):
		return model.TypeFarmerSupport
	case strings.Contains(name, "scholarship"),
		strings.Contains(name, "education"),
		strings.Contains(name, "vidya"):
		return model.TypeEducation
	case strings.Contains(name, "health"),
		strings.Contains(name, "ayushman"),
		strings.Contains(name, "medical"):
		return model.TypeHealth
	case strings.Contains(name, "training"),
		strings.Contains(name, "kaushalya"),
		strings.Contains(name, "skill"):
		return model.TypeTraining
	case strings.Contains(name, "bima"),
		strings.Contains(name, "insurance"):
		return model.TypeInsurance
	default:
		return model.TypeFinancialSupport
	}
}

// SummarizeBenefits builds an overall benefits paragraph for a result set.
// Only High and Medium confidence matches shape the phrasing.
func SummarizeBenefits(matches []model.SchemeMatch) string {
	if len(matches) == 0 {
		return "We couldn't find any specific schemes matching your profile at the moment."
	}
	if len(matches) == 1 {
		return fmt.Sprintf("We found 1 scheme tailored to you: %s. %s", matches[0].Name, matches[0].Benefit)
	}

	summary := fmt.Sprintf("Good news! We found %d schemes you might be eligible for. ", len(matches))

	typeCounts := map[string]int{}
	hasHealth := false
	hasTraining := false
	hasInsurance := false
	hasFinancial := false

	for _, m := range matches {
		name := strings.ToLower(m.Name)
		stype := deduceType(m)

		conf := strings.ToLower(m.Confidence)
		if conf != "high" && conf != "medium" {
			continue
		}
		typeCounts[stype]++

		if strings.Contains(stype, "health") || strings.Contains(name, "ayushman") ||
			strings.Contains(name, "medical") || strings.Contains(name, "vandana") {
			hasHealth = true
		}
		if stype == model.TypeTraining {
			hasTraining = true
		}
		if stype == model.TypeInsurance || strings.Contains(name, "bima") {
			hasInsurance = true
		}
		if stype == model.TypeFinancialSupport || stype == model.TypePension {
			hasFinancial = true
		}
	}

	majority := model.TypeGeneral
	best := 0
	for _, stype := range []string{
		model.TypeFarmerSupport, model.TypeEducation, model.TypeHealth,
		model.TypeTraining, model.TypeInsurance, model.TypeFinancialSupport,
		model.TypePension, model.TypeHousing, model.TypeWomenSpecific,
		model.TypeEmployment, model.TypeBusiness, model.TypeGeneral,
	} {
		if typeCounts[stype] > best {
			best = typeCounts[stype]
			majority = stype
		}
	}

	var parts []string
	switch majority {
	case model.TypeFarmerSupport:
		parts = append(parts, "provide direct agricultural income support",
			"access to farm credit", "protection against crop losses")
	case model.TypeEducation:
		parts = append(parts, "provide scholarships", "education fee support")
	default:
		if typeCounts[model.TypeEducation] > 0 {
			parts = append(parts, "help cover education expenses")
		} else if typeCounts[model.TypeFarmerSupport] > 0 {
			parts = append(parts, "provide direct farmer income support")
		} else if hasFinancial {
			parts = append(parts, "provide additional financial support")
		}
	}
	if hasHealth {
		parts = append(parts, "medical protection")
	}
	if hasTraining {
		parts = append(parts, "employment/skill opportunities")
	}
	if hasInsurance && !hasHealth && majority != model.TypeFarmerSupport && majority != model.TypeEducation {
		parts = append(parts, "financial protection")
	}

	if len(parts) > 0 {
		return summary + "These schemes may " + joinReasons(parts) + "."
	}

	// No confident matches to group; fall back to quoting benefit snippets.
	var snippets []string
	for _, m := range matches[:min(2, len(matches))] {
		if m.Benefit != "" {
			snippets = append(snippets, fmt.Sprintf("[%s]: %s", m.Name, strings.SplitN(m.Benefit, ".", 2)[0]))
		}
	}
	if len(snippets) > 0 {
		summary += "Key benefits include " + strings.Join(snippets, " and ") + "."
	}
	return summary
}

// Speakable builds a short sentence suited to text-to-speech output.
func Speakable(matches []model.SchemeMatch) string {
	switch len(matches) {
	case 0:
		return "I'm sorry, I couldn't find any relevant schemes for you right now."
	case 1:
		return fmt.Sprintf("You qualify for the %s scheme. Read below for instructions on how to apply.", matches[0].Name)
	case 2:
		return fmt.Sprintf("You qualify for 2 schemes: %s, %s. You can review their details below.",
			matches[0].Name, matches[1].Name)
	default:
		return fmt.Sprintf("You qualify for %d schemes. The top ones are %s, %s. Please tap a scheme to read the full details and apply.",
			len(matches), matches[0].Name, matches[1].Name)
	}
}

package match

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

var titleCaser = cases.Title(language.English)

func titleCase(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

// explain builds the plain-language eligibility explanation from the factors
// recorded during scoring. Nationwide availability is deliberately omitted
// since it applies to everyone.
func explain(p model.Profile, scheme model.Scheme, factors []string) string {
	has := func(label string) bool {
		for _, f := range factors {
			if f == label {
				return true
			}
		}
		return false
	}

	var reasons []string

	if has(factorOccupation) && p.Occupation != "" {
		reasons = append(reasons, "you are a "+p.Occupation)
	}

	if has(factorIncomeLevel) || has(factorIncomeNoLimit) {
		switch {
		case p.Income == nil:
			reasons = append(reasons, "you meet the financial requirements")
		case scheme.IncomeLimit != nil:
			reasons = append(reasons, fmt.Sprintf("your income is below the ₹%d limit", *scheme.IncomeLimit))
		default:
			reasons = append(reasons, "your income meets the requirements")
		}
	}

	if has(factorAge) && p.Age != nil {
		reasons = append(reasons, fmt.Sprintf("your age (%d) is eligible", *p.Age))
	}

	if has(factorState) && p.StateKnown() {
		reasons = append(reasons, "you live in "+titleCase(p.State))
	}

	if len(reasons) == 0 {
		return "You appear to be eligible based on the available scheme guidelines."
	}
	return "You likely qualify because " + joinReasons(reasons) + "."
}

// joinReasons joins clauses with an Oxford comma for three or more items.
func joinReasons(reasons []string) string {
	switch len(reasons) {
	case 1:
		return reasons[0]
	case 2:
		return reasons[0] + " and " + reasons[1]
	default:
		return strings.Join(reasons[:len(reasons)-1], ", ") + ", and " + reasons[len(reasons)-1]
	}
}

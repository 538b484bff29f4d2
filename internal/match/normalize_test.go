package match

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

func cand(name, schemeType string, targets []string, score, priority int, primary, core bool) candidate {
	return candidate{
		match: model.SchemeMatch{
			Name:         name,
			Score:        score,
			SimpleReason: "This scheme matches your profile.",
			TargetGroups: targets,
			SchemeType:   schemeType,
		},
		schemeType:   schemeType,
		score:        score,
		sortPriority: priority,
		isPrimary:    primary,
		isCoreMatch:  core,
	}
}

func TestNormalizeConfidenceTiers(t *testing.T) {
	cfg := DefaultConfig()
	p := model.Profile{Category: model.CategoryFarmer, RawQuery: "i am a farmer"}

	// Five candidates all scoring high enough for High confidence. Only two
	// may keep it; the next two demote to Medium, the last to Low.
	ranked := []candidate{
		cand("Scheme A", model.TypeFarmerSupport, []string{"farmer"}, 120, 2, true, true),
		cand("Scheme B", model.TypeFarmerSupport, []string{"farmer"}, 110, 2, true, true),
		cand("Scheme C", model.TypeFarmerSupport, []string{"farmer"}, 100, 2, true, true),
		cand("Scheme D", model.TypeFarmerSupport, []string{"farmer"}, 90, 2, true, true),
		cand("Scheme E", model.TypeFarmerSupport, []string{"farmer"}, 80, 2, true, true),
	}

	out := normalize(p, ranked, cfg)
	require.Len(t, out, 5)

	assert.Equal(t, model.ConfidenceHigh, out[0].Confidence)
	assert.Equal(t, model.ConfidenceHigh, out[1].Confidence)
	assert.Equal(t, model.ConfidenceMedium, out[2].Confidence)
	assert.Equal(t, model.ConfidenceMedium, out[3].Confidence)
	assert.Equal(t, model.ConfidenceLow, out[4].Confidence)

	for _, m := range out {
		assert.Equal(t, strings.ToLower(m.Confidence), m.EligibilityScore)
	}
}

func TestNormalizeFarmerOffTopicCap(t *testing.T) {
	cfg := DefaultConfig()
	p := model.Profile{Category: model.CategoryFarmer}

	ranked := []candidate{
		cand("Health Cover", model.TypeHealth, []string{"farmer"}, 90, 2, false, false),
	}

	out := normalize(p, ranked, cfg)
	require.Len(t, out, 1)
	assert.Equal(t, model.ConfidenceMedium, out[0].Confidence)
}

func TestNormalizeStudentCaps(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("insurance capped low", func(t *testing.T) {
		p := model.Profile{Category: model.CategoryStudent}
		ranked := []candidate{
			cand("Suraksha Insurance", model.TypeInsurance, []string{"student"}, 95, 4, false, false),
		}
		out := normalize(p, ranked, cfg)
		require.Len(t, out, 1)
		assert.Equal(t, model.ConfidenceLow, out[0].Confidence)
	})

	t.Run("training capped without job intent", func(t *testing.T) {
		p := model.Profile{Category: model.CategoryStudent, RawQuery: "i am a student"}
		ranked := []candidate{
			cand("Kaushal Vikas", model.TypeTraining, []string{"student"}, 95, 3, false, false),
		}
		out := normalize(p, ranked, cfg)
		require.Len(t, out, 1)
		assert.Equal(t, model.ConfidenceMedium, out[0].Confidence)
	})

	t.Run("training uncapped with job intent", func(t *testing.T) {
		p := model.Profile{Category: model.CategoryStudent, RawQuery: "i am a student looking for a job"}
		ranked := []candidate{
			cand("Kaushal Vikas", model.TypeTraining, []string{"student"}, 95, 3, false, false),
		}
		out := normalize(p, ranked, cfg)
		require.Len(t, out, 1)
		assert.Equal(t, model.ConfidenceHigh, out[0].Confidence)
	})
}

func TestNormalizeCoreMatchOverride(t *testing.T) {
	cfg := DefaultConfig()
	p := model.Profile{Category: model.CategorySenior}

	// Score sits in the Medium band but the senior/pension pairing forces
	// High.
	ranked := []candidate{
		cand("Old Age Support", model.TypePension, []string{"senior_citizen"}, 55, 2, true, true),
	}

	out := normalize(p, ranked, cfg)
	require.Len(t, out, 1)
	assert.Equal(t, model.ConfidenceHigh, out[0].Confidence)
}

func TestNormalizeRecommendationLevels(t *testing.T) {
	cfg := DefaultConfig()
	p := model.Profile{Category: model.CategoryFarmer}

	ranked := []candidate{
		cand("PM Kisan", model.TypeFarmerSupport, []string{"farmer"}, 120, 2, true, true),
		cand("Crop Training Program", model.TypeTraining, []string{"farmer"}, 90, 3, false, false),
		cand("Jan Suraksha Insurance", model.TypeInsurance, []string{"farmer"}, 85, 4, false, false),
	}

	out := normalize(p, ranked, cfg)
	require.Len(t, out, 3)

	byName := map[string]model.SchemeMatch{}
	for _, m := range out {
		byName[m.Name] = m
	}

	assert.Equal(t, model.RecommendationPrimary, byName["PM Kisan"].RecommendationLevel)
	assert.Equal(t, model.RecommendationSecondary, byName["Crop Training Program"].RecommendationLevel)
	assert.Equal(t, model.RecommendationSecondary, byName["Jan Suraksha Insurance"].RecommendationLevel)
}

func TestNormalizeAlsoAvailablePrefix(t *testing.T) {
	cfg := DefaultConfig()
	p := model.Profile{Category: model.CategoryFarmer}

	ranked := []candidate{
		cand("PM Kisan", model.TypeFarmerSupport, []string{"farmer"}, 120, 2, true, true),
		cand("Open Benefit", model.TypeFinancialSupport, []string{"general"}, 70, 4, false, false),
	}

	out := normalize(p, ranked, cfg)
	require.Len(t, out, 2)

	assert.NotContains(t, out[0].SimpleReason, "Also Available Scheme:")
	assert.Equal(t, "Also Available Scheme: This scheme matches your profile.", out[1].SimpleReason)
}

func TestTruncate(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("caps at max results", func(t *testing.T) {
		var ranked []candidate
		for i := 0; i < 8; i++ {
			ranked = append(ranked, cand(fmt.Sprintf("Scheme %d", i), model.TypeFarmerSupport, []string{"farmer"}, 120-i, 2, true, true))
		}
		out := truncate(ranked, cfg)
		assert.Len(t, out, cfg.MaxResults)
	})

	t.Run("extras need fifty for tailored schemes", func(t *testing.T) {
		ranked := []candidate{
			cand("A", model.TypeFarmerSupport, []string{"farmer"}, 100, 2, true, true),
			cand("B", model.TypeFarmerSupport, []string{"farmer"}, 95, 2, true, true),
			cand("C", model.TypeFarmerSupport, []string{"farmer"}, 90, 2, true, true),
			cand("D", model.TypeFarmerSupport, []string{"farmer"}, 45, 2, false, false),
		}
		out := truncate(ranked, cfg)
		require.Len(t, out, 3)
		assert.Equal(t, "C", out[2].Name)
	})

	t.Run("extras need above eighty for general schemes", func(t *testing.T) {
		ranked := []candidate{
			cand("A", model.TypeFarmerSupport, []string{"farmer"}, 100, 2, true, true),
			cand("B", model.TypeFarmerSupport, []string{"farmer"}, 95, 2, true, true),
			cand("C", model.TypeFarmerSupport, []string{"farmer"}, 90, 2, true, true),
			cand("Open Low", model.TypeGeneral, []string{"general"}, 75, 4, false, false),
			cand("Open High", model.TypeGeneral, []string{"general"}, 85, 4, false, false),
		}
		out := truncate(ranked, cfg)
		require.Len(t, out, 4)
		assert.Equal(t, "Open High", out[3].Name)
	})

	t.Run("first three still need minimum score", func(t *testing.T) {
		ranked := []candidate{
			cand("A", model.TypeFarmerSupport, []string{"farmer"}, 100, 2, true, true),
			cand("Weak", model.TypeFarmerSupport, []string{"farmer"}, 30, 2, false, false),
		}
		out := truncate(ranked, cfg)
		require.Len(t, out, 1)
		assert.Equal(t, "A", out[0].Name)
	})
}

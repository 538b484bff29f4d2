package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaanisetu/scheme-cli/internal/catalog"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

func TestEngineMatchEmptyCatalog(t *testing.T) {
	cache := catalog.NewCache(nil, nil)
	e := NewEngine(cache, DefaultConfig())

	assert.Nil(t, e.Match(model.Profile{Category: model.CategoryFarmer}))
}

func TestEngineMatchRanksCatalog(t *testing.T) {
	src := catalog.StaticSource{
		{Name: "PM Kisan", SchemeType: "farmer_support", TargetGroups: []string{"farmer"}, EligibleOccupations: []string{"farmer"}, States: []string{"all"}},
		{Name: "Post Matric Scholarship", SchemeType: "education", TargetGroups: []string{"student"}, States: []string{"all"}},
		{Name: "Jan Suraksha Bima", SchemeType: "insurance", TargetGroups: []string{"general"}, States: []string{"all"}},
	}
	cache := catalog.NewCache(src, nil)
	cache.Load(context.Background())

	e := NewEngine(cache, DefaultConfig())
	p := model.Profile{Occupation: model.OccupationFarmer, Category: model.CategoryFarmer}

	results := e.Match(p)
	require.NotEmpty(t, results)

	// The scholarship is filtered out; the farmer scheme leads.
	assert.Equal(t, "PM Kisan", results[0].Name)
	for _, m := range results {
		assert.NotEqual(t, "Post Matric Scholarship", m.Name)
	}

	// Deterministic for a fixed catalog and profile.
	again := e.Match(p)
	assert.Equal(t, results, again)
}

package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercase and split", "I Am A Farmer", []string{"i", "am", "a", "farmer"}},
		{"strips punctuation", "farmer, with low-income!", []string{"farmer", "with", "lowincome"}},
		{"collapses whitespace", "  student   from   bihar ", []string{"student", "from", "bihar"}},
		{"empty", "", nil},
		{"only punctuation", "?!.,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "farmer", "farmer", 1.0, 1.0},
		{"transposition", "framer", "farmer", 0.8, 1.0},
		{"close misspelling", "studnet", "student", 0.8, 1.0},
		{"pradesh variant", "prasesh", "pradesh", 0.8, 1.0},
		{"unrelated", "farmer", "widow", 0.0, 0.4},
		{"both empty", "", "", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}

func TestRatioSymmetricArguments(t *testing.T) {
	assert.InDelta(t, Ratio("framer", "farmer"), Ratio("farmer", "framer"), 0.0001)
}

func TestClosestMatch(t *testing.T) {
	words := []string{"i", "am", "a", "framer", "from", "bihar"}

	best, ratio, ok := ClosestMatch("farmer", words, 0.8)
	assert.True(t, ok)
	assert.Equal(t, "framer", best)
	assert.GreaterOrEqual(t, ratio, 0.8)

	_, _, ok = ClosestMatch("pension", words, 0.8)
	assert.False(t, ok)
}

func TestClosestMatchPicksBest(t *testing.T) {
	words := []string{"farmar", "farmer"}
	best, ratio, ok := ClosestMatch("farmer", words, 0.8)
	assert.True(t, ok)
	assert.Equal(t, "farmer", best)
	assert.InDelta(t, 1.0, ratio, 0.0001)
}

func TestBestWindowRatio(t *testing.T) {
	words := []string{"i", "live", "in", "andhra", "pradesh", "now"}

	got := BestWindowRatio("andhra pradesh", words, 2)
	assert.InDelta(t, 1.0, got, 0.0001)

	got = BestWindowRatio("madhya pradesh", words, 2)
	assert.Less(t, got, 1.0)
	assert.Greater(t, got, 0.5)

	// Window longer than input.
	assert.Zero(t, BestWindowRatio("a b c", []string{"x"}, 3))
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		keywords []string
		want     bool
	}{
		{"exact substring", "i am a farmer", []string{"farmer"}, true},
		{"fuzzy single token", "i am a framer", []string{"farmer"}, true},
		{"fuzzy too far", "i am a firebrand", []string{"farmer"}, false},
		{"phrase window", "doing krishi kam daily", []string{"krishi kam"}, true},
		{"hindi keyword", "main ek kisan hoon", []string{"kisan"}, true},
		{"no keywords", "anything", nil, false},
		{"second keyword hits", "vidyarthi from pune", []string{"student", "vidyarthi"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(Normalize(tt.query), tt.keywords, DefaultThreshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

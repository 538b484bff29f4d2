package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

func TestDefaultValidates(t *testing.T) {
	lex := Default()
	require.NoError(t, lex.Validate())

	assert.Equal(t, model.OccupationFarmer, lex.Occupations[0].Name)
	assert.Equal(t, model.CategoryStudent, lex.Categories[0].Name)
	assert.Contains(t, lex.Regions, "andhra pradesh")
	assert.Contains(t, lex.Regions, "delhi")
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `
occupations:
  - name: fisherman
    keywords: [fisherman, fishing, boat]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := Load(path)
	require.NoError(t, err)

	// Overridden table replaced wholesale.
	require.Len(t, lex.Occupations, 1)
	assert.Equal(t, "fisherman", lex.Occupations[0].Name)

	// Absent tables keep defaults.
	assert.NotEmpty(t, lex.Categories)
	assert.NotEmpty(t, lex.Regions)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `
occupations:
  - name: fisherman
    keywords: []
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateEmptyTables(t *testing.T) {
	tests := []struct {
		name string
		lex  Lexicon
	}{
		{"no occupations", Lexicon{Categories: Default().Categories, Regions: Default().Regions}},
		{"no categories", Lexicon{Occupations: Default().Occupations, Regions: Default().Regions}},
		{"no regions", Lexicon{Occupations: Default().Occupations, Categories: Default().Categories}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.lex.Validate())
		})
	}
}

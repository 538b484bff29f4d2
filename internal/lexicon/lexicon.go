// Package lexicon holds the static keyword tables the profile extractor
// matches against: occupation keywords, welfare-category keywords, and the
// closed region list. Tables are versioned data, not runtime state; an
// optional YAML file can replace any table wholesale.
package lexicon

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/vaanisetu/scheme-cli/internal/model"
)

// KeywordSet maps one occupation or category to the words and phrases that
// signal it, including transliterations and common misspellings.
type KeywordSet struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Lexicon bundles all extractor tables. Order matters: occupation and
// category detection is first-match-wins in declared order.
type Lexicon struct {
	Occupations []KeywordSet `yaml:"occupations"`
	Categories  []KeywordSet `yaml:"categories"`
	Regions     []string     `yaml:"regions"`
}

// Default returns the built-in tables.
func Default() *Lexicon {
	return &Lexicon{
		Occupations: []KeywordSet{
			{Name: model.OccupationFarmer, Keywords: []string{"farmer", "farming", "agriculture", "rythu", "krishi", "kisan", "crop", "framer", "farmar"}},
			{Name: model.OccupationStudent, Keywords: []string{"student", "studying", "school", "college", "study", "scholar"}},
			{Name: model.OccupationWidow, Keywords: []string{"widow", "husband died", "widowed"}},
			{Name: model.OccupationWorker, Keywords: []string{"worker", "labour", "daily wage", "mnrega", "nrega"}},
			{Name: model.OccupationBusiness, Keywords: []string{"business", "shop", "vendor", "msme", "vyapar", "entrepreneur", "startup", "start up"}},
			{Name: model.OccupationSenior, Keywords: []string{"old", "senior", "aged", "retired", "buzurg", "pension"}},
		},
		Categories: []KeywordSet{
			{Name: model.CategoryStudent, Keywords: []string{"student", "study", "college", "school", "scholarship", "education"}},
			{Name: model.CategoryFarmer, Keywords: []string{"farmer", "kisan", "krishi", "kheti", "agriculture", "crop", "farm", "framer"}},
			{Name: model.CategoryWomen, Keywords: []string{"widow", "vidhwa", "woman", "women", "girl", "mother", "maternity", "pregnant", "aurat", "single mother"}},
			{Name: model.CategorySenior, Keywords: []string{"old", "senior", "pension", "60", "retired", "buzurg", "aged"}},
			{Name: model.CategoryBusiness, Keywords: []string{"business", "vendor", "shop", "vyapar", "entrepreneur", "startup", "start up"}},
			{Name: model.CategoryWorker, Keywords: []string{"worker", "labour", "daily wage", "mazdoor", "unorganised", "employee", "jobless", "unemployed"}},
		},
		Regions: []string{
			"andhra pradesh", "arunachal pradesh", "assam", "bihar", "chhattisgarh", "goa", "gujarat",
			"haryana", "himachal pradesh", "jharkhand", "karnataka", "kerala", "madhya pradesh",
			"maharashtra", "manipur", "meghalaya", "mizoram", "nagaland", "odisha", "punjab",
			"rajasthan", "sikkim", "tamil nadu", "telangana", "tripura", "uttar pradesh",
			"uttarakhand", "west bengal", "andaman and nicobar islands", "chandigarh",
			"dadra and nagar haveli and daman and diu", "delhi", "jammu and kashmir",
			"ladakh", "lakshadweep", "puducherry",
		},
	}
}

// Load reads a YAML lexicon file and merges it over the defaults: any table
// present in the file replaces the built-in one, absent tables keep their
// defaults.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "lexicon: read %s", path)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, eris.Wrapf(err, "lexicon: parse %s", path)
	}

	lex := Default()
	if len(override.Occupations) > 0 {
		lex.Occupations = override.Occupations
	}
	if len(override.Categories) > 0 {
		lex.Categories = override.Categories
	}
	if len(override.Regions) > 0 {
		lex.Regions = override.Regions
	}

	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return lex, nil
}

// Validate checks that every table is non-empty and every keyword set has a
// name and at least one keyword.
func (l *Lexicon) Validate() error {
	if len(l.Occupations) == 0 {
		return eris.New("lexicon: no occupation keyword sets")
	}
	if len(l.Categories) == 0 {
		return eris.New("lexicon: no category keyword sets")
	}
	if len(l.Regions) == 0 {
		return eris.New("lexicon: empty region list")
	}
	for _, set := range append(append([]KeywordSet{}, l.Occupations...), l.Categories...) {
		if set.Name == "" {
			return eris.New("lexicon: keyword set with empty name")
		}
		if len(set.Keywords) == 0 {
			return eris.Errorf("lexicon: keyword set %q has no keywords", set.Name)
		}
	}
	return nil
}

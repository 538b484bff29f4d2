package match

import (
	"go.uber.org/zap"

	"github.com/vaanisetu/scheme-cli/internal/catalog"
	"github.com/vaanisetu/scheme-cli/internal/config"
	"github.com/vaanisetu/scheme-cli/internal/model"
)

// Engine ranks catalog schemes against applicant profiles.
type Engine struct {
	cache *catalog.Cache
	cfg   config.MatchConfig
}

// NewEngine creates an Engine over the given catalog cache.
func NewEngine(cache *catalog.Cache, cfg config.MatchConfig) *Engine {
	return &Engine{cache: cache, cfg: cfg}
}

// Match scores every cached scheme against the profile and returns the
// ranked, tier-capped, truncated result list. Results are deterministic for
// a given profile and catalog snapshot.
func (e *Engine) Match(p model.Profile) []model.SchemeMatch {
	schemes := e.cache.Schemes()
	if len(schemes) == 0 {
		zap.L().Warn("match: empty scheme catalog")
		return nil
	}

	ranked := scoreAll(p, schemes, e.cfg)
	results := normalize(p, ranked, e.cfg)

	zap.L().Debug("match: ranked schemes",
		zap.Int("candidates", len(ranked)),
		zap.Int("results", len(results)))
	return results
}

package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/vaanisetu/scheme-cli/internal/analysis"
	"github.com/vaanisetu/scheme-cli/internal/catalog"
	"github.com/vaanisetu/scheme-cli/internal/extract"
	"github.com/vaanisetu/scheme-cli/internal/lexicon"
	"github.com/vaanisetu/scheme-cli/internal/match"
	"github.com/vaanisetu/scheme-cli/internal/store"
)

// env bundles the wired pipeline components for commands.
type env struct {
	Catalog  *catalog.Cache
	Engine   *match.Engine
	Service  *analysis.Service
	Store    store.Store
	closeFns []func()
}

func (e *env) Close() {
	for _, fn := range e.closeFns {
		fn()
	}
}

// initStore opens the configured query log backend. Driver "none" yields a
// NopStore so nothing downstream has to nil-check.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "scheme.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "", "none":
		return store.NopStore{}, nil
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initLexicon loads keyword overrides when configured, otherwise the
// built-in lexicon.
func initLexicon() (*lexicon.Lexicon, error) {
	if cfg.Lexicon.Path == "" {
		return lexicon.Default(), nil
	}
	return lexicon.Load(cfg.Lexicon.Path)
}

// initPipeline wires the full analysis pipeline: lexicon, extractor,
// catalog, match engine, query log, and the orchestrating service.
func initPipeline(ctx context.Context) (*env, error) {
	if err := match.ValidateConfig(cfg.Match); err != nil {
		return nil, err
	}

	lex, err := initLexicon()
	if err != nil {
		return nil, err
	}
	extractor := extract.New(lex)

	var primary catalog.Source
	var closeFns []func()
	if cfg.Catalog.DatabaseURL != "" {
		src, err := catalog.NewPostgresSourceFromURL(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			// A broken primary is survivable; the fallback snapshot covers it.
			zap.L().Warn("catalog: primary connection failed", zap.Error(err))
		} else {
			primary = src
			closeFns = append(closeFns, src.Close)
		}
	}
	cache := catalog.NewCache(primary, catalog.FileSource{Path: cfg.Catalog.FallbackPath})
	cache.Load(ctx)

	engine := match.NewEngine(cache, cfg.Match)

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	svc := analysis.New(extractor, engine, st, cache.Status)
	closeFns = append(closeFns, func() { st.Close() })

	return &env{
		Catalog:  cache,
		Engine:   engine,
		Service:  svc,
		Store:    st,
		closeFns: closeFns,
	}, nil
}

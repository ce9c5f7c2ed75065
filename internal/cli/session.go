package cli

import (
	"context"
	"fmt"

	"script-translator/internal/cache"
	"script-translator/internal/config"
	"script-translator/internal/correction"
	"script-translator/internal/graph"
	"script-translator/internal/pipeline"
	"script-translator/internal/translation"

	"github.com/rs/zerolog/log"
)

// newTranslator builds the machine translation backend of a run.
var newTranslator = func(cfg *config.Config) translation.Translator {
	return translation.NewLibreClient(translation.LibreOptions{
		BaseURL:    cfg.TranslatorURL,
		APIKey:     cfg.TranslatorAPIKey,
		Source:     cfg.SourceLang,
		Target:     cfg.TargetLang,
		Timeout:    cfg.TranslateTimeout,
		MaxRetries: cfg.TranslateRetries,
	})
}

// initSession builds the translator, cache and rule set of a run. The
// returned cleanup releases the translation memory.
func initSession(ctx context.Context, cfg *config.Config) (*pipeline.Session, func(), error) {
	tr := newTranslator(cfg)
	if hc, ok := tr.(translation.HealthChecker); ok {
		if err := hc.CheckHealth(ctx); err != nil {
			return nil, nil, fmt.Errorf("translator health check: %w", err)
		}
	}

	corrector, err := buildCorrector(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var cacheOpts []cache.Option
	cleanup := func() {}
	if cfg.CacheDSN != "" {
		store, err := cache.OpenStore(ctx, cfg.CacheDSN, cfg.SourceLang, cfg.TargetLang)
		if err != nil {
			return nil, nil, fmt.Errorf("open translation memory: %w", err)
		}
		cacheOpts = append(cacheOpts, cache.WithStore(store))
		cleanup = store.Close
	}

	tc := cache.NewTranslationCache(tr, cfg.CacheCapacity, cacheOpts...)
	return pipeline.NewSession(tc, corrector, nil, nil), cleanup, nil
}

// buildCorrector chains the built-in rules, the rules file and the graph
// glossary, in that order. An unreachable glossary only costs its rules.
func buildCorrector(ctx context.Context, cfg *config.Config) (*correction.Corrector, error) {
	rules := correction.DefaultRules()

	if cfg.RulesFile != "" {
		fileRules, err := correction.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		log.Info().Int("count", len(fileRules)).Str("file", cfg.RulesFile).Msg("Loaded correction rules")
		rules = append(rules, fileRules...)
	}

	if cfg.Neo4jURI != "" {
		graphRules, err := loadGlossary(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load glossary, continuing without it")
		} else if _, err := correction.New(graphRules); err != nil {
			log.Warn().Err(err).Msg("Invalid glossary rule, continuing without the glossary")
		} else {
			rules = append(rules, graphRules...)
		}
	}

	return correction.New(rules)
}

func loadGlossary(ctx context.Context, cfg *config.Config) ([]correction.Rule, error) {
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return nil, err
	}
	defer driver.Close(ctx)

	return graph.NewGlossary(driver, cfg.TargetLang).LoadRules(ctx)
}

package graph

import (
	"context"
	"fmt"

	"script-translator/internal/correction"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// EnsureSchema creates the index used by rule lookups.
func (g *Glossary) EnsureSchema(ctx context.Context) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	statements := []string{
		"CREATE INDEX correction_lang IF NOT EXISTS FOR (c:Correction) ON (c.lang)",
	}
	for _, s := range statements {
		if _, err := session.Run(ctx, s, nil); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// ReplaceRules swaps the stored rules of the language for rules, in one
// transaction.
func (g *Glossary) ReplaceRules(ctx context.Context, rules []correction.Rule) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, `MATCH (c:Correction {lang: $lang}) DETACH DELETE c`,
			map[string]any{"lang": g.lang}); err != nil {
			return nil, fmt.Errorf("clear corrections: %w", err)
		}
		if len(rules) == 0 {
			return nil, nil
		}
		if _, err := tx.Run(ctx, `
			UNWIND $rules AS r
			CREATE (:Correction {
				lang: $lang,
				pattern: r.pattern,
				replacement: r.replacement,
				whole_word: r.whole_word,
				position: r.position
			})
		`, map[string]any{"lang": g.lang, "rules": ruleParams(rules)}); err != nil {
			return nil, fmt.Errorf("create corrections: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("count", len(rules)).Str("lang", g.lang).Msg("Synced corrections to graph")
	return nil
}

func ruleParams(rules []correction.Rule) []map[string]any {
	params := make([]map[string]any, len(rules))
	for i, r := range rules {
		params[i] = map[string]any{
			"pattern":     r.Pattern,
			"replacement": r.Replacement,
			"whole_word":  r.WholeWord,
			"position":    int64(i),
		}
	}
	return params
}

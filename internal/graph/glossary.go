// Package graph stores user correction rules in a Neo4j glossary so a team
// can share fixes across runs and machines.
//
// Each rule is a (:Correction) node scoped to a target language:
//
//	(:Correction {lang, pattern, replacement, whole_word, position})
package graph

import (
	"context"
	"fmt"

	"script-translator/internal/correction"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Glossary reads and writes correction rules in Neo4j.
type Glossary struct {
	driver neo4j.DriverWithContext
	lang   string
}

// NewGlossary creates a glossary for rules of the given target language.
func NewGlossary(driver neo4j.DriverWithContext, lang string) *Glossary {
	return &Glossary{driver: driver, lang: lang}
}

// Connect opens and verifies a Neo4j driver.
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Str("uri", uri).Msg("Connected to Neo4j")
	return driver, nil
}

// LoadRules returns the stored rules in position order.
func (g *Glossary) LoadRules(ctx context.Context) ([]correction.Rule, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (c:Correction {lang: $lang})
		RETURN c.pattern AS pattern, c.replacement AS replacement, c.whole_word AS whole_word
		ORDER BY c.position
	`, map[string]any{"lang": g.lang})
	if err != nil {
		return nil, fmt.Errorf("query corrections: %w", err)
	}

	var rules []correction.Rule
	for result.Next(ctx) {
		rule, err := ruleFromRecord(result.Record())
		if err != nil {
			log.Warn().Err(err).Msg("Skipping malformed correction node")
			continue
		}
		rules = append(rules, rule)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read corrections: %w", err)
	}

	log.Info().Int("count", len(rules)).Str("lang", g.lang).Msg("Loaded corrections from graph")
	return rules, nil
}

func ruleFromRecord(record *neo4j.Record) (correction.Rule, error) {
	pattern, _, err := neo4j.GetRecordValue[string](record, "pattern")
	if err != nil {
		return correction.Rule{}, fmt.Errorf("pattern: %w", err)
	}
	if pattern == "" {
		return correction.Rule{}, fmt.Errorf("empty pattern")
	}
	replacement, _, err := neo4j.GetRecordValue[string](record, "replacement")
	if err != nil {
		return correction.Rule{}, fmt.Errorf("replacement for %q: %w", pattern, err)
	}
	// Nodes created by hand may omit whole_word; treat them as bounded.
	wholeWord, isNil, err := neo4j.GetRecordValue[bool](record, "whole_word")
	if err != nil {
		return correction.Rule{}, fmt.Errorf("whole_word for %q: %w", pattern, err)
	}
	if isNil {
		wholeWord = true
	}
	return correction.Rule{Pattern: pattern, Replacement: replacement, WholeWord: wholeWord}, nil
}

// Package correction fixes known machine-translation mistakes in pt-BR output.
//
// Rules run in a fixed order and each rule sees the output of the previous
// one, so a later rule may never fire when an earlier one already rewrote
// the phrase it targets.
package correction

import (
	"fmt"
	"strings"

	"script-translator/internal/textutil"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog/log"
)

// Rule replaces every case-insensitive match of Pattern with Replacement.
// Replacement is literal; WholeWord restricts matches to whole words.
type Rule struct {
	Pattern     string
	Replacement string
	WholeWord   bool
}

// DefaultRules returns the built-in corrections in application order.
func DefaultRules() []Rule {
	return []Rule{
		{`eu\s+congelo|tô\s+congelando`, "Eu paro", true},
		{`fazem\s+uma\s+abelha`, "vão direto", true},
		{`em\s+sua\s+mãe|na\s+sua\s+mãe`, "na boca dele", true},
		{`colocando\s+o\s+bolo\s+em\s+sua\s+mãe`, "colocando o bolo na boca", true},
		{`garras\s+copulam`, "garras perfuram", true},
		{`Quieres\s+peloar!\s+Sem\s+mim\s+jodas!`, "Quer brigar! Não fode comigo!", false},
		{`não\s+na\s+véi`, "no rosto não, cara!", true},
		{`pode\s+tocar\s+na\s+minha\s+porta`, "Fique à vontade.", true},
		{`pegar\s+a\s+buzina\s+de\s+alguém`, "pegar o chifre de alguém", false},
		{`véi\s+de\s+puta`, "filho da puta", false},
	}
}

// LiteralRule builds a whole-word rule that replaces the exact phrase wrong.
// Runs of whitespace in wrong match any whitespace.
func LiteralRule(wrong, right string) Rule {
	fields := strings.Fields(wrong)
	for i, f := range fields {
		fields[i] = regexp2.Escape(f)
	}
	return Rule{Pattern: strings.Join(fields, `\s+`), Replacement: right, WholeWord: true}
}

type compiledRule struct {
	re          *regexp2.Regexp
	replacement string
}

// Corrector applies an ordered rule list.
type Corrector struct {
	rules []compiledRule
}

// New compiles rules, keeping their order.
func New(rules []Rule) (*Corrector, error) {
	c := &Corrector{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if strings.TrimSpace(r.Pattern) == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i+1)
		}
		expr := "(?:" + r.Pattern + ")"
		if r.WholeWord {
			expr = `\b` + expr + `\b`
		}
		re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("rule %d: compile %q: %w", i+1, r.Pattern, err)
		}
		c.rules = append(c.rules, compiledRule{re: re, replacement: r.Replacement})
	}
	return c, nil
}

// NewDefault returns a corrector over DefaultRules.
func NewDefault() *Corrector {
	c, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of rules.
func (c *Corrector) Len() int {
	return len(c.rules)
}

// Correct runs every rule over text in order.
func (c *Corrector) Correct(text string) string {
	for _, r := range c.rules {
		text = r.apply(text)
	}
	return text
}

func (r compiledRule) apply(text string) string {
	out, err := r.re.ReplaceFunc(text, func(regexp2.Match) string {
		return r.replacement
	}, -1, -1)
	if err != nil {
		log.Warn().Err(err).Str("rule", r.re.String()).Str("text", textutil.Truncate(text, 50)).Msg("Correction rule failed, skipping")
		return text
	}
	return out
}

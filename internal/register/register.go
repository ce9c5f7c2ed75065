// Package register rewrites translated pt-BR text toward a formal or casual
// register by lexical substitution.
package register

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"script-translator/internal/formality"
	"script-translator/internal/textutil"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lexicon matches its surface forms as whole words. The alternation is
// ordered longest first so that multi-word phrases win over the single
// words they contain.
type lexicon struct {
	re           *regexp2.Regexp // nil for an empty lexicon
	replacements map[string]string
}

func newLexicon(rules map[string]string) *lexicon {
	lx := &lexicon{replacements: make(map[string]string, len(rules))}
	keys := make([]string, 0, len(rules))
	for k, v := range rules {
		k = strings.ToLower(k)
		if _, dup := lx.replacements[k]; !dup {
			keys = append(keys, k)
		}
		lx.replacements[k] = v
	}
	if len(keys) == 0 {
		return lx
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})
	for i, k := range keys {
		keys[i] = regexp2.Escape(k)
	}
	lx.re = regexp2.MustCompile(`\b(`+strings.Join(keys, "|")+`)\b`, regexp2.IgnoreCase)
	return lx
}

// Adapter rewrites text toward the register detected in its source.
type Adapter struct {
	formal   *lexicon
	informal *lexicon
	upper    cases.Caser
	lower    cases.Caser
}

// NewAdapter builds an adapter from a formal and an informal lexicon.
func NewAdapter(formal, informal map[string]string) *Adapter {
	tag := language.BrazilianPortuguese
	return &Adapter{
		formal:   newLexicon(formal),
		informal: newLexicon(informal),
		upper:    cases.Upper(tag),
		lower:    cases.Lower(tag),
	}
}

// NewDefaultAdapter returns an adapter over the built-in pt-BR lexicons.
func NewDefaultAdapter() *Adapter {
	return NewAdapter(DefaultFormal(), DefaultInformal())
}

// Adapt substitutes lexicon entries for label. Neutral text is returned as is.
func (a *Adapter) Adapt(text string, label formality.Label) string {
	var lx *lexicon
	switch label {
	case formality.Formal:
		lx = a.formal
	case formality.Informal:
		lx = a.informal
	default:
		return text
	}
	if lx.re == nil {
		return text
	}

	out, err := lx.re.ReplaceFunc(text, func(m regexp2.Match) string {
		matched := m.String()
		replacement, ok := lx.replacements[strings.ToLower(matched)]
		if !ok {
			return matched
		}
		return a.applyCase(matched, replacement)
	}, -1, -1)
	if err != nil {
		log.Warn().Err(err).Str("text", textutil.Truncate(text, 50)).Msg("Register adaptation failed, keeping text")
		return text
	}
	return out
}

// applyCase shapes replacement after the casing of matched.
func (a *Adapter) applyCase(matched, replacement string) string {
	switch {
	case isUpper(matched):
		return a.upper.String(replacement)
	case isTitle(matched):
		return a.capitalize(replacement)
	default:
		return replacement
	}
}

// capitalize upper-cases the first rune and lower-cases the rest.
func (a *Adapter) capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + a.lower.String(s[size:])
}

// isUpper reports whether s has cased runes and none of them is lower case.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// isTitle reports whether every cased word of s starts with an upper-case
// rune followed only by lower-case runes.
func isTitle(s string) bool {
	cased, prevCased := false, false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased, cased = true, true
		default:
			prevCased = false
		}
	}
	return cased
}

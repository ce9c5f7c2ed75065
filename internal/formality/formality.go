// Package formality scores English source text for register.
//
// A fixed lexicon assigns signed weights to markers of formal writing
// ("sincerely", "furthermore") and of casual speech ("gonna", "dude").
// The sum over whole-word occurrences is compared against a symmetric
// threshold to label the text formal, informal or neutral.
package formality

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Label is the tri-state register of a text.
type Label int

const (
	Neutral Label = iota
	Formal
	Informal
)

func (l Label) String() string {
	switch l {
	case Formal:
		return "formal"
	case Informal:
		return "informal"
	default:
		return "neutral"
	}
}

// DefaultThreshold is the absolute score a text must exceed to leave neutral.
const DefaultThreshold = 3

// Term is a lexicon phrase and its signed weight.
type Term struct {
	Phrase string
	Weight int
}

// DefaultLexicon returns the built-in English register lexicon.
func DefaultLexicon() []Term {
	return []Term{
		{"sincerely", 5}, {"yours faithfully", 5}, {"to whom it may concern", 5}, {"regards", 4},
		{"esteemed", 4}, {"mr.", 3}, {"mrs.", 3}, {"ms.", 3}, {"madam", 4}, {"sir", 4},
		{"furthermore", 3}, {"consequently", 3}, {"nevertheless", 3}, {"henceforth", 3},
		{"therefore", 2}, {"additionally", 2}, {"moreover", 2}, {"subsequently", 2}, {"thus", 2},
		{"inquire", 3}, {"procure", 3}, {"endeavor", 3}, {"commence", 2}, {"facilitate", 2},
		{"ascertain", 2}, {"request", 1}, {"require", 1}, {"assistance", 2}, {"clarification", 2},
		{"gratitude", 2}, {"opportunity", 1}, {"documentation", 2}, {"pertaining", 2},
		{"shall", 2}, {"kindly", 1},

		{"lmao", -5}, {"rofl", -5}, {"omg", -4}, {"btw", -3}, {"fyi", -3}, {"imo", -3},
		{"lol", -3}, {"ain't", -4}, {"cuz", -3}, {"gonna", -2}, {"wanna", -2}, {"gotta", -2},
		{"dunno", -2}, {"lemme", -2}, {"gimme", -2}, {"can't", -1}, {"don't", -1}, {"won't", -1},
		{"i'm", -1}, {"you're", -1}, {"dude", -3}, {"bro", -3}, {"yo", -3}, {"sup", -3},
		{"what's up", -3}, {"my bad", -3}, {"for real", -2}, {"no worries", -2}, {"hang out", -2},
		{"chill", -2}, {"awesome", -2}, {"dope", -2}, {"sick", -2}, {"lit", -2}, {"cool", -1},
		{"man", -2}, {"buddy", -2}, {"pal", -2}, {"folks", -1}, {"hey", -1}, {"yeah", -1},
		{"yep", -1},
	}
}

type compiledTerm struct {
	re     *regexp2.Regexp
	weight int
}

// Classifier labels text by its lexicon score.
type Classifier struct {
	terms     []compiledTerm
	threshold int
}

// NewClassifier compiles lexicon into a classifier with the given threshold.
func NewClassifier(lexicon []Term, threshold int) *Classifier {
	c := &Classifier{threshold: threshold}
	for _, t := range lexicon {
		c.terms = append(c.terms, compiledTerm{
			re:     regexp2.MustCompile(`\b`+regexp2.Escape(strings.ToLower(t.Phrase))+`\b`, regexp2.None),
			weight: t.Weight,
		})
	}
	return c
}

// NewDefaultClassifier returns a classifier over DefaultLexicon and DefaultThreshold.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultLexicon(), DefaultThreshold)
}

// apostrophes maps typographic apostrophes to the ASCII one used by the lexicon.
var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Score sums the weights of all whole-word lexicon occurrences in text.
func (c *Classifier) Score(text string) int {
	lower := apostrophes.Replace(strings.ToLower(text))
	score := 0
	for _, t := range c.terms {
		score += countMatches(t.re, lower) * t.weight
	}
	return score
}

// countMatches counts the non-overlapping matches of re in s.
func countMatches(re *regexp2.Regexp, s string) int {
	n := 0
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		n++
		m, err = re.FindNextMatch(m)
	}
	return n
}

// Classify labels text. It is meant for the source text, before translation.
func (c *Classifier) Classify(text string) Label {
	return LabelFor(c.Score(text), c.threshold)
}

// LabelFor maps a score to a label: strictly above threshold is formal,
// strictly below -threshold is informal.
func LabelFor(score, threshold int) Label {
	switch {
	case score > threshold:
		return Formal
	case score < -threshold:
		return Informal
	default:
		return Neutral
	}
}

// Package protect keeps inline script tokens out of machine translation.
//
// Ren'Py text carries text tags such as {b}, {color=#f00} or {w=0.5} and
// interpolated variables such as [player_name]. Translating them corrupts the
// game, so a text unit is split into literal and code segments and only the
// literal ones are handed to the translator.
package protect

import (
	"regexp"
	"strings"
)

// Kind tags a segment as translatable or not.
type Kind int

const (
	// Literal text is sent to the translator.
	Literal Kind = iota
	// Code is a brace or bracket token reproduced verbatim.
	Code
)

func (k Kind) String() string {
	if k == Code {
		return "code"
	}
	return "literal"
}

// Segment is a contiguous piece of a text unit.
type Segment struct {
	Kind Kind
	Text string
}

// tokenPattern matches {tag} and [variable] tokens; no nested delimiters.
var tokenPattern = regexp.MustCompile(`\{[^}]+\}|\[[^\]]+\]`)

// HasTokens reports whether text contains at least one code token.
func HasTokens(text string) bool {
	return tokenPattern.MatchString(text)
}

// Split cuts text into literal and code segments in their original order.
// Empty segments are dropped, so joining the segments reproduces text.
// Once text holds a token, any piece wrapped in braces or brackets, such as
// "{}" or "[]", is code too.
func Split(text string) []Segment {
	locs := tokenPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		if text == "" {
			return nil
		}
		return []Segment{{Kind: Literal, Text: text}}
	}

	segments := make([]Segment, 0, 2*len(locs)+1)
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			segments = append(segments, between(text[last:loc[0]]))
		}
		segments = append(segments, Segment{Kind: Code, Text: text[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, between(text[last:]))
	}
	return segments
}

func between(text string) Segment {
	if isWrapped(text, '{', '}') || isWrapped(text, '[', ']') {
		return Segment{Kind: Code, Text: text}
	}
	return Segment{Kind: Literal, Text: text}
}

func isWrapped(text string, open, close byte) bool {
	return len(text) >= 2 && text[0] == open && text[len(text)-1] == close
}

// Join concatenates segments in order.
func Join(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Translate runs fn over the literal segments of text and rejoins the result.
// Code segments never reach fn.
func Translate(text string, fn func(string) string) string {
	if !HasTokens(text) {
		return fn(text)
	}

	segments := Split(text)
	for i, s := range segments {
		if s.Kind == Literal {
			segments[i].Text = fn(s.Text)
		}
	}
	return Join(segments)
}

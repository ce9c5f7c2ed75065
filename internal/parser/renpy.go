package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Line shapes of Ren'Py translation files. They run against the line text
// without its terminator.
var (
	reOld                = regexp.MustCompile(`^\s*old\s*"(?P<text>.+?)"\s*$`)
	reNewEmpty           = regexp.MustCompile(`^(?P<indent>\s*new\s*)""\s*$`)
	reCommentedDialogue  = regexp.MustCompile(`^\s*#\s*(?P<prefix>.+?)\s+"(?P<text>.+?)"\s*$`)
	reEmptyDialogue      = regexp.MustCompile(`^(?P<indent>\s*)(?P<prefix>.+?)\s+""\s*$`)
	reCommentedNarration = regexp.MustCompile(`^\s*#\s*"(?P<text>.+?)"(?P<rest>.*)$`)
	reEmptyNarration     = regexp.MustCompile(`^(?P<indent>\s*)""(?P<rest>.*)$`)
)

// LineKind classifies a single line by the first shape it matches.
type LineKind int

const (
	Unrelated LineKind = iota
	OldText
	NewPlaceholder
	CommentedDialogue
	PlaceholderDialogue
	CommentedNarration
	PlaceholderNarration
)

func (k LineKind) String() string {
	switch k {
	case OldText:
		return "old-text"
	case NewPlaceholder:
		return "new-placeholder"
	case CommentedDialogue:
		return "commented-dialogue"
	case PlaceholderDialogue:
		return "placeholder-dialogue"
	case CommentedNarration:
		return "commented-narration"
	case PlaceholderNarration:
		return "placeholder-narration"
	default:
		return "unrelated"
	}
}

// Classify reports the kind of a line's text. Narration shapes are checked
// before dialogue ones since a narration line can also look like dialogue.
func Classify(text string) LineKind {
	switch {
	case reOld.MatchString(text):
		return OldText
	case reNewEmpty.MatchString(text):
		return NewPlaceholder
	case reCommentedNarration.MatchString(text):
		return CommentedNarration
	case reCommentedDialogue.MatchString(text):
		return CommentedDialogue
	case reEmptyNarration.MatchString(text):
		return PlaceholderNarration
	case reEmptyDialogue.MatchString(text):
		return PlaceholderDialogue
	default:
		return Unrelated
	}
}

// IsPlaceholder reports whether k is an empty translation slot.
func (k LineKind) IsPlaceholder() bool {
	return k == NewPlaceholder || k == PlaceholderDialogue || k == PlaceholderNarration
}

// UnpairedPlaceholders returns the lines of result that hold an empty
// translation slot with no source line the parser could pair it with.
func UnpairedPlaceholders(result *ParseResult) []*SourceLine {
	var out []*SourceLine
	for _, s := range result.Steps {
		if s.Line != nil && Classify(s.Line.Text).IsPlaceholder() {
			out = append(out, s.Line)
		}
	}
	return out
}

// outcome of trying one pair variant at a position.
type outcome int

const (
	noShape     outcome = iota // try the next variant
	keyMismatch                // both shapes matched, keys differ; stop here
	matched
)

type variant struct {
	shape Shape
	try   func(cur, next SourceLine) (Pair, outcome)
}

// variants in priority order.
var variants = []variant{
	{OldNew, matchOldNew},
	{Dialogue, matchDialogue},
	{Narration, matchNarration},
}

func matchOldNew(cur, next SourceLine) (Pair, outcome) {
	mo := reOld.FindStringSubmatch(cur.Text)
	mn := reNewEmpty.FindStringSubmatch(next.Text)
	if mo == nil || mn == nil {
		return Pair{}, noShape
	}
	return Pair{
		Text:   mo[reOld.SubexpIndex("text")],
		Indent: mn[reNewEmpty.SubexpIndex("indent")],
	}, matched
}

func matchDialogue(cur, next SourceLine) (Pair, outcome) {
	mc := reCommentedDialogue.FindStringSubmatch(cur.Text)
	me := reEmptyDialogue.FindStringSubmatch(next.Text)
	if mc == nil || me == nil {
		return Pair{}, noShape
	}
	commented := strings.Fields(mc[reCommentedDialogue.SubexpIndex("prefix")])
	prefix := me[reEmptyDialogue.SubexpIndex("prefix")]
	placeholder := strings.Fields(prefix)
	if len(commented) == 0 || len(placeholder) == 0 {
		// A whitespace-only prefix has no statement keyword.
		return Pair{}, noShape
	}
	if commented[0] != placeholder[0] {
		return Pair{}, keyMismatch
	}
	return Pair{
		Text:   mc[reCommentedDialogue.SubexpIndex("text")],
		Indent: me[reEmptyDialogue.SubexpIndex("indent")],
		Prefix: prefix,
	}, matched
}

func matchNarration(cur, next SourceLine) (Pair, outcome) {
	mc := reCommentedNarration.FindStringSubmatch(cur.Text)
	me := reEmptyNarration.FindStringSubmatch(next.Text)
	if mc == nil || me == nil {
		return Pair{}, noShape
	}
	rest := me[reEmptyNarration.SubexpIndex("rest")]
	if strings.TrimSpace(mc[reCommentedNarration.SubexpIndex("rest")]) != strings.TrimSpace(rest) {
		return Pair{}, keyMismatch
	}
	return Pair{
		Text:     mc[reCommentedNarration.SubexpIndex("text")],
		Indent:   me[reEmptyNarration.SubexpIndex("indent")],
		Trailing: rest,
	}, matched
}

// MatchPair tries every variant on two consecutive lines and returns the
// first pair found.
func MatchPair(cur, next SourceLine) (Pair, bool) {
	for _, v := range variants {
		p, out := v.try(cur, next)
		switch out {
		case matched:
			p.Shape = v.shape
			p.Original = cur
			p.Placeholder = next
			return p, true
		case keyMismatch:
			return Pair{}, false
		}
	}
	return Pair{}, false
}

// RenpyParser pairs original and placeholder lines of Ren'Py translation files.
type RenpyParser struct {
	ext string
}

// NewRenpyParser creates a parser for files with the given extension (".rpy" if empty).
func NewRenpyParser(ext string) *RenpyParser {
	if ext == "" {
		ext = ".rpy"
	}
	return &RenpyParser{ext: ext}
}

func (p *RenpyParser) CanParse(ext string) bool {
	return ext == p.ext
}

func (p *RenpyParser) Parse(filePath string) (*ParseResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read rpy file: %w", err)
	}
	result := ParseLines(string(data))
	result.FilePath = filePath
	return result, nil
}

// SplitLines cuts content into lines, keeping each line's terminator.
func SplitLines(content string) []SourceLine {
	if content == "" {
		return nil
	}
	raw := strings.SplitAfter(content, "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	lines := make([]SourceLine, len(raw))
	for i, r := range raw {
		text, eol := r, ""
		switch {
		case strings.HasSuffix(r, "\r\n"):
			text, eol = r[:len(r)-2], "\r\n"
		case strings.HasSuffix(r, "\n"):
			text, eol = r[:len(r)-1], "\n"
		}
		lines[i] = SourceLine{Index: i, Text: text, EOL: eol}
	}
	return lines
}

// ParseLines runs the forward scan over content: a matched pair consumes two
// lines, anything else passes through one line at a time.
func ParseLines(content string) *ParseResult {
	lines := SplitLines(content)
	result := &ParseResult{
		FileType: "rpy",
		Lines:    lines,
		Steps:    make([]Step, 0, len(lines)),
	}

	for i := 0; i < len(lines); {
		if i+1 < len(lines) {
			if p, ok := MatchPair(lines[i], lines[i+1]); ok {
				result.Steps = append(result.Steps, Step{Pair: &p})
				i += 2
				continue
			}
		}
		result.Steps = append(result.Steps, Step{Line: &lines[i]})
		i++
	}
	return result
}

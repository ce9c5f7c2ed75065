package parser

import "strings"

// SourceLine is one line of a script file.
type SourceLine struct {
	// Index is the 0-based line number.
	Index int
	// Text is the line content without its terminator.
	Text string
	// EOL is the terminator: "\n", "\r\n" or "" for an unterminated last line.
	EOL string
}

// Raw returns the line exactly as it appeared in the file.
func (l SourceLine) Raw() string {
	return l.Text + l.EOL
}

// Shape identifies which pair variant matched.
type Shape int

const (
	// OldNew is a string-table entry: old "<text>" then new "".
	OldNew Shape = iota
	// Dialogue is a commented say statement then its empty placeholder.
	Dialogue
	// Narration is a commented narration line then its empty placeholder.
	Narration
)

func (s Shape) String() string {
	switch s {
	case OldNew:
		return "old/new"
	case Dialogue:
		return "dialogue"
	case Narration:
		return "narration"
	default:
		return "unknown"
	}
}

// Pair binds an original line to the placeholder line that receives its
// translation.
type Pair struct {
	Shape       Shape
	Original    SourceLine
	Placeholder SourceLine
	// Text is the quoted source text to translate.
	Text string
	// Indent is the placeholder's leading context: whitespace, plus the
	// "new" keyword for OldNew.
	Indent string
	// Prefix is the placeholder's statement prefix (Dialogue only).
	Prefix string
	// Trailing is the placeholder's text after the closing quote, kept
	// unstripped (Narration only).
	Trailing string
}

// Format renders the placeholder line carrying translated, terminated with
// the placeholder's own terminator or "\n" when it had none.
func (p Pair) Format(translated string) string {
	var sb strings.Builder
	sb.WriteString(p.Indent)
	if p.Shape == Dialogue {
		sb.WriteString(p.Prefix)
		sb.WriteByte(' ')
	}
	sb.WriteByte('"')
	sb.WriteString(translated)
	sb.WriteByte('"')
	if p.Shape == Narration {
		sb.WriteString(p.Trailing)
	}
	eol := p.Placeholder.EOL
	if eol == "" {
		eol = "\n"
	}
	sb.WriteString(eol)
	return sb.String()
}

// Step is one scan decision: either a single line passed through or a pair
// consuming two lines. Exactly one field is set.
type Step struct {
	Line *SourceLine
	Pair *Pair
}

// ParseResult holds parsing output for a single file.
type ParseResult struct {
	// FilePath is the path of the parsed file.
	FilePath string
	// FileType is the detected type (rpy).
	FileType string
	// Lines preserves the original file content for reconstruction.
	Lines []SourceLine
	// Steps covers every line of the file in order.
	Steps []Step
}

// Pairs returns the matched pairs in file order.
func (r *ParseResult) Pairs() []Pair {
	var out []Pair
	for _, s := range r.Steps {
		if s.Pair != nil {
			out = append(out, *s.Pair)
		}
	}
	return out
}

// Parser is the interface for script file parsers.
type Parser interface {
	// CanParse returns true if this parser handles the given file extension.
	CanParse(ext string) bool
	// Parse reads a file and pairs its lines.
	Parse(filePath string) (*ParseResult, error)
}

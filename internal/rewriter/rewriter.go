// Package rewriter fills the placeholder lines of script files with
// translations and saves the result in place.
package rewriter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"script-translator/internal/parser"
	"script-translator/internal/textutil"

	"github.com/google/renameio"
	"github.com/rs/zerolog/log"
)

// BackupSuffix is appended to a script file's name for its pre-edit copy.
const BackupSuffix = ".bak"

// UnitTranslator translates one text unit and never fails.
type UnitTranslator interface {
	TranslateUnit(ctx context.Context, original string) string
}

// FileRewriter rewrites script files in place.
type FileRewriter struct {
	parser     parser.Parser
	translator UnitTranslator
}

// New creates a FileRewriter.
func New(p parser.Parser, t UnitTranslator) *FileRewriter {
	return &FileRewriter{parser: p, translator: t}
}

// Reconstruct rebuilds file content from a parse result. Unmatched and
// original lines are kept byte for byte; each pair's placeholder is replaced
// by a line carrying translate(pair). It returns the content and the number
// of pairs.
func Reconstruct(result *parser.ParseResult, translate func(parser.Pair) string) ([]byte, int) {
	var sb strings.Builder
	pairs := 0
	for _, step := range result.Steps {
		if step.Pair == nil {
			sb.WriteString(step.Line.Raw())
			continue
		}
		sb.WriteString(step.Pair.Original.Raw())
		sb.WriteString(step.Pair.Format(translate(*step.Pair)))
		pairs++
	}
	return []byte(sb.String()), pairs
}

// ProcessFile translates every pair of the file at path. When at least one
// pair exists, the file is copied to path+".bak" and then atomically
// replaced. It returns the number of translated pairs.
func (fr *FileRewriter) ProcessFile(ctx context.Context, path string) (int, error) {
	log.Info().Str("file", filepath.Base(path)).Msg("Processing file")

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	result, err := fr.parser.Parse(path)
	if err != nil {
		return 0, err
	}

	content, pairs := Reconstruct(result, func(p parser.Pair) string {
		translated := fr.translator.TranslateUnit(ctx, p.Text)
		log.Debug().
			Int("line", p.Original.Index+1).
			Str("shape", p.Shape.String()).
			Str("text", textutil.Truncate(p.Text, 50)).
			Str("translated", textutil.Truncate(translated, 50)).
			Msg("Pair translated")
		return translated
	})

	for _, line := range parser.UnpairedPlaceholders(result) {
		log.Debug().
			Str("file", filepath.Base(path)).
			Int("line", line.Index+1).
			Str("kind", parser.Classify(line.Text).String()).
			Msg("Placeholder without a source line left untranslated")
	}

	if pairs == 0 {
		log.Info().Str("file", filepath.Base(path)).Msg("No translation needed")
		return 0, nil
	}

	// Cancelled runs would leave source text in the placeholders.
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := writeFile(path, content, info.Mode().Perm()); err != nil {
		return 0, err
	}

	log.Info().
		Str("file", filepath.Base(path)).
		Int("pairs", pairs).
		Str("backup", filepath.Base(path)+BackupSuffix).
		Msg("File translated")
	return pairs, nil
}

// writeFile backs up the current content of path and atomically replaces it.
func writeFile(path string, content []byte, perm os.FileMode) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s for backup: %w", path, err)
	}
	if err := renameio.WriteFile(path+BackupSuffix, original, perm); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	out, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer out.Cleanup()

	if _, err := out.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := out.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := out.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

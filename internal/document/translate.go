package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"script-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// OutputName is the file name of the translated document, written next to
// the input.
const OutputName = "untranslated pt-BR.docx"

// progressEvery is the paragraph interval of info-level progress logs.
const progressEvery = 25

// UnitTranslator translates one paragraph and never fails.
type UnitTranslator interface {
	TranslateUnit(ctx context.Context, original string) string
}

// IsDocx reports whether path names a .docx file.
func IsDocx(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".docx")
}

// OutputPath returns where the translation of input is saved.
func OutputPath(input string) string {
	return filepath.Join(filepath.Dir(input), OutputName)
}

// Translate reads every paragraph of input, translates it and writes a new
// document at OutputPath(input). The input is never modified.
func Translate(ctx context.Context, input string, tr UnitTranslator) (string, error) {
	if !IsDocx(input) {
		return "", fmt.Errorf("%s is not a .docx file", input)
	}
	output := OutputPath(input)
	if filepath.Clean(input) == output {
		return "", fmt.Errorf("input %s would be overwritten by the output", input)
	}

	log.Info().Str("file", filepath.Base(input)).Msg("Reading document")
	paragraphs, err := ReadParagraphs(input)
	if err != nil {
		return "", err
	}

	total := len(paragraphs)
	log.Info().Int("paragraphs", total).Msg("Translating paragraphs")

	translated := make([]string, total)
	for i, p := range paragraphs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		translated[i] = translateParagraph(ctx, tr, p)

		log.Debug().Int("paragraph", i+1).Int("total", total).Msg("Progress")
		if (i+1)%progressEvery == 0 {
			log.Info().Int("paragraph", i+1).Int("total", total).Msg("Progress")
		}
	}

	if err := WriteParagraphs(output, translated); err != nil {
		return "", err
	}
	log.Info().Str("output", output).Msg("Translation saved")
	return output, nil
}

func translateParagraph(ctx context.Context, tr UnitTranslator, text string) string {
	switch {
	case strings.TrimSpace(text) == textutil.Sentinel:
		return textutil.Sentinel
	case textutil.IsBlank(text):
		return ""
	default:
		return tr.TranslateUnit(ctx, text)
	}
}

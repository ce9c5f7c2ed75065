// Package pipeline composes token protection, cached translation, correction
// and register adaptation into the per-unit translation used by both modes.
package pipeline

import (
	"context"
	"strings"

	"script-translator/internal/cache"
	"script-translator/internal/correction"
	"script-translator/internal/formality"
	"script-translator/internal/protect"
	"script-translator/internal/register"
	"script-translator/internal/textutil"
)

// Session holds the collaborators of one translation run.
type Session struct {
	cache      *cache.TranslationCache
	corrector  *correction.Corrector
	classifier *formality.Classifier
	adapter    *register.Adapter
}

// NewSession builds a session. Nil corrector, classifier or adapter fall back
// to the built-in defaults.
func NewSession(c *cache.TranslationCache, corrector *correction.Corrector, classifier *formality.Classifier, adapter *register.Adapter) *Session {
	if corrector == nil {
		corrector = correction.NewDefault()
	}
	if classifier == nil {
		classifier = formality.NewDefaultClassifier()
	}
	if adapter == nil {
		adapter = register.NewDefaultAdapter()
	}
	return &Session{
		cache:      c,
		corrector:  corrector,
		classifier: classifier,
		adapter:    adapter,
	}
}

// TranslateUnit translates one dialogue line or paragraph. It never fails:
// translator errors leave the affected text untranslated.
func (s *Session) TranslateUnit(ctx context.Context, original string) string {
	if strings.TrimSpace(original) == "" {
		return ""
	}
	if original == textutil.Sentinel {
		return original
	}

	translated := protect.Translate(original, func(literal string) string {
		return s.cache.Lookup(ctx, literal)
	})
	corrected := s.corrector.Correct(translated)
	label := s.classifier.Classify(original)
	return s.adapter.Adapt(corrected, label)
}

// CacheStats reports the counters of the session cache.
func (s *Session) CacheStats() cache.Stats {
	return s.cache.Stats()
}

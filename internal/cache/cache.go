package cache

import (
	"context"
	"sync"

	"script-translator/internal/textutil"
	"script-translator/internal/translation"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// DefaultCapacity is the number of translations kept in memory.
const DefaultCapacity = 16384

// Stats counts cache activity for the end-of-run summary.
type Stats struct {
	Hits      int
	StoreHits int
	Misses    int
	Failures  int
	Evictions int
	Size      int
}

// TranslationCache memoizes translator calls in a bounded in-memory LRU,
// optionally backed by a persistent translation memory.
type TranslationCache struct {
	translator translation.Translator
	store      Store // optional, nil when no CACHE_DSN is configured

	mu     sync.Mutex
	memory *lru.Cache[string, string]
	stats  Stats
}

// Option customizes a TranslationCache.
type Option func(*TranslationCache)

// WithStore attaches a persistent translation memory.
func WithStore(s Store) Option {
	return func(c *TranslationCache) {
		c.store = s
	}
}

// NewTranslationCache creates a cache in front of tr holding at most capacity entries.
func NewTranslationCache(tr translation.Translator, capacity int, opts ...Option) *TranslationCache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	// lru.New only fails for a non-positive size.
	memory, _ := lru.New[string, string](capacity)
	c := &TranslationCache{
		translator: tr,
		memory:     memory,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the translation of text. Blank text and the sentinel are
// returned unchanged. A translator failure is logged and the original text is
// returned and remembered, so a failing text is not retried within the run.
func (c *TranslationCache) Lookup(ctx context.Context, text string) string {
	if textutil.IsPassThrough(text) {
		return text
	}

	c.mu.Lock()
	if v, ok := c.memory.Get(text); ok {
		c.stats.Hits++
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	if c.store != nil {
		translated, ok, err := c.store.Get(ctx, text)
		if err != nil {
			log.Warn().Err(err).Str("text", textutil.Truncate(text, 50)).Msg("Translation memory lookup failed")
		} else if ok {
			c.remember(text, translated, func(s *Stats) { s.StoreHits++ })
			return translated
		}
	}

	translated, err := c.translator.Translate(ctx, text)
	if err != nil {
		log.Warn().Err(err).Str("text", textutil.Truncate(text, 50)).Msg("Translation failed, keeping original text")
		c.remember(text, text, func(s *Stats) { s.Failures++ })
		return text
	}

	c.remember(text, translated, func(s *Stats) { s.Misses++ })

	if c.store != nil {
		if err := c.store.Set(ctx, text, translated); err != nil {
			log.Warn().Err(err).Str("text", textutil.Truncate(text, 50)).Msg("Failed to persist translation")
		}
	}

	return translated
}

func (c *TranslationCache) remember(text, translated string, count func(*Stats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	count(&c.stats)
	if c.memory.Add(text, translated) {
		c.stats.Evictions++
	}
}

// Stats returns a snapshot of the cache counters.
func (c *TranslationCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = c.memory.Len()
	return s
}

package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"script-translator/internal/translation"
)

type countingTranslator struct {
	calls map[string]int
	fail  bool
}

func newCounting() *countingTranslator {
	return &countingTranslator{calls: make(map[string]int)}
}

func (c *countingTranslator) Translate(_ context.Context, text string) (string, error) {
	c.calls[text]++
	if c.fail {
		return "", errors.New("translator offline")
	}
	return "pt:" + text, nil
}

func TestLookupIsIdempotent(t *testing.T) {
	tr := newCounting()
	c := NewTranslationCache(tr, 10)
	ctx := context.Background()

	first := c.Lookup(ctx, "Hello ")
	second := c.Lookup(ctx, "Hello ")
	if first != "pt:Hello " || second != first {
		t.Fatalf("got %q then %q", first, second)
	}
	if tr.calls["Hello "] != 1 {
		t.Fatalf("translator called %d times, want 1", tr.calls["Hello "])
	}
	// Keys are exact: different whitespace is a different entry.
	c.Lookup(ctx, "Hello")
	if tr.calls["Hello"] != 1 {
		t.Fatalf("translator not called for distinct key")
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 2 || s.Size != 2 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestLookupPassThrough(t *testing.T) {
	tr := newCounting()
	c := NewTranslationCache(tr, 10)
	for _, in := range []string{"", "   ", "\t\n", "EMPTYSTRING"} {
		if got := c.Lookup(context.Background(), in); got != in {
			t.Errorf("Lookup(%q) = %q, want unchanged", in, got)
		}
	}
	if len(tr.calls) != 0 {
		t.Fatalf("translator called for pass-through input: %v", tr.calls)
	}
	if c.Stats().Size != 0 {
		t.Fatal("pass-through input must not be cached")
	}
}

func TestLookupSoftFails(t *testing.T) {
	tr := newCounting()
	tr.fail = true
	c := NewTranslationCache(tr, 10)

	for i := 0; i < 2; i++ {
		if got := c.Lookup(context.Background(), "Run!"); got != "Run!" {
			t.Fatalf("Lookup = %q, want original text", got)
		}
	}
	if tr.calls["Run!"] != 1 {
		t.Fatalf("failing text translated %d times, want 1", tr.calls["Run!"])
	}
	if c.Stats().Failures != 1 {
		t.Fatalf("failures = %d, want 1", c.Stats().Failures)
	}
}

func TestLookupEvictsAtCapacity(t *testing.T) {
	tr := newCounting()
	c := NewTranslationCache(tr, 2)
	ctx := context.Background()

	c.Lookup(ctx, "a")
	c.Lookup(ctx, "b")
	c.Lookup(ctx, "c") // evicts a
	c.Lookup(ctx, "a")
	if tr.calls["a"] != 2 {
		t.Fatalf("a translated %d times, want 2 after eviction", tr.calls["a"])
	}
	if s := c.Stats(); s.Evictions != 2 || s.Size != 2 {
		t.Fatalf("stats = %+v, want 2 evictions and size 2", s)
	}
}

func TestLookupKeepsRecentlyUsed(t *testing.T) {
	tr := newCounting()
	c := NewTranslationCache(tr, 2)
	ctx := context.Background()

	c.Lookup(ctx, "a")
	c.Lookup(ctx, "b")
	c.Lookup(ctx, "a") // a becomes most recent
	c.Lookup(ctx, "c") // evicts b
	c.Lookup(ctx, "a")
	c.Lookup(ctx, "b")
	if tr.calls["a"] != 1 {
		t.Fatalf("a translated %d times, want 1", tr.calls["a"])
	}
	if tr.calls["b"] != 2 {
		t.Fatalf("b translated %d times, want 2 after eviction", tr.calls["b"])
	}
}

func TestNewTranslationCacheDefaultCapacity(t *testing.T) {
	c := NewTranslationCache(newCounting(), 0)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "c"} {
		c.Lookup(ctx, text)
	}
	if s := c.Stats(); s.Evictions != 0 || s.Size != 3 {
		t.Fatalf("stats = %+v, want no evictions with default capacity", s)
	}
}

func TestLookupUsesPersistentStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "memory.db")

	store, err := OpenStore(ctx, "sqlite://"+path, "en", "pb")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	tr := newCounting()
	NewTranslationCache(tr, 10, WithStore(store)).Lookup(ctx, "Good morning")
	store.Close()

	// A fresh process: new store handle, new in-memory cache.
	store, err = OpenStore(ctx, "sqlite:"+path, "en", "pb")
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()

	tr2 := newCounting()
	c := NewTranslationCache(tr2, 10, WithStore(store))
	if got := c.Lookup(ctx, "Good morning"); got != "pt:Good morning" {
		t.Fatalf("Lookup = %q, want stored translation", got)
	}
	if len(tr2.calls) != 0 {
		t.Fatalf("translator called despite stored translation: %v", tr2.calls)
	}
	if c.Stats().StoreHits != 1 {
		t.Fatalf("store hits = %d, want 1", c.Stats().StoreHits)
	}
}

func TestLookupDoesNotPersistFailures(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "m.db"), "en", "pb")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	tr := newCounting()
	tr.fail = true
	NewTranslationCache(tr, 10, WithStore(store)).Lookup(ctx, "Run!")

	if _, ok, err := store.Get(ctx, "Run!"); err != nil || ok {
		t.Fatalf("failed translation was persisted (ok=%v, err=%v)", ok, err)
	}
}

func TestStoreSeparatesLanguagePairs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "m.db")

	pb, err := NewSQLiteStore(ctx, path, "en", "pb")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := pb.Set(ctx, "Yes", "Sim"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	pb.Close()

	es, err := NewSQLiteStore(ctx, path, "en", "es")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer es.Close()
	if _, ok, _ := es.Get(ctx, "Yes"); ok {
		t.Fatal("translation leaked across language pairs")
	}
}

func TestOpenStoreRejectsUnknownScheme(t *testing.T) {
	if _, err := OpenStore(context.Background(), "redis://localhost", "en", "pb"); err == nil {
		t.Fatal("expected error for unsupported DSN")
	}
}

var _ translation.Translator = (*countingTranslator)(nil)

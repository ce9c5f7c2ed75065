package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"script-translator/internal/textutil"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS translation_cache (
	hash        TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	translated  TEXT NOT NULL,
	source_lang TEXT NOT NULL,
	target_lang TEXT NOT NULL,
	updated_at  TEXT NOT NULL
)`

// SQLiteStore keeps translations in a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	source string
	target string
}

// NewSQLiteStore opens (creating if needed) the SQLite database at path.
func NewSQLiteStore(ctx context.Context, path, source, target string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite cache path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; the pipeline is sequential anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure cache table: %w", err)
	}
	log.Info().Str("path", path).Msg("Opened SQLite translation memory")

	return &SQLiteStore{db: db, source: source, target: target}, nil
}

// Get retrieves a stored translation.
func (s *SQLiteStore) Get(ctx context.Context, text string) (string, bool, error) {
	var translated string
	err := s.db.QueryRowContext(ctx,
		`SELECT translated FROM translation_cache WHERE hash = ?`,
		textutil.Hash(s.source, s.target, text),
	).Scan(&translated)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return translated, true, nil
}

// Set upserts a translation.
func (s *SQLiteStore) Set(ctx context.Context, text, translated string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO translation_cache (hash, source, translated, source_lang, target_lang, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(hash) DO UPDATE
		SET translated = excluded.translated, updated_at = excluded.updated_at`,
		textutil.Hash(s.source, s.target, text), text, translated, s.source, s.target,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() {
	if err := s.db.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close SQLite translation memory")
	}
}

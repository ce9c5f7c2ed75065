package cache

import (
	"context"
	"errors"
	"fmt"

	"script-translator/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS translation_cache (
	hash        TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	translated  TEXT NOT NULL,
	source_lang TEXT NOT NULL,
	target_lang TEXT NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps translations in a shared PostgreSQL table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	source string
	target string
}

// NewPostgresStore connects to PostgreSQL and ensures the cache table exists.
func NewPostgresStore(ctx context.Context, dsn, source, target string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure cache table: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL translation memory")

	return &PostgresStore{pool: pool, source: source, target: target}, nil
}

// Get retrieves a stored translation.
func (s *PostgresStore) Get(ctx context.Context, text string) (string, bool, error) {
	var translated string
	err := s.pool.QueryRow(ctx,
		`SELECT translated FROM translation_cache WHERE hash = $1`,
		textutil.Hash(s.source, s.target, text),
	).Scan(&translated)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return translated, true, nil
}

// Set upserts a translation.
func (s *PostgresStore) Set(ctx context.Context, text, translated string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO translation_cache (hash, source, translated, source_lang, target_lang)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (hash) DO UPDATE
		SET translated = EXCLUDED.translated, updated_at = now()`,
		textutil.Hash(s.source, s.target, text), text, translated, s.source, s.target,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

package cli

import (
	"context"
	"fmt"
	"os"

	"script-translator/internal/config"
	"script-translator/internal/correction"
	"script-translator/internal/document"
	"script-translator/internal/filewalker"
	"script-translator/internal/graph"
	"script-translator/internal/pipeline"
	"script-translator/internal/rewriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// runTranslate handles the root command in both modes.
func runTranslate(cmd *cobra.Command, opts *options, path string) error {
	mode, err := ParseMode(opts.mode)
	if err != nil {
		return err
	}

	cfg := config.Load()
	applyFlags(cmd, opts, cfg)

	closer, err := setupLogging(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := checkInput(mode, path); err != nil {
		return err
	}

	ctx, cancel := setupContext()
	defer cancel()

	session, cleanup, err := initSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	switch mode {
	case ModeDocument:
		return runDocument(ctx, session, path)
	default:
		return runScript(ctx, session, path, cfg.ScriptExt)
	}
}

// checkInput rejects a missing path before any service is contacted.
func checkInput(mode Mode, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input %s: %w", path, err)
	}

	switch mode {
	case ModeScript:
		if !info.IsDir() {
			return fmt.Errorf("script mode needs a directory, %s is a file", path)
		}
	case ModeDocument:
		if info.IsDir() {
			return fmt.Errorf("document mode needs a file, %s is a directory", path)
		}
		if !document.IsDocx(path) {
			return fmt.Errorf("%s is not a .docx file", path)
		}
	}
	return nil
}

// runScript translates every script file of dir in name order.
func runScript(ctx context.Context, session *pipeline.Session, dir, ext string) error {
	w := filewalker.NewWalker(ext)
	entries, err := w.Walk(dir)
	if err != nil {
		return fmt.Errorf("list script files: %w", err)
	}
	if len(entries) == 0 {
		log.Warn().Str("dir", dir).Str("ext", ext).Msg("No script files found")
		return nil
	}

	totalPairs, failedFiles := 0, 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		pairs, err := rewriter.New(entry.Parser, session).ProcessFile(ctx, entry.Path)
		if err != nil {
			log.Error().Err(err).Str("file", entry.Path).Msg("File failed")
			failedFiles++
			continue
		}
		totalPairs += pairs
	}

	stats := session.CacheStats()
	log.Info().
		Int("files", len(entries)).
		Int("failed_files", failedFiles).
		Int("pairs", totalPairs).
		Int("cache_hits", stats.Hits).
		Int("memory_hits", stats.StoreHits).
		Int("translated", stats.Misses).
		Int("translate_failures", stats.Failures).
		Msg("Script translation complete")
	log.Info().Msg("Review the translated text manually before shipping")
	return nil
}

// runDocument translates one .docx. Any error aborts the run.
func runDocument(ctx context.Context, session *pipeline.Session, path string) error {
	output, err := document.Translate(ctx, path, session)
	if err != nil {
		return fmt.Errorf("translate document: %w", err)
	}

	stats := session.CacheStats()
	log.Info().
		Str("output", output).
		Int("translated", stats.Misses).
		Int("translate_failures", stats.Failures).
		Msg("Document translation complete")
	return nil
}

// runSyncRules handles the `sync-rules` command.
func runSyncRules(path string) error {
	cfg := config.Load()
	closer, err := setupLogging(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	rules, err := correction.LoadRulesFile(path)
	if err != nil {
		return err
	}
	if cfg.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is not set")
	}

	ctx, cancel := setupContext()
	defer cancel()

	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	glossary := graph.NewGlossary(driver, cfg.TargetLang)
	if err := glossary.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure glossary schema: %w", err)
	}
	return glossary.ReplaceRules(ctx, rules)
}

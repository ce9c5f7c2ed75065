package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"script-translator/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

// Mode selects what the positional path argument names.
type Mode string

const (
	ModeScript   Mode = "script"
	ModeDocument Mode = "document"
)

// ParseMode accepts the mode names and their file-extension aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "script", "rpy":
		return ModeScript, nil
	case "document", "docx":
		return ModeDocument, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want script|rpy or document|docx)", s)
	}
}

// options holds flag values; set flags override the environment.
type options struct {
	mode          string
	source        string
	target        string
	translatorURL string
	cacheDSN      string
	cacheSize     int
	rules         string
	logLevel      string
	logFile       string
}

func newRootCmd() *cobra.Command {
	return rootCmd(&options{})
}

func rootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script-translator --mode script|document <path>",
		Short: "Machine-translate Ren'Py scripts and Word documents into Brazilian Portuguese",
		Long: `Fills the empty placeholder lines of Ren'Py translation files, or translates
every paragraph of a .docx file, through a LibreTranslate server. Inline text
tags and [variables] are kept intact, known mistranslations are corrected and
the result is nudged toward the register (formal or informal) of the source.

Examples:
  script-translator --mode script ./game/tl/pb
  script-translator --mode document ./story.docx`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.mode, "mode", "", "Operation mode: script (rpy) for a directory, document (docx) for a single file")
	f.StringVar(&opts.source, "source", "", "Source language code (env SOURCE_LANG)")
	f.StringVar(&opts.target, "target", "", "Target language code (env TARGET_LANG)")
	f.StringVar(&opts.translatorURL, "translator-url", "", "LibreTranslate base URL (env LIBRETRANSLATE_URL)")
	f.StringVar(&opts.cacheDSN, "cache-dsn", "", "Persistent translation memory: postgres://... or sqlite://path (env CACHE_DSN)")
	f.IntVar(&opts.cacheSize, "cache-size", 0, "In-memory cache capacity (env CACHE_CAPACITY)")
	f.StringVar(&opts.rules, "rules", "", "YAML file with extra correction rules (env RULES_FILE)")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	f.StringVar(&opts.logFile, "log-file", "", "Also write JSON logs to this rotated file (env LOG_FILE)")
	_ = cmd.MarkFlagRequired("mode")

	cmd.AddCommand(syncRulesCmd())
	return cmd
}

func syncRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-rules <rules.yaml>",
		Short: "Upload a YAML correction rules file into the Neo4j glossary",
		Long: `Replaces the correction rules stored in Neo4j for the target language with
the rules of the given file. Every later run connected to the same graph
(NEO4J_URI) applies them after the built-in and file rules.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSyncRules(args[0])
		},
	}
}

// applyFlags copies the flags the user set onto cfg.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("source") {
		cfg.SourceLang = opts.source
	}
	if f.Changed("target") {
		cfg.TargetLang = opts.target
	}
	if f.Changed("translator-url") {
		cfg.TranslatorURL = opts.translatorURL
	}
	if f.Changed("cache-dsn") {
		cfg.CacheDSN = opts.cacheDSN
	}
	if f.Changed("cache-size") {
		cfg.CacheCapacity = opts.cacheSize
	}
	if f.Changed("rules") {
		cfg.RulesFile = opts.rules
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if f.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
}

// setupLogging points the global logger at stderr and, when file is set, at a
// rotated JSON log file too. The returned closer flushes the file.
func setupLogging(level, file string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	console := zerolog.ConsoleWriter{Out: os.Stderr}
	if file == "" {
		log.Logger = log.Output(console)
		return nopCloser{}, nil
	}

	rotated := &lj.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
	log.Logger = log.Output(zerolog.MultiLevelWriter(console, rotated))
	return rotated, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

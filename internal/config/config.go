package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	TranslatorURL    string
	TranslatorAPIKey string
	SourceLang       string
	TargetLang       string
	TranslateTimeout time.Duration
	TranslateRetries int
	CacheCapacity    int
	CacheDSN         string
	RulesFile        string
	Neo4jURI         string
	Neo4jUser        string
	Neo4jPassword    string
	ScriptExt        string
	LogLevel         string
	LogFile          string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		TranslatorURL:    getEnv("LIBRETRANSLATE_URL", "http://localhost:5000"),
		TranslatorAPIKey: getEnv("LIBRETRANSLATE_API_KEY", ""),
		SourceLang:       getEnv("SOURCE_LANG", "en"),
		TargetLang:       getEnv("TARGET_LANG", "pb"),
		TranslateTimeout: getEnvDuration("TRANSLATE_TIMEOUT", 120*time.Second),
		TranslateRetries: getEnvInt("TRANSLATE_MAX_RETRIES", 3),
		CacheCapacity:    getEnvInt("CACHE_CAPACITY", 16384),
		CacheDSN:         getEnv("CACHE_DSN", ""),
		RulesFile:        getEnv("RULES_FILE", ""),
		Neo4jURI:         getEnv("NEO4J_URI", ""),
		Neo4jUser:        getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", "password"),
		ScriptExt:        getEnv("SCRIPT_EXT", ".rpy"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer, using default")
		return fallback
	}
	return n
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Warn().Str("key", key).Str("value", v).Msg("Invalid duration, using default")
	return fallback
}

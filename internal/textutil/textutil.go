package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Sentinel marks a line or paragraph that must never be translated.
const Sentinel = "EMPTYSTRING"

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsPassThrough reports whether s is returned untouched by translation:
// blank text or the sentinel value.
func IsPassThrough(s string) bool {
	return IsBlank(s) || s == Sentinel
}

// Hash computes a SHA-256 hex hash over the given parts, separated by NUL.
func Hash(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}

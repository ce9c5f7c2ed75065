package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// LibreClient handles translation requests via a LibreTranslate server,
// the HTTP front end of the Argos Translate engine.
type LibreClient struct {
	baseURL    string
	apiKey     string
	source     string
	target     string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

// LibreOptions configures a LibreClient.
type LibreOptions struct {
	BaseURL    string
	APIKey     string
	Source     string
	Target     string
	Timeout    time.Duration
	MaxRetries int
}

// NewLibreClient creates a new LibreTranslate client.
func NewLibreClient(opts LibreOptions) *LibreClient {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &LibreClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		source:     opts.Source,
		target:     opts.Target,
		maxRetries: opts.MaxRetries,
		backoff:    2 * time.Second,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// --- LibreTranslate API request/response types ---

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

type languageEntry struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Targets []string `json:"targets"`
}

// errRetryable marks failures worth another attempt (rate limit, server error, transport).
var errRetryable = errors.New("retryable")

// Translate sends one text to the server and returns the translation.
func (lc *LibreClient) Translate(ctx context.Context, text string) (string, error) {
	bodyBytes, err := json.Marshal(translateRequest{
		Q:      text,
		Source: lc.source,
		Target: lc.target,
		Format: "text",
		APIKey: lc.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("marshal translation request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < lc.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * lc.backoff
			log.Warn().Int("attempt", attempt+1).Dur("backoff", backoff).Msg("Retrying translation")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, err := lc.doRequest(ctx, bodyBytes)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// Don't retry on context cancellation or client errors.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !errors.Is(err, errRetryable) {
			return "", err
		}
	}

	return "", fmt.Errorf("translation failed after %d attempts: %w", lc.maxRetries, lastErr)
}

func (lc *LibreClient) doRequest(ctx context.Context, bodyBytes []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lc.baseURL+"/translate", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := lc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API call: %w (%w)", err, errRetryable)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w (%w)", err, errRetryable)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", fmt.Errorf("server error (status %d): %s (%w)", resp.StatusCode, apiMessage(respBody), errRetryable)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiMessage(respBody))
	}

	var apiResp translateResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if apiResp.Error != "" {
		return "", fmt.Errorf("API error: %s", apiResp.Error)
	}

	return apiResp.TranslatedText, nil
}

// CheckHealth verifies the server answers and serves the configured language pair.
func (lc *LibreClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lc.baseURL+"/languages", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := lc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reach translator at %s: %w", lc.baseURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read languages: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("list languages (status %d): %s", resp.StatusCode, apiMessage(respBody))
	}

	var langs []languageEntry
	if err := json.Unmarshal(respBody, &langs); err != nil {
		return fmt.Errorf("unmarshal languages: %w", err)
	}

	for _, l := range langs {
		if l.Code != lc.source {
			continue
		}
		if !slices.Contains(l.Targets, lc.target) {
			return fmt.Errorf("language package %q -> %q is not installed on the translator", lc.source, lc.target)
		}
		log.Info().Str("source", lc.source).Str("target", lc.target).Msg("Translator configured")
		return nil
	}
	return fmt.Errorf("source language %q is not installed on the translator", lc.source)
}

// apiMessage extracts the "error" field of a LibreTranslate error body.
func apiMessage(body []byte) string {
	var apiResp translateResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != "" {
		return apiResp.Error
	}
	return strings.TrimSpace(string(body))
}

package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultBaseURL is the public dictionary API instance.
	DefaultBaseURL = "https://dictionary-api.eliaschen.dev"

	lookupTimeout = 10 * time.Second
	maxExamples   = 3
)

// ErrNotFound indicates the dictionary has no entry for the word.
var ErrNotFound = errors.New("word not found in dictionary")

// WordInfo holds the structured dictionary result for one word.
type WordInfo struct {
	Word             string   // The looked-up word
	Transcription    string   // IPA transcription, e.g. "/əˈbjuːs/"
	PronunciationURL string   // URL of the pronunciation audio, if any
	Definition       string   // Primary sense text
	Examples         []string // Up to three example sentences
}

// Client is an HTTP client for the dictionary API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a dictionary client for the given API base URL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: lookupTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "dictionary",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Lookup fetches word information from the dictionary API. It returns
// ErrNotFound when the dictionary has no entry; any transport or server
// error counts towards the circuit breaker.
func (c *Client) Lookup(ctx context.Context, word string) (*WordInfo, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.lookup(ctx, word)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("dictionary unavailable: %w", err)
		}
		return nil, err
	}

	info, ok := result.(*WordInfo)
	if !ok || info == nil {
		// A 404 is a healthy answer from the API, so it is reported as a
		// breaker success and converted to ErrNotFound here.
		return nil, ErrNotFound
	}

	return info, nil
}

func (c *Client) lookup(ctx context.Context, word string) (*WordInfo, error) {
	reqURL := fmt.Sprintf("%s/api/dictionary/en/%s", c.baseURL, url.PathEscape(word))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return (*WordInfo)(nil), nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("dictionary API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return parseResponse(word, &apiResp), nil
}

// apiResponse mirrors the dictionary API JSON document.
type apiResponse struct {
	Pronunciation []apiPronunciation `json:"pronunciation"`
	Definition    []apiDefinition    `json:"definition"`
}

type apiPronunciation struct {
	Lang string `json:"lang"`
	URL  string `json:"url"`
	Pron string `json:"pron"`
}

type apiDefinition struct {
	Text    string       `json:"text"`
	Example []apiExample `json:"example"`
}

type apiExample struct {
	Text string `json:"text"`
}

// parseResponse extracts the fields a flashcard needs. US pronunciation is
// preferred; otherwise the first available entry is used. The primary sense
// is the first definition with its trailing colon stripped, and up to
// maxExamples example sentences are collected across all senses.
func parseResponse(word string, resp *apiResponse) *WordInfo {
	info := &WordInfo{Word: word}

	for _, pron := range resp.Pronunciation {
		if pron.Lang == "us" {
			info.PronunciationURL = pron.URL
			info.Transcription = pron.Pron
			break
		}
	}
	if info.PronunciationURL == "" && len(resp.Pronunciation) > 0 {
		info.PronunciationURL = resp.Pronunciation[0].URL
		info.Transcription = resp.Pronunciation[0].Pron
	}

	if len(resp.Definition) > 0 {
		text := strings.TrimSpace(resp.Definition[0].Text)
		info.Definition = strings.TrimRight(text, ":")
	}

	for _, def := range resp.Definition {
		for _, ex := range def.Example {
			text := strings.TrimSpace(ex.Text)
			if text != "" && len(info.Examples) < maxExamples {
				info.Examples = append(info.Examples, text)
			}
		}
	}

	return info
}

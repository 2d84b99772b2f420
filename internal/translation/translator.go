package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Translator translates English text into the configured target language.
type Translator interface {
	// Translate returns the translation of text, or an error. An error
	// degrades the card's translation field; it never fails the card.
	Translate(ctx context.Context, text string) (string, error)

	// Name returns the provider name for progress output.
	Name() string
}

// langNames maps ISO language codes to English names for provider prompts.
var langNames = map[string]string{
	"vi": "Vietnamese",
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

// LanguageName returns a human-readable name for a language code, falling
// back to the code itself for unknown languages.
func LanguageName(code string) string {
	if name, ok := langNames[code]; ok {
		return name
	}
	return code
}

const googleTranslateURL = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator uses the public Google translate endpoint. It needs no
// API key, which makes it the default provider.
type GoogleTranslator struct {
	endpoint   string
	targetLang string
	httpClient *http.Client
}

// NewGoogleTranslator creates a translator for the given target language
// code (e.g. "vi"). An empty endpoint selects the public Google endpoint.
func NewGoogleTranslator(endpoint, targetLang string) *GoogleTranslator {
	if endpoint == "" {
		endpoint = googleTranslateURL
	}

	return &GoogleTranslator{
		endpoint:   endpoint,
		targetLang: targetLang,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Translate translates English text to the target language.
func (g *GoogleTranslator) Translate(ctx context.Context, text string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "en")
	params.Set("tl", g.targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, "GET", g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API returned status %d", resp.StatusCode)
	}

	// The response is a nested JSON array; the translated sentence segments
	// live at [0][i][0].
	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translation response shape: %w", err)
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}

	translated := strings.TrimSpace(sb.String())
	if translated == "" {
		return "", fmt.Errorf("no translation returned")
	}

	return translated, nil
}

// Name returns the provider name.
func (g *GoogleTranslator) Name() string {
	return "google"
}

// Cache stores translations in memory for batch operations.
type Cache struct {
	translations map[string]string
}

// NewCache creates an empty translation cache.
func NewCache() *Cache {
	return &Cache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache.
func (c *Cache) Add(word, translation string) {
	c.translations[word] = translation
}

// Get retrieves a translation from the cache.
func (c *Cache) Get(word string) (string, bool) {
	translation, ok := c.translations[word]
	return translation, ok
}

// GetAll returns a copy of all cached translations.
func (c *Cache) GetAll() map[string]string {
	result := make(map[string]string)
	for k, v := range c.translations {
		result[k] = v
	}
	return result
}

package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

// GeminiTranslator translates via the Google Gemini API.
type GeminiTranslator struct {
	apiKey     string
	targetLang string
}

// NewGeminiTranslator creates a Gemini-backed translator for the given
// target language code.
func NewGeminiTranslator(apiKey, targetLang string) *GeminiTranslator {
	return &GeminiTranslator{
		apiKey:     apiKey,
		targetLang: targetLang,
	}
}

// Translate translates English text to the target language.
func (t *GeminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("Gemini API key not found")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  t.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := fmt.Sprintf("Translate the English word or phrase '%s' to %s. Respond with only the translation, nothing else.",
		text, LanguageName(t.targetLang))

	resp, err := client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", fmt.Errorf("no translation returned")
	}

	return translated, nil
}

// Name returns the provider name.
func (t *GeminiTranslator) Name() string {
	return "gemini"
}

package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranslator translates via an OpenAI chat completion. Useful where
// the public Google endpoint is blocked, or for better phrase handling.
type OpenAITranslator struct {
	apiKey     string
	targetLang string
	client     *openai.Client
}

// NewOpenAITranslator creates an OpenAI-backed translator for the given
// target language code.
func NewOpenAITranslator(apiKey, targetLang string) *OpenAITranslator {
	return &OpenAITranslator{
		apiKey:     apiKey,
		targetLang: targetLang,
		client:     openai.NewClient(apiKey),
	}
}

// Translate translates English text to the target language.
func (t *OpenAITranslator) Translate(ctx context.Context, text string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the English word or phrase '%s' to %s. Respond with only the translation, nothing else.",
					text, LanguageName(t.targetLang)),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the provider name.
func (t *OpenAITranslator) Name() string {
	return "openai"
}

package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/ankivocab/internal"
)

// OpenAIFetcher synthesizes pronunciation audio with the OpenAI TTS API.
// It serves as the fallback for words the dictionary has no recording for.
type OpenAIFetcher struct {
	apiKey string
	model  string
	voice  string
	client *openai.Client
}

// NewOpenAIFetcher creates a TTS fetcher. Empty model or voice select the
// defaults (tts-1, alloy).
func NewOpenAIFetcher(apiKey, model, voice string) *OpenAIFetcher {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}

	return &OpenAIFetcher{
		apiKey: apiKey,
		model:  model,
		voice:  voice,
		client: openai.NewClient(apiKey),
	}
}

// FetchAudio generates a spoken rendering of word into destDir and returns
// the bare file name. The pronunciationURL argument is ignored; this
// fetcher exists precisely for words without one.
func (f *OpenAIFetcher) FetchAudio(ctx context.Context, word, pronunciationURL, destDir string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key is required")
	}

	filename := internal.SanitizeFilename(word) + FileSuffix + ".mp3"
	outputPath := filepath.Join(destDir, filename)

	if _, err := os.Stat(outputPath); err == nil {
		fmt.Printf("  Sound file already exists: %s\n", filename)
		return filename, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create sounds directory: %w", err)
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(f.model),
		Input:          word,
		Voice:          openai.SpeechVoice(f.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	resp, err := f.client.CreateSpeech(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer resp.Close()

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("failed to write sound file: %w", err)
	}

	return filename, nil
}

// Name returns the fetcher name.
func (f *OpenAIFetcher) Name() string {
	return "openai-tts"
}

// IsAvailable checks that an API key is configured.
func (f *OpenAIFetcher) IsAvailable() error {
	if f.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

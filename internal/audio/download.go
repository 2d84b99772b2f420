package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/ankivocab/internal"
)

const downloadTimeout = 30 * time.Second

// Dictionary pronunciation hosts reject anonymous clients, so the download
// presents browser-like headers.
var downloadHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "audio/webm,audio/ogg,audio/wav,audio/*;q=0.9,application/ogg;q=0.7,video/*;q=0.6,*/*;q=0.5",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://dictionary.cambridge.org/",
}

// Downloader fetches pronunciation audio from the URL the dictionary API
// reports for a word.
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader creates a pronunciation audio downloader.
func NewDownloader() *Downloader {
	return &Downloader{
		httpClient: &http.Client{
			Timeout: downloadTimeout,
		},
	}
}

// FetchAudio downloads the pronunciation audio into destDir and returns the
// bare file name. Existing files are reused rather than re-downloaded.
func (d *Downloader) FetchAudio(ctx context.Context, word, pronunciationURL, destDir string) (string, error) {
	if pronunciationURL == "" {
		return "", ErrNoPronunciation
	}

	filename := internal.SanitizeFilename(word) + FileSuffix + audioExtension(pronunciationURL)
	outputPath := filepath.Join(destDir, filename)

	if _, err := os.Stat(outputPath); err == nil {
		fmt.Printf("  Sound file already exists: %s\n", filename)
		return filename, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create sounds directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pronunciationURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	for key, value := range downloadHeaders {
		req.Header.Set(key, value)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("failed to write sound file: %w", err)
	}

	return filename, nil
}

// Name returns the fetcher name.
func (d *Downloader) Name() string {
	return "dictionary"
}

// IsAvailable always succeeds; availability depends on the per-word URL.
func (d *Downloader) IsAvailable() error {
	return nil
}

// audioExtension sniffs the audio file extension from a URL, defaulting to
// .mp3 when the URL gives no hint.
func audioExtension(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, ".mp3"):
		return ".mp3"
	case strings.Contains(lower, ".wav"):
		return ".wav"
	case strings.Contains(lower, ".ogg"):
		return ".ogg"
	}
	return ".mp3"
}

package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/ankivocab/internal"
)

// FileSuffix marks files produced by this tool, matching the audio naming.
const FileSuffix = "_auto_tool"

// ErrNoImages indicates the provider found nothing for the query.
var ErrNoImages = errors.New("no images found")

// DownloadOptions configures image download behavior.
type DownloadOptions struct {
	MaxSizeBytes int64         // Maximum file size to download (0 = no limit)
	MaxRetries   int           // Retry attempts after a rate limit response
	RetryDelay   time.Duration // Initial backoff delay, doubled per attempt
}

// DefaultDownloadOptions returns sensible defaults for flashcard images.
func DefaultDownloadOptions() *DownloadOptions {
	return &DownloadOptions{
		MaxSizeBytes: 10 * 1024 * 1024, // 10MB
		MaxRetries:   3,
		RetryDelay:   2 * time.Second,
	}
}

// Downloader searches a provider and stores the best matching image per
// word.
type Downloader struct {
	searcher Searcher
	options  *DownloadOptions
}

// NewDownloader creates an image downloader on top of a search provider.
func NewDownloader(searcher Searcher, options *DownloadOptions) *Downloader {
	if options == nil {
		options = DefaultDownloadOptions()
	}
	return &Downloader{
		searcher: searcher,
		options:  options,
	}
}

// FetchImage finds an image for word and downloads it into destDir,
// returning the bare file name. Rate limit responses are retried with
// exponential backoff; existing files are reused.
func (d *Downloader) FetchImage(ctx context.Context, word, destDir string) (string, error) {
	result, err := d.searchWithRetry(ctx, word)
	if err != nil {
		return "", err
	}

	filename := internal.SanitizeFilename(word) + FileSuffix + imageExtension(result.URL)
	outputPath := filepath.Join(destDir, filename)

	if _, err := os.Stat(outputPath); err == nil {
		fmt.Printf("  Image already exists: %s\n", filename)
		return filename, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	if err := d.downloadTo(ctx, result.URL, outputPath); err != nil {
		return "", err
	}

	return filename, nil
}

func (d *Downloader) searchWithRetry(ctx context.Context, word string) (*SearchResult, error) {
	opts := DefaultSearchOptions(word)

	delay := d.options.RetryDelay
	for attempt := 0; ; attempt++ {
		results, err := d.searcher.Search(ctx, opts)
		if err != nil {
			var rateErr *RateLimitError
			if errors.As(err, &rateErr) && attempt < d.options.MaxRetries {
				fmt.Printf("  Rate limit hit for '%s'. Waiting %s before retry (%d/%d)...\n",
					word, delay, attempt+1, d.options.MaxRetries)
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				delay *= 2
				continue
			}
			return nil, fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			return nil, fmt.Errorf("%w for query: %s", ErrNoImages, word)
		}
		return &results[0], nil
	}
}

func (d *Downloader) downloadTo(ctx context.Context, imageURL, outputPath string) error {
	reader, err := d.searcher.Download(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer reader.Close()

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if d.options.MaxSizeBytes > 0 {
		written, err := io.CopyN(file, reader, d.options.MaxSizeBytes)
		if err != nil && err != io.EOF {
			os.Remove(outputPath)
			return fmt.Errorf("failed to write file: %w", err)
		}
		if written == d.options.MaxSizeBytes {
			if _, err := reader.Read(make([]byte, 1)); err != io.EOF {
				os.Remove(outputPath)
				return fmt.Errorf("image exceeds maximum size of %d bytes", d.options.MaxSizeBytes)
			}
		}
		return nil
	}

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// imageExtension sniffs the image file extension from a URL, defaulting to
// .jpg when the URL gives no hint.
func imageExtension(imageURL string) string {
	lower := strings.ToLower(imageURL)
	if idx := strings.IndexByte(lower, '?'); idx >= 0 {
		lower = lower[:idx]
	}

	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return ".jpg"
	case strings.HasSuffix(lower, ".png"):
		return ".png"
	case strings.HasSuffix(lower, ".webp"):
		return ".webp"
	}
	return ".jpg"
}

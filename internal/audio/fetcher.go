package audio

import (
	"context"
	"errors"
	"fmt"
)

// FileSuffix marks files produced by this tool so manually curated media in
// the same directory is recognizable.
const FileSuffix = "_auto_tool"

// ErrNoPronunciation indicates the dictionary reported no audio URL for the
// word, so there is nothing to download.
var ErrNoPronunciation = errors.New("no pronunciation URL available")

// Fetcher obtains a pronunciation sound file for a word.
type Fetcher interface {
	// FetchAudio stores a sound file for word in destDir and returns the
	// bare file name. pronunciationURL may be empty; fetchers that require
	// it return ErrNoPronunciation.
	FetchAudio(ctx context.Context, word, pronunciationURL, destDir string) (string, error)

	// Name returns the fetcher name for progress output.
	Name() string

	// IsAvailable checks whether the fetcher is configured and usable.
	IsAvailable() error
}

// FetcherWithFallback tries a primary fetcher and falls back to a secondary
// one on any error.
type FetcherWithFallback struct {
	primary  Fetcher
	fallback Fetcher
}

// NewFetcherWithFallback chains two fetchers.
func NewFetcherWithFallback(primary, fallback Fetcher) Fetcher {
	return &FetcherWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// FetchAudio tries the primary fetcher first, then the fallback.
func (f *FetcherWithFallback) FetchAudio(ctx context.Context, word, pronunciationURL, destDir string) (string, error) {
	filename, err := f.primary.FetchAudio(ctx, word, pronunciationURL, destDir)
	if err == nil {
		return filename, nil
	}

	if !errors.Is(err, ErrNoPronunciation) {
		fmt.Printf("  Primary audio fetcher (%s) failed: %v. Falling back to %s\n",
			f.primary.Name(), err, f.fallback.Name())
	}

	return f.fallback.FetchAudio(ctx, word, pronunciationURL, destDir)
}

// Name returns the combined fetcher name.
func (f *FetcherWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", f.primary.Name(), f.fallback.Name())
}

// IsAvailable reports whether at least one chained fetcher is usable.
func (f *FetcherWithFallback) IsAvailable() error {
	primaryErr := f.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := f.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both fetchers unavailable: primary=%v, fallback=%v", primaryErr, fallbackErr)
}

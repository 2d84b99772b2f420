package image

import (
	"context"
	"io"
	"time"
)

// SearchResult represents a single image search result.
type SearchResult struct {
	ID          string // Unique identifier at the provider
	URL         string // Direct URL to the image
	Width       int    // Image width in pixels
	Height      int    // Image height in pixels
	Description string // Image description or tags
	Source      string // Source provider ("pexels", "pixabay")
}

// SearchOptions configures an image search.
type SearchOptions struct {
	Query       string // Search query (the English keyword)
	SafeSearch  bool   // Enable safe search filtering
	PerPage     int    // Number of results per page
	Page        int    // Page number (1-based)
	Orientation string // "square", "landscape", "portrait" or ""
}

// DefaultSearchOptions returns the defaults used for flashcard images: one
// square photo per word.
func DefaultSearchOptions(query string) *SearchOptions {
	return &SearchOptions{
		Query:       query,
		SafeSearch:  true,
		PerPage:     1,
		Page:        1,
		Orientation: "square",
	}
}

// Searcher defines the interface for image search providers.
type Searcher interface {
	// Search performs an image search with the given options.
	Search(ctx context.Context, opts *SearchOptions) ([]SearchResult, error)

	// Download downloads an image from the given URL.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// Name returns the name of the search provider.
	Name() string
}

// SearchError represents an error from an image search provider.
type SearchError struct {
	Provider string
	Code     string
	Message  string
}

func (e *SearchError) Error() string {
	return e.Provider + ": " + e.Message
}

// RateLimitError indicates that the provider's API rate limit was exceeded.
type RateLimitError struct {
	Provider   string
	RetryAfter int // Seconds to wait before retry
}

func (e *RateLimitError) Error() string {
	return e.Provider + ": rate limit exceeded"
}

// rateLimiter spreads requests out so providers with per-minute quotas are
// not hammered during large batches.
type rateLimiter struct {
	requestsPerMinute int
	requests          []time.Time
}

func newRateLimiter(rpm int) *rateLimiter {
	return &rateLimiter{
		requestsPerMinute: rpm,
		requests:          make([]time.Time, 0, rpm),
	}
}

func (rl *rateLimiter) wait() {
	now := time.Now()

	cutoff := now.Add(-1 * time.Minute)
	i := 0
	for i < len(rl.requests) && rl.requests[i].Before(cutoff) {
		i++
	}
	rl.requests = rl.requests[i:]

	if len(rl.requests) >= rl.requestsPerMinute {
		oldest := rl.requests[0]
		if waitDuration := oldest.Add(1 * time.Minute).Sub(now); waitDuration > 0 {
			time.Sleep(waitDuration)
		}
	}

	rl.requests = append(rl.requests, now)
}

package image

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	pixabayAPIURL  = "https://pixabay.com/api/"
	pixabayTimeout = 10 * time.Second
)

// PixabayClient implements Searcher for the Pixabay API, available as an
// alternative to Pexels via --image-api pixabay.
type PixabayClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	rateLimit  *rateLimiter
}

// pixabayResponse represents the API response structure.
type pixabayResponse struct {
	Total     int            `json:"total"`
	TotalHits int            `json:"totalHits"`
	Hits      []pixabayImage `json:"hits"`
}

// pixabayImage represents a single image in the response.
type pixabayImage struct {
	ID              int    `json:"id"`
	Tags            string `json:"tags"`
	PreviewURL      string `json:"previewURL"`
	WebformatURL    string `json:"webformatURL"`
	WebformatWidth  int    `json:"webformatWidth"`
	WebformatHeight int    `json:"webformatHeight"`
	LargeImageURL   string `json:"largeImageURL"`
}

// NewPixabayClient creates a new Pixabay API client.
func NewPixabayClient(apiKey string) *PixabayClient {
	return &PixabayClient{
		apiKey:  apiKey,
		baseURL: pixabayAPIURL,
		httpClient: &http.Client{
			Timeout: pixabayTimeout,
		},
		rateLimit: newRateLimiter(100), // 100 requests per minute
	}
}

// Search performs an image search on Pixabay.
func (p *PixabayClient) Search(ctx context.Context, opts *SearchOptions) ([]SearchResult, error) {
	if p.apiKey == "" {
		return nil, &SearchError{
			Provider: "pixabay",
			Code:     "no_key",
			Message:  "API key not configured",
		}
	}

	p.rateLimit.wait()

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("q", opts.Query)
	params.Set("lang", "en")
	params.Set("image_type", "photo")
	params.Set("safesearch", strconv.FormatBool(opts.SafeSearch))
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("page", strconv.Itoa(opts.Page))
	// Pixabay has no square orientation, so only the axis-aligned ones map
	switch opts.Orientation {
	case "landscape":
		params.Set("orientation", "horizontal")
	case "portrait":
		params.Set("orientation", "vertical")
	}

	reqURL := p.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			Provider:   "pixabay",
			RetryAfter: 60,
		}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &SearchError{
			Provider: "pixabay",
			Code:     strconv.Itoa(resp.StatusCode),
			Message:  string(body),
		}
	}

	var pixResp pixabayResponse
	if err := json.NewDecoder(resp.Body).Decode(&pixResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]SearchResult, 0, len(pixResp.Hits))
	for _, hit := range pixResp.Hits {
		results = append(results, SearchResult{
			ID:          strconv.Itoa(hit.ID),
			URL:         hit.WebformatURL,
			Width:       hit.WebformatWidth,
			Height:      hit.WebformatHeight,
			Description: hit.Tags,
			Source:      "pixabay",
		})
	}

	return results, nil
}

// Download downloads an image from the given URL.
func (p *PixabayClient) Download(ctx context.Context, imageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// Name returns the name of the search provider.
func (p *PixabayClient) Name() string {
	return "pixabay"
}

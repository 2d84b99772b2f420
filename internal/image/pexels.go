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
	pexelsAPIURL  = "https://api.pexels.com/v1"
	pexelsTimeout = 10 * time.Second
)

// PexelsClient implements Searcher for the Pexels API.
type PexelsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	rateLimit  *rateLimiter
}

// pexelsResponse represents the search API response.
type pexelsResponse struct {
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	TotalResults int           `json:"total_results"`
	Photos       []pexelsPhoto `json:"photos"`
}

// pexelsPhoto represents a single photo in the response.
type pexelsPhoto struct {
	ID           int             `json:"id"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	URL          string          `json:"url"`
	Photographer string          `json:"photographer"`
	Alt          string          `json:"alt"`
	Src          pexelsPhotoSrcs `json:"src"`
}

// pexelsPhotoSrcs contains the size variants of a photo.
type pexelsPhotoSrcs struct {
	Original  string `json:"original"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// NewPexelsClient creates a new Pexels API client.
func NewPexelsClient(apiKey string) *PexelsClient {
	return &PexelsClient{
		apiKey:  apiKey,
		baseURL: pexelsAPIURL,
		httpClient: &http.Client{
			Timeout: pexelsTimeout,
		},
		rateLimit: newRateLimiter(180), // 200/hour plan, keep headroom
	}
}

// Search performs an image search on Pexels.
func (p *PexelsClient) Search(ctx context.Context, opts *SearchOptions) ([]SearchResult, error) {
	if p.apiKey == "" {
		return nil, &SearchError{
			Provider: "pexels",
			Code:     "no_key",
			Message:  "API key not configured",
		}
	}

	p.rateLimit.wait()

	params := url.Values{}
	params.Set("query", opts.Query)
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("page", strconv.Itoa(opts.Page))
	if opts.Orientation != "" {
		params.Set("orientation", opts.Orientation)
	}

	reqURL := p.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := 60
		if header := resp.Header.Get("Retry-After"); header != "" {
			if parsed, err := strconv.Atoi(header); err == nil {
				retryAfter = parsed
			}
		}
		return nil, &RateLimitError{
			Provider:   "pexels",
			RetryAfter: retryAfter,
		}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &SearchError{
			Provider: "pexels",
			Code:     strconv.Itoa(resp.StatusCode),
			Message:  string(body),
		}
	}

	var pexResp pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&pexResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]SearchResult, 0, len(pexResp.Photos))
	for _, photo := range pexResp.Photos {
		results = append(results, SearchResult{
			ID:          strconv.Itoa(photo.ID),
			URL:         photo.Src.Medium,
			Width:       photo.Width,
			Height:      photo.Height,
			Description: photo.Alt,
			Source:      "pexels",
		})
	}

	return results, nil
}

// Download downloads an image from the given URL.
func (p *PexelsClient) Download(ctx context.Context, imageURL string) (io.ReadCloser, error) {
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
func (p *PexelsClient) Name() string {
	return "pexels"
}

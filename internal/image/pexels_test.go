package image

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const pexelsSearchResponse = `{
	"page": 1,
	"per_page": 1,
	"total_results": 241,
	"photos": [
		{
			"id": 12345,
			"width": 4000,
			"height": 4000,
			"url": "https://www.pexels.com/photo/12345/",
			"photographer": "Jane Doe",
			"alt": "Water being absorbed by a sponge",
			"src": {
				"original": "https://images.pexels.com/photos/12345/original.jpg",
				"medium": "https://images.pexels.com/photos/12345/medium.jpg?h=350"
			}
		}
	]
}`

func TestPexelsClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("Expected Authorization header 'test-key', got %q", got)
		}
		query := r.URL.Query()
		if got := query.Get("query"); got != "absorb" {
			t.Errorf("Expected query 'absorb', got %q", got)
		}
		if got := query.Get("per_page"); got != "1" {
			t.Errorf("Expected per_page '1', got %q", got)
		}
		if got := query.Get("orientation"); got != "square" {
			t.Errorf("Expected orientation 'square', got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pexelsSearchResponse))
	}))
	defer server.Close()

	client := NewPexelsClient("test-key")
	client.baseURL = server.URL

	results, err := client.Search(context.Background(), DefaultSearchOptions("absorb"))
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}

	result := results[0]
	if result.ID != "12345" {
		t.Errorf("Expected ID '12345', got %q", result.ID)
	}
	if result.URL != "https://images.pexels.com/photos/12345/medium.jpg?h=350" {
		t.Errorf("Expected medium src URL, got %q", result.URL)
	}
	if result.Source != "pexels" {
		t.Errorf("Expected source 'pexels', got %q", result.Source)
	}
}

func TestPexelsClient_Search_NoKey(t *testing.T) {
	client := NewPexelsClient("")

	_, err := client.Search(context.Background(), DefaultSearchOptions("absorb"))

	var searchErr *SearchError
	if !errors.As(err, &searchErr) {
		t.Fatalf("Expected SearchError, got %v", err)
	}
	if searchErr.Provider != "pexels" {
		t.Errorf("Expected provider 'pexels', got %q", searchErr.Provider)
	}
}

func TestPexelsClient_Search_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewPexelsClient("test-key")
	client.baseURL = server.URL

	_, err := client.Search(context.Background(), DefaultSearchOptions("absorb"))

	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("Expected RateLimitError, got %v", err)
	}
	if rateErr.RetryAfter != 120 {
		t.Errorf("Expected RetryAfter 120, got %d", rateErr.RetryAfter)
	}
}

func TestPixabayClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("key"); got != "pix-key" {
			t.Errorf("Expected key 'pix-key', got %q", got)
		}
		if got := query.Get("q"); got != "absorb" {
			t.Errorf("Expected q 'absorb', got %q", got)
		}
		if got := query.Get("safesearch"); got != "true" {
			t.Errorf("Expected safesearch 'true', got %q", got)
		}
		w.Write([]byte(`{"total": 1, "totalHits": 1, "hits": [
			{"id": 99, "tags": "sponge, water", "webformatURL": "https://cdn.pixabay.com/photo/99_640.jpg",
			 "webformatWidth": 640, "webformatHeight": 480}
		]}`))
	}))
	defer server.Close()

	client := NewPixabayClient("pix-key")
	client.baseURL = server.URL

	results, err := client.Search(context.Background(), DefaultSearchOptions("absorb"))
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Source != "pixabay" {
		t.Errorf("Expected source 'pixabay', got %q", results[0].Source)
	}
	if results[0].URL != "https://cdn.pixabay.com/photo/99_640.jpg" {
		t.Errorf("Unexpected URL %q", results[0].URL)
	}
}

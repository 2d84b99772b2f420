package dictionary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const abuseResponse = `{
	"pronunciation": [
		{"lang": "uk", "url": "https://example.com/uk/abuse.mp3", "pron": "/əˈbjuːz/"},
		{"lang": "us", "url": "https://example.com/us/abuse.mp3", "pron": "/əˈbjuːs/"}
	],
	"definition": [
		{
			"text": "to use something for the wrong purpose:",
			"example": [
				{"text": "He abused his power."},
				{"text": "She was abused as a child."}
			]
		},
		{
			"text": "to treat someone cruelly",
			"example": [
				{"text": "Several prisoners were abused."},
				{"text": "A fourth example that must be dropped."}
			]
		}
	]
}`

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("")
	if client.baseURL != DefaultBaseURL {
		t.Errorf("Expected base URL %q, got %q", DefaultBaseURL, client.baseURL)
	}

	client = NewClient("http://localhost:3000/")
	if client.baseURL != "http://localhost:3000" {
		t.Errorf("Expected trailing slash stripped, got %q", client.baseURL)
	}
}

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dictionary/en/abuse" {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(abuseResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	info, err := client.Lookup(context.Background(), "abuse")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}

	if info.Word != "abuse" {
		t.Errorf("Expected word 'abuse', got %q", info.Word)
	}

	// US pronunciation preferred over the UK entry listed first
	if info.Transcription != "/əˈbjuːs/" {
		t.Errorf("Expected US transcription, got %q", info.Transcription)
	}
	if info.PronunciationURL != "https://example.com/us/abuse.mp3" {
		t.Errorf("Expected US pronunciation URL, got %q", info.PronunciationURL)
	}

	// Trailing colon stripped from the primary sense
	if info.Definition != "to use something for the wrong purpose" {
		t.Errorf("Unexpected definition: %q", info.Definition)
	}

	expected := []string{
		"He abused his power.",
		"She was abused as a child.",
		"Several prisoners were abused.",
	}
	if !reflect.DeepEqual(info.Examples, expected) {
		t.Errorf("Examples = %v, want %v", info.Examples, expected)
	}
}

func TestLookup_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Lookup(context.Background(), "qzxv")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLookup_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Lookup(context.Background(), "abuse")
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Server errors must not be reported as ErrNotFound")
	}
}

func TestLookup_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := client.Lookup(ctx, "abuse"); err == nil {
			t.Fatal("Expected error from failing server")
		}
	}

	// Once the breaker is open the later lookups never reach the server.
	if requests >= 10 {
		t.Errorf("Expected circuit breaker to stop requests, server saw %d", requests)
	}
}

func TestLookup_NotFoundDoesNotTripBreaker(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := client.Lookup(ctx, "qzxv"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Lookup %d: expected ErrNotFound, got %v", i+1, err)
		}
	}

	if requests != 10 {
		t.Errorf("Expected all 10 lookups to reach the server, got %d", requests)
	}
}

func TestParseResponse_Empty(t *testing.T) {
	info := parseResponse("ghost", &apiResponse{})

	if info.Word != "ghost" {
		t.Errorf("Expected word 'ghost', got %q", info.Word)
	}
	if info.Transcription != "" || info.PronunciationURL != "" || info.Definition != "" {
		t.Error("Expected empty fields for empty API response")
	}
	if len(info.Examples) != 0 {
		t.Errorf("Expected no examples, got %v", info.Examples)
	}
}

func TestParseResponse_FallbackPronunciation(t *testing.T) {
	resp := &apiResponse{
		Pronunciation: []apiPronunciation{
			{Lang: "uk", URL: "https://example.com/uk.mp3", Pron: "/ʌk/"},
		},
	}

	info := parseResponse("word", resp)
	if info.PronunciationURL != "https://example.com/uk.mp3" {
		t.Errorf("Expected fallback to first pronunciation, got %q", info.PronunciationURL)
	}
	if info.Transcription != "/ʌk/" {
		t.Errorf("Expected fallback transcription, got %q", info.Transcription)
	}
}

package anki

import (
	"archive/zip"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/ankivocab/internal/testutil"
)

func TestSoundFileName(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"[sound:abuse_auto_tool.mp3]", "abuse_auto_tool.mp3"},
		{"", ""},
		{"abuse_auto_tool.mp3", ""},
	}
	for _, tt := range tests {
		if got := SoundFileName(tt.field); got != tt.want {
			t.Errorf("SoundFileName(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestImageFileName(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{`<img src="abuse_auto_tool.jpg">`, "abuse_auto_tool.jpg"},
		{"", ""},
		{"abuse_auto_tool.jpg", ""},
	}
	for _, tt := range tests {
		if got := ImageFileName(tt.field); got != tt.want {
			t.Errorf("ImageFileName(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestGenerateAPKG(t *testing.T) {
	tempDir := t.TempDir()
	soundsDir := filepath.Join(tempDir, "sounds")
	imagesDir := filepath.Join(tempDir, "images")
	testutil.CreateTestMediaFiles(t, soundsDir, imagesDir, "abuse")

	generator := NewAPKGGenerator("Test Deck", soundsDir, imagesDir)
	generator.AddCard(Card{
		No:         1,
		Image:      `<img src="abuse_auto_tool.jpg">`,
		Vietnamese: "lạm dụng",
		Suggestion: "_ b _ s _",
		Keyword:    "abuse",
		Sound:      "[sound:abuse_auto_tool.mp3]",
	})
	generator.AddCard(Card{
		No:         2,
		Keyword:    "acquire",
		Suggestion: "_ c _ u _ r _",
	})

	outputPath := filepath.Join(tempDir, "deck.apkg")
	if err := generator.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG() error = %v", err)
	}
	testutil.AssertFileExists(t, outputPath)

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	defer reader.Close()

	files := make(map[string]bool)
	for _, f := range reader.File {
		files[f.Name] = true
	}

	for _, want := range []string{"collection.anki2", "media", "0", "1"} {
		if !files[want] {
			t.Errorf("package missing file %q, have %v", want, files)
		}
	}

	// The media file maps package numbers back to original names
	var mapping map[string]string
	for _, f := range reader.File {
		if f.Name != "media" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal(data, &mapping); err != nil {
			t.Fatalf("media mapping is not JSON: %v", err)
		}
	}

	found := make(map[string]bool)
	for _, name := range mapping {
		found[name] = true
	}
	if !found["abuse_auto_tool.mp3"] || !found["abuse_auto_tool.jpg"] {
		t.Errorf("media mapping missing entries: %v", mapping)
	}
}

func TestGenerateAPKG_MissingMediaSkipped(t *testing.T) {
	tempDir := t.TempDir()

	generator := NewAPKGGenerator("Test Deck",
		filepath.Join(tempDir, "sounds"), filepath.Join(tempDir, "images"))
	generator.AddCard(Card{
		No:      1,
		Keyword: "abuse",
		Sound:   "[sound:abuse_auto_tool.mp3]",
	})

	outputPath := filepath.Join(tempDir, "deck.apkg")
	if err := generator.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG() with missing media error = %v", err)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	defer reader.Close()

	for _, f := range reader.File {
		if f.Name == "0" {
			t.Error("missing media file should not be bundled")
		}
	}
}

package anki

import (
	"strings"
	"testing"
)

func TestFormatImageField(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{
			name:     "simple image",
			fileName: "abuse_auto_tool.jpg",
			want:     `<img src="abuse_auto_tool.jpg">`,
		},
		{
			name:     "empty filename",
			fileName: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatImageField(tt.fileName)
			if got != tt.want {
				t.Errorf("FormatImageField(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestFormatSoundField(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{
			name:     "simple sound",
			fileName: "abuse_auto_tool.mp3",
			want:     "[sound:abuse_auto_tool.mp3]",
		},
		{
			name:     "empty filename",
			fileName: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSoundField(tt.fileName)
			if got != tt.want {
				t.Errorf("FormatSoundField(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestFormatExplanation(t *testing.T) {
	tests := []struct {
		name       string
		keyword    string
		definition string
		want       string
	}{
		{
			name:       "keyword and definition",
			keyword:    "abuse",
			definition: "to use something for the wrong purpose",
			want:       "{{c1::abuse}} - to use something for the wrong purpose",
		},
		{
			name:       "empty definition yields empty field",
			keyword:    "abuse",
			definition: "",
			want:       "",
		},
		{
			name:       "phrase keyword",
			keyword:    "give up",
			definition: "to stop trying",
			want:       "{{c1::give up}} - to stop trying",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatExplanation(tt.keyword, tt.definition)
			if got != tt.want {
				t.Errorf("FormatExplanation(%q, %q) = %q, want %q", tt.keyword, tt.definition, got, tt.want)
			}
		})
	}
}

func TestFormatExamples(t *testing.T) {
	tests := []struct {
		name     string
		examples []string
		want     string
	}{
		{
			name:     "no examples",
			examples: nil,
			want:     "",
		},
		{
			name:     "single example",
			examples: []string{"He absorbed the information quickly."},
			want:     "- He absorbed the information quickly.",
		},
		{
			name: "multiple examples joined with br",
			examples: []string{
				"He absorbed the information quickly.",
				"Plants absorb water through their roots.",
			},
			want: "- He absorbed the information quickly.<br>- Plants absorb water through their roots.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatExamples(tt.examples)
			if got != tt.want {
				t.Errorf("FormatExamples(%v) = %q, want %q", tt.examples, got, tt.want)
			}
		})
	}
}

func TestFormatExamples_SeparatorCount(t *testing.T) {
	examples := []string{"one", "two", "three"}
	got := FormatExamples(examples)
	if n := strings.Count(got, "<br>"); n != 2 {
		t.Errorf("expected 2 <br> separators, got %d in %q", n, got)
	}
}

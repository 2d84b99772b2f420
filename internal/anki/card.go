package anki

import "fmt"

// Card is one generated flashcard. Field order mirrors the output CSV.
type Card struct {
	No            int    // 1-based sequential card number
	Image         string // <img src="..."> tag, or empty
	Vietnamese    string // Translation (provided or fetched)
	Suggestion    string // Cloze-style recall hint
	Keyword       string // The English word, verbatim from input
	Transcription string // IPA transcription, or empty
	Explanation   string // {{c1::keyword}} - definition, or empty
	Sound         string // [sound:...] reference, or empty
	Example       string // "- sentence" bullets joined with <br>, or empty
}

// Header is the fixed output CSV column order.
var Header = []string{"No", "Image", "Vietnamese", "Suggestion", "Keyword", "Transcription", "Explanation", "Sound", "Example"}

// FormatImageField wraps an image file name in the HTML tag Anki renders.
// An empty file name yields an empty field.
func FormatImageField(imageFile string) string {
	if imageFile == "" {
		return ""
	}
	return fmt.Sprintf(`<img src="%s">`, imageFile)
}

// FormatSoundField wraps a sound file name in Anki's audio reference
// syntax. An empty file name yields an empty field.
func FormatSoundField(soundFile string) string {
	if soundFile == "" {
		return ""
	}
	return fmt.Sprintf("[sound:%s]", soundFile)
}

// FormatExplanation builds the cloze-wrapped definition so the keyword is
// hidden during review. An empty definition yields an empty field.
func FormatExplanation(keyword, definition string) string {
	if definition == "" {
		return ""
	}
	return fmt.Sprintf("{{c1::%s}} - %s", keyword, definition)
}

// FormatExamples renders example sentences as a bullet list. Sentences are
// joined with <br> rather than newlines because the destination is a single
// CSV cell rendered as HTML by Anki.
func FormatExamples(examples []string) string {
	result := ""
	for i, example := range examples {
		if i > 0 {
			result += "<br>"
		}
		result += "- " + example
	}
	return result
}

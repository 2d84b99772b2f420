package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Writer persists cards as an Anki-importable CSV file.
type Writer struct {
	outputPath string
}

// NewWriter creates a CSV writer for the given output path. Parent
// directories are created on write.
func NewWriter(outputPath string) *Writer {
	return &Writer{outputPath: outputPath}
}

// WriteCards writes all cards with a header row. Cells containing commas,
// line breaks or HTML markup are quoted by the csv package.
func (w *Writer) WriteCards(cards []Card) error {
	if dir := filepath.Dir(w.outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(w.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, card := range cards {
		record := []string{
			strconv.Itoa(card.No),
			card.Image,
			card.Vietnamese,
			card.Suggestion,
			card.Keyword,
			card.Transcription,
			card.Explanation,
			card.Sound,
			card.Example,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card %d: %w", card.No, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %w", err)
	}

	return nil
}

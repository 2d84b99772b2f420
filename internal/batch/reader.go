package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// WordEntry represents one input row: an English keyword plus an optional
// translation that, when present, is used as-is instead of calling the
// translation service.
type WordEntry struct {
	Keyword    string
	Vietnamese string
}

// ReadInputCSV reads word entries from a CSV file. The file must have a
// header row containing a "Keyword" column; a "Vietnamese" column is
// optional. Header matching is case-insensitive and other columns are
// ignored. Rows are returned in file order, including rows with an empty
// keyword, so callers can report them.
func ReadInputCSV(filename string) ([]WordEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Input files from spreadsheets often have ragged rows
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input file is empty: %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	keywordCol := -1
	vietnameseCol := -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "keyword":
			keywordCol = i
		case "vietnamese":
			vietnameseCol = i
		}
	}
	if keywordCol == -1 {
		return nil, fmt.Errorf("input file has no Keyword column: %s", filename)
	}

	var entries []WordEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input row: %w", err)
		}

		entry := WordEntry{}
		if keywordCol < len(record) {
			entry.Keyword = strings.TrimSpace(record[keywordCol])
		}
		if vietnameseCol != -1 && vietnameseCol < len(record) {
			entry.Vietnamese = strings.TrimSpace(record[vietnameseCol])
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

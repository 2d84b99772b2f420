// Package archive moves previous output files aside before a new run.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveOutput moves the output directory to an archive with timestamp
func ArchiveOutput(outputDir string) error {
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", outputDir)
	}

	parentDir := filepath.Dir(outputDir)
	archiveDir := filepath.Join(parentDir, "archive")

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archiveName := fmt.Sprintf("%s-%s", filepath.Base(outputDir), timestamp)
	archivePath := filepath.Join(archiveDir, archiveName)

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		archiveName = fmt.Sprintf("%s-%s", filepath.Base(outputDir), timestamp)
		archivePath = filepath.Join(archiveDir, archiveName)
	}

	if err := os.Rename(outputDir, archivePath); err != nil {
		return fmt.Errorf("failed to archive output directory: %w", err)
	}

	fmt.Printf("Output directory archived to: %s\n", archivePath)
	return nil
}

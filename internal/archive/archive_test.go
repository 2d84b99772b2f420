package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArchiveOutput(t *testing.T) {
	tmpDir := t.TempDir()

	outputDir := filepath.Join(tmpDir, "output")
	if err := os.MkdirAll(filepath.Join(outputDir, "sounds"), 0755); err != nil {
		t.Fatalf("Failed to create output directory: %v", err)
	}

	csvFile := filepath.Join(outputDir, "output.csv")
	if err := os.WriteFile(csvFile, []byte("No,Image\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	soundFile := filepath.Join(outputDir, "sounds", "abuse_auto_tool.mp3")
	if err := os.WriteFile(soundFile, []byte("mp3"), 0644); err != nil {
		t.Fatalf("Failed to create sound file: %v", err)
	}

	if err := ArchiveOutput(outputDir); err != nil {
		t.Fatalf("ArchiveOutput failed: %v", err)
	}

	// Check that output directory no longer exists
	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Error("Output directory still exists after archiving")
	}

	archiveDir := filepath.Join(tmpDir, "archive")
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry in archive directory, got %d", len(entries))
	}

	archivedName := entries[0].Name()
	if !strings.HasPrefix(archivedName, "output-") {
		t.Errorf("Archived directory name doesn't start with 'output-': %s", archivedName)
	}

	archivedPath := filepath.Join(archiveDir, archivedName)
	if _, err := os.Stat(filepath.Join(archivedPath, "output.csv")); os.IsNotExist(err) {
		t.Error("CSV file not found in archive")
	}
	if _, err := os.Stat(filepath.Join(archivedPath, "sounds", "abuse_auto_tool.mp3")); os.IsNotExist(err) {
		t.Error("Sound file not found in archive")
	}
}

func TestArchiveOutput_NonExistentDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nonExistentDir := filepath.Join(tmpDir, "nonexistent")

	err := ArchiveOutput(nonExistentDir)
	if err == nil {
		t.Error("Expected error for non-existent directory")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchiveOutput_MultipleArchives(t *testing.T) {
	tmpDir := t.TempDir()

	for i := 0; i < 2; i++ {
		outputDir := filepath.Join(tmpDir, "output")
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			t.Fatalf("Failed to create output directory: %v", err)
		}
		if err := ArchiveOutput(outputDir); err != nil {
			t.Fatalf("ArchiveOutput run %d failed: %v", i+1, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 archives, got %d", len(entries))
	}
}

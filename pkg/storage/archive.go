package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"moltscraper/pkg/models"
)

const (
	archiveSource      = "moltbook.com"
	archiveDescription = "Top posts from Moltbook - the first social network for AI agents"
)

// WriteArchive serializes the collected posts to path as the final run
// artifact. The write goes through a temp file and rename so a crash
// never leaves a half-written archive at the destination.
func WriteArchive(path string, posts []models.Post) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	archive := models.Archive{
		Source:      archiveSource,
		Description: archiveDescription,
		Count:       len(posts),
		ScrapedAt:   time.Now().UTC().Format(time.RFC3339),
		Posts:       posts,
	}

	tempPath := path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary output file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(archive); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace output file: %w", err)
	}

	return nil
}

// ReadArchive loads a previously written archive, e.g. for upload
func ReadArchive(path string) (*models.Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	var archive models.Archive
	if err := json.NewDecoder(file).Decode(&archive); err != nil {
		return nil, fmt.Errorf("failed to decode archive: %w", err)
	}

	return &archive, nil
}

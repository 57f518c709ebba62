package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tsawler/refinery/model"
)

// Manifest describes a chunk directory written by WriteDirectory.
type Manifest struct {
	DocumentTitle string         `json:"document_title,omitempty"`
	SourcePath    string         `json:"source_path,omitempty"`
	TotalChunks   int            `json:"total_chunks"`
	Strategy      string         `json:"strategy,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	Chunks        []ManifestItem `json:"chunks"`
}

// ManifestItem is one chunk's entry in the manifest.
type ManifestItem struct {
	ID            string `json:"id"`
	File          string `json:"file"`
	Size          int    `json:"size"`
	StartPosition int    `json:"start_position"`
	EndPosition   int    `json:"end_position"`
	ContentType   string `json:"content_type,omitempty"`
	Topic         string `json:"topic,omitempty"`
	Oversize      bool   `json:"oversize,omitempty"`
}

// WriteDirectory writes one markdown file per chunk into dir plus a
// manifest.json describing the set. The directory is created if needed.
func WriteDirectory(chunks []model.DocumentChunk, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: create directory %s: %w", dir, err)
	}

	manifest := Manifest{
		TotalChunks: len(chunks),
		CreatedAt:   time.Now().UTC(),
	}
	if len(chunks) > 0 {
		manifest.DocumentTitle = chunks[0].Source.Title
		manifest.SourcePath = chunks[0].Source.FilePath
		manifest.Strategy = chunks[0].Strategy.String()
	}

	for i := range chunks {
		c := &chunks[i]
		name := fmt.Sprintf("chunk_%04d.md", i)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(c.Content), 0o644); err != nil {
			return fmt.Errorf("export: write %s: %w", path, err)
		}
		manifest.Chunks = append(manifest.Chunks, ManifestItem{
			ID:            c.ID,
			File:          name,
			Size:          c.Size(),
			StartPosition: c.StartPosition,
			EndPosition:   c.EndPosition,
			ContentType:   c.ContentType,
			Topic:         c.Annotations.Topic,
			Oversize:      c.Oversize,
		})
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("export: encode manifest: %w", err)
	}
	manifestPath := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", manifestPath, err)
	}
	return nil
}

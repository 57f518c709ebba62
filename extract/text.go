package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/refinery/model"
)

// TextFile reads a plain text or markdown file into raw content. The text
// is carried verbatim; markdown structure is recovered downstream by the
// refiner.
func TextFile(path string) (*model.RawContent, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("extract: empty file path")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("extract text %s: %w", path, err)
	}

	raw := &model.RawContent{Text: string(data)}
	raw.File.Name = filepath.Base(path)
	raw.File.Extension = strings.TrimPrefix(filepath.Ext(path), ".")
	if info, err := f.Stat(); err == nil {
		raw.File.Size = info.Size()
		raw.File.Modified = info.ModTime()
	}
	return raw, nil
}

// FromString wraps already-extracted text as raw content, for callers that
// run their own readers.
func FromString(text, name string) *model.RawContent {
	raw := &model.RawContent{Text: text}
	raw.File.Name = name
	raw.File.Extension = strings.TrimPrefix(filepath.Ext(name), ".")
	raw.File.Size = int64(len(text))
	return raw
}

// File dispatches on extension: .html/.htm via the HTML reader, everything
// else as text.
func File(path string) (*model.RawContent, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return HTMLFile(path)
	default:
		return TextFile(path)
	}
}

// Package export serializes document chunks for downstream indexing: JSONL,
// JSON, and CSV streams, a chunk-per-file directory layout with a manifest,
// and an HTML preview of refined markdown.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/refinery/model"
)

// Format defines the available stream export formats.
type Format int

const (
	// FormatJSONL exports one JSON object per line.
	FormatJSONL Format = iota
	// FormatJSON exports a single JSON array.
	FormatJSON
	// FormatCSV exports comma-separated values with a header row.
	FormatCSV
	// FormatTSV exports tab-separated values with a header row.
	FormatTSV
)

func (f Format) String() string {
	switch f {
	case FormatJSONL:
		return "jsonl"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format.
func (f Format) FileExtension() string {
	switch f {
	case FormatJSONL:
		return ".jsonl"
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	case FormatTSV:
		return ".tsv"
	default:
		return ".txt"
	}
}

// Config holds export options.
type Config struct {
	// Format selects the stream format.
	Format Format

	// IncludeAnnotations emits chunk annotations and props.
	IncludeAnnotations bool

	// IncludePositions emits start/end offsets.
	IncludePositions bool

	// PrettyPrint indents JSON output (FormatJSON only).
	PrettyPrint bool
}

// DefaultConfig returns JSONL with annotations and positions included.
func DefaultConfig() Config {
	return Config{
		Format:             FormatJSONL,
		IncludeAnnotations: true,
		IncludePositions:   true,
	}
}

// Exporter serializes chunk sets.
type Exporter struct {
	config Config
}

// New creates an Exporter with default configuration.
func New() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewWithConfig creates an Exporter with custom configuration.
func NewWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// exportedChunk is the flat record written to streams.
type exportedChunk struct {
	ID            string            `json:"id"`
	Text          string            `json:"text"`
	Index         int               `json:"index"`
	StartPosition *int              `json:"start_position,omitempty"`
	EndPosition   *int              `json:"end_position,omitempty"`
	Strategy      string            `json:"strategy,omitempty"`
	ContentType   string            `json:"content_type,omitempty"`
	DocumentTitle string            `json:"document_title,omitempty"`
	SourcePath    string            `json:"source_path,omitempty"`
	Topic         string            `json:"topic,omitempty"`
	Keywords      []string          `json:"keywords,omitempty"`
	Summary       string            `json:"summary,omitempty"`
	QualityScore  float64           `json:"quality_score,omitempty"`
	Oversize      bool              `json:"oversize,omitempty"`
	Props         map[string]string `json:"props,omitempty"`
}

func (e *Exporter) prepare(c *model.DocumentChunk, index int) exportedChunk {
	out := exportedChunk{
		ID:            c.ID,
		Text:          c.Content,
		Index:         index,
		Strategy:      c.Strategy.String(),
		ContentType:   c.ContentType,
		DocumentTitle: c.Source.Title,
		SourcePath:    c.Source.FilePath,
		QualityScore:  c.QualityScore,
		Oversize:      c.Oversize,
	}
	if e.config.IncludePositions {
		start, end := c.StartPosition, c.EndPosition
		out.StartPosition = &start
		out.EndPosition = &end
	}
	if e.config.IncludeAnnotations {
		out.Topic = c.Annotations.Topic
		out.Keywords = c.Annotations.Keywords
		out.Summary = c.Annotations.Summary
		out.Props = c.Props
	}
	return out
}

// Export writes the chunk set to w in the configured format.
func (e *Exporter) Export(chunks []model.DocumentChunk, w io.Writer) error {
	switch e.config.Format {
	case FormatJSONL:
		return e.exportJSONL(chunks, w)
	case FormatJSON:
		return e.exportJSON(chunks, w)
	case FormatCSV, FormatTSV:
		return e.exportDelimited(chunks, w)
	default:
		return fmt.Errorf("export: unsupported format %v", e.config.Format)
	}
}

// ExportToFile writes the chunk set to a file.
func (e *Exporter) ExportToFile(chunks []model.DocumentChunk, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", filename, err)
	}
	defer f.Close()
	return e.Export(chunks, f)
}

// ExportToString renders the chunk set as a string.
func (e *Exporter) ExportToString(chunks []model.DocumentChunk) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(chunks, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) exportJSONL(chunks []model.DocumentChunk, w io.Writer) error {
	enc := json.NewEncoder(w)
	for i := range chunks {
		if err := enc.Encode(e.prepare(&chunks[i], i)); err != nil {
			return fmt.Errorf("export: encode chunk %d: %w", i, err)
		}
	}
	return nil
}

func (e *Exporter) exportJSON(chunks []model.DocumentChunk, w io.Writer) error {
	out := make([]exportedChunk, len(chunks))
	for i := range chunks {
		out[i] = e.prepare(&chunks[i], i)
	}
	enc := json.NewEncoder(w)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func (e *Exporter) exportDelimited(chunks []model.DocumentChunk, w io.Writer) error {
	cw := csv.NewWriter(w)
	if e.config.Format == FormatTSV {
		cw.Comma = '\t'
	}

	header := []string{"id", "index", "text", "strategy", "content_type", "document_title", "source_path", "quality_score"}
	if e.config.IncludePositions {
		header = append(header, "start_position", "end_position")
	}
	if e.config.IncludeAnnotations {
		header = append(header, "topic", "keywords", "summary")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for i := range chunks {
		c := &chunks[i]
		row := []string{
			c.ID,
			strconv.Itoa(i),
			c.Content,
			c.Strategy.String(),
			c.ContentType,
			c.Source.Title,
			c.Source.FilePath,
			strconv.FormatFloat(c.QualityScore, 'f', 4, 64),
		}
		if e.config.IncludePositions {
			row = append(row, strconv.Itoa(c.StartPosition), strconv.Itoa(c.EndPosition))
		}
		if e.config.IncludeAnnotations {
			row = append(row, c.Annotations.Topic, strings.Join(c.Annotations.Keywords, "; "), c.Annotations.Summary)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write chunk %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

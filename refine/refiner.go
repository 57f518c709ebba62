package refine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tsawler/refinery/model"
)

// ErrNilContent is returned when Refine is called with nil raw content.
var ErrNilContent = errors.New("raw content is nil")

// Converter is the optional external markdown-converter collaborator. It is
// consulted only when the raw content carries no structured tables or blocks.
// A failure or empty result falls back to the raw text unchanged.
type Converter interface {
	// Convert produces markdown from raw content.
	Convert(ctx context.Context, raw *model.RawContent) (string, error)

	// Name identifies the converter in refinement info.
	Name() string
}

// Options controls which refinement steps run. All flags are independently
// toggleable; DefaultOptions enables everything.
type Options struct {
	// CleanNoise strips artificial paragraph-numbering headings and image
	// placeholder artifacts.
	CleanNoise bool

	// BuildSections builds the hierarchical section list and triggers
	// numbered-section to markdown-heading promotion.
	BuildSections bool

	// ConvertTablesToMarkdown renders extracted TableData as markdown tables.
	ConvertTablesToMarkdown bool

	// ConvertBlocksToMarkdown renders extracted TextBlocks as markdown.
	ConvertBlocksToMarkdown bool

	// NormalizeMarkdownStructure runs the idempotent markdown normalization
	// pass (heading clamping, empty-heading removal, list markers, table
	// column reconciliation).
	NormalizeMarkdownStructure bool

	// ExtractStructures re-scans the normalized text and records code
	// blocks, tables, and lists as typed structured elements.
	ExtractStructures bool

	// NormalizeWhitespace collapses excess blank lines and trailing spaces.
	NormalizeWhitespace bool

	// UseLLM permits falling back to the injected Converter when no
	// structured data is present.
	UseLLM bool
}

// DefaultOptions returns options with every step enabled.
func DefaultOptions() Options {
	return Options{
		CleanNoise:                 true,
		BuildSections:              true,
		ConvertTablesToMarkdown:    true,
		ConvertBlocksToMarkdown:    true,
		NormalizeMarkdownStructure: true,
		ExtractStructures:          true,
		NormalizeWhitespace:        true,
		UseLLM:                     true,
	}
}

// Refiner cleans and structures raw extracted content.
type Refiner struct {
	converter Converter
	name      string
}

// New creates a Refiner with no external converter.
func New() *Refiner {
	return &Refiner{name: "refinery"}
}

// NewWithConverter creates a Refiner that can fall back to the given
// markdown converter when raw content has no structured data.
func NewWithConverter(c Converter) *Refiner {
	return &Refiner{converter: c, name: "refinery"}
}

// Refine runs the refinement pipeline over raw content. It fails only on nil
// input or context cancellation; individual step failures degrade to warnings
// on the returned RefinedContent.
func (r *Refiner) Refine(ctx context.Context, raw *model.RawContent, opts Options) (*model.RefinedContent, error) {
	if raw == nil {
		return nil, fmt.Errorf("refine: %w", ErrNilContent)
	}
	start := time.Now()

	text := raw.Text
	var warnings []string
	warn := func(step string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s: degraded (%v)", step, err))
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("refine %s: %w", raw.File.Name, err)
	}

	if opts.CleanNoise {
		text = cleanNoise(text)
	}

	if opts.BuildSections {
		text = promoteNumberedSections(text)
	}

	usedLLM := false
	if opts.ConvertTablesToMarkdown || opts.ConvertBlocksToMarkdown {
		if raw.HasStructuredData() {
			converted, err := renderStructured(ctx, raw, text, opts)
			if err != nil {
				warn("structured conversion", err)
			} else {
				text = converted
			}
		} else if opts.UseLLM && r.converter != nil {
			converted, err := r.converter.Convert(ctx, raw)
			switch {
			case err != nil:
				warn("markdown converter", err)
			case converted == "":
				warnings = append(warnings, "markdown converter: empty result, kept raw text")
			default:
				text = converted
				usedLLM = true
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("refine %s: %w", raw.File.Name, err)
	}

	if opts.NormalizeMarkdownStructure {
		text = NormalizeMarkdown(text)
	}

	var structures []model.StructuredElement
	if opts.ExtractStructures {
		structures = append(structures, structuresFromTables(raw.Tables)...)
		structures = append(structures, extractStructures(text)...)
	}

	if opts.NormalizeWhitespace {
		text = normalizeWhitespace(text)
	}

	var sections []model.Section
	if opts.BuildSections {
		sections = buildSections(text)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("refine %s: %w", raw.File.Name, err)
	}

	refined := &model.RefinedContent{
		RawID:      raw.File.Name,
		Text:       text,
		Sections:   sections,
		Structures: structures,
		Metadata: model.DocumentMetadata{
			FileName: raw.File.Name,
			FileType: raw.File.Extension,
			FileSize: raw.File.Size,
			Title:    raw.File.Title,
			Created:  raw.File.Created,
			Modified: raw.File.Modified,
		},
		Quality: scoreRefinement(raw.Text, text, len(structures) > 0, len(sections) > 0),
		Info: model.RefinementInfo{
			Refiner:  r.name,
			UsedLLM:  usedLLM,
			Duration: time.Since(start),
		},
		Warnings: warnings,
	}

	if refined.Metadata.Title == "" && len(sections) > 0 {
		refined.Metadata.Title = sections[0].Title
	}

	return refined, nil
}

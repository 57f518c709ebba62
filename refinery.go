// Package refinery provides a fluent API for refining extracted documents
// into retrieval-ready chunks with quality analysis.
//
// Basic usage:
//
//	chunks, warnings, err := refinery.Open("document.html").Chunks(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", strings.Join(warnings, "; "))
//	}
//
// With options:
//
//	result, err := refinery.Open("report.md").
//	    Strategy(model.StrategySemantic).
//	    MaxChunkSize(800).
//	    Overlap(80).
//	    Run(ctx)
//
// For advanced use cases the lower-level refine, chunk, and quality packages
// are also available.
package refinery

import (
	"context"
	"fmt"

	"github.com/tsawler/refinery/chunk"
	"github.com/tsawler/refinery/enhance"
	"github.com/tsawler/refinery/extract"
	"github.com/tsawler/refinery/model"
	"github.com/tsawler/refinery/quality"
	"github.com/tsawler/refinery/refine"
)

// Open creates a Pipeline reading from the named file. The file is loaded
// lazily, when a terminal operation runs.
//
// Example:
//
//	chunks, warnings, err := refinery.Open("document.html").Chunks(ctx)
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename:    filename,
		refineOpts:  refine.DefaultOptions(),
		chunkOpts:   chunk.DefaultOptions(),
		enhanceOpts: enhance.DefaultOptions(),
		analyze:     true,
	}
}

// FromString creates a Pipeline over in-memory text. The name labels the
// source in metadata and chunk IDs.
func FromString(text, name string) *Pipeline {
	return &Pipeline{
		raw:         extract.FromString(text, name),
		refineOpts:  refine.DefaultOptions(),
		chunkOpts:   chunk.DefaultOptions(),
		enhanceOpts: enhance.DefaultOptions(),
		analyze:     true,
	}
}

// FromRaw creates a Pipeline over already-extracted content. Useful when the
// caller runs its own extraction front end.
func FromRaw(raw *model.RawContent) *Pipeline {
	return &Pipeline{
		raw:         raw,
		refineOpts:  refine.DefaultOptions(),
		chunkOpts:   chunk.DefaultOptions(),
		enhanceOpts: enhance.DefaultOptions(),
		analyze:     true,
	}
}

// Pipeline provides a fluent interface for the refine, chunk, analyze, and
// enhance stages. Each configuration method returns a new Pipeline instance,
// making it safe for concurrent use and allowing method chaining.
type Pipeline struct {
	// Source. Exactly one of filename or raw is set.
	filename string
	raw      *model.RawContent

	// Configuration
	refineOpts  refine.Options
	chunkOpts   chunk.Options
	enhanceOpts enhance.Options
	analyze     bool

	// Collaborators
	converter  refine.Converter
	completion enhance.Completion

	// Accumulated error (fail-fast)
	err error
}

// Result bundles everything a full pipeline run produces.
type Result struct {
	Refined  *model.RefinedContent
	Chunks   []model.DocumentChunk
	Report   *quality.Report
	Warnings []string
}

// clone creates a copy of the Pipeline so configuration methods never
// mutate the receiver.
func (p *Pipeline) clone() *Pipeline {
	cp := *p
	return &cp
}

// Strategy selects the chunking strategy. The default is automatic
// selection based on document shape.
func (p *Pipeline) Strategy(s model.Strategy) *Pipeline {
	cp := p.clone()
	cp.chunkOpts.Strategy = s
	return cp
}

// MaxChunkSize sets the maximum chunk size in characters.
func (p *Pipeline) MaxChunkSize(n int) *Pipeline {
	cp := p.clone()
	cp.chunkOpts.MaxChunkSize = n
	return cp
}

// MinChunkSize sets the minimum chunk size in characters.
func (p *Pipeline) MinChunkSize(n int) *Pipeline {
	cp := p.clone()
	cp.chunkOpts.MinChunkSize = n
	return cp
}

// Overlap sets the overlap between adjacent chunks in characters.
func (p *Pipeline) Overlap(n int) *Pipeline {
	cp := p.clone()
	cp.chunkOpts.OverlapSize = n
	return cp
}

// ChunkOptions replaces the chunking options wholesale.
func (p *Pipeline) ChunkOptions(opts chunk.Options) *Pipeline {
	cp := p.clone()
	cp.chunkOpts = opts
	return cp
}

// RefineOptions replaces the refinement options wholesale.
func (p *Pipeline) RefineOptions(opts refine.Options) *Pipeline {
	cp := p.clone()
	cp.refineOpts = opts
	return cp
}

// WithConverter installs a markdown converter consulted when raw content
// carries no structured data.
func (p *Pipeline) WithConverter(c refine.Converter) *Pipeline {
	cp := p.clone()
	cp.converter = c
	return cp
}

// WithCompletion installs a completion service and enables enhancement. If
// the service reports itself unavailable at run time, enhancement is skipped
// with a warning rather than failing the run.
func (p *Pipeline) WithCompletion(c enhance.Completion) *Pipeline {
	cp := p.clone()
	cp.completion = c
	return cp
}

// EnhanceOptions replaces the enhancement options wholesale. They take
// effect only when a completion service is installed.
func (p *Pipeline) EnhanceOptions(opts enhance.Options) *Pipeline {
	cp := p.clone()
	cp.enhanceOpts = opts
	return cp
}

// SkipAnalysis disables the quality report. Run results then carry a nil
// Report.
func (p *Pipeline) SkipAnalysis() *Pipeline {
	cp := p.clone()
	cp.analyze = false
	return cp
}

// source loads or returns the raw content.
func (p *Pipeline) source() (*model.RawContent, error) {
	if p.raw != nil {
		return p.raw, nil
	}
	if p.filename == "" {
		return nil, fmt.Errorf("no source specified")
	}
	return extract.File(p.filename)
}

// Refined runs extraction and refinement only.
func (p *Pipeline) Refined(ctx context.Context) (*model.RefinedContent, error) {
	if p.err != nil {
		return nil, p.err
	}
	raw, err := p.source()
	if err != nil {
		return nil, err
	}

	refiner := refine.New()
	if p.converter != nil {
		refiner = refine.NewWithConverter(p.converter)
	}
	return refiner.Refine(ctx, raw, p.refineOpts)
}

// Chunks runs the pipeline through chunking (and enhancement when a
// completion service is installed) and returns the chunks plus any
// warnings accumulated along the way.
func (p *Pipeline) Chunks(ctx context.Context) ([]model.DocumentChunk, []string, error) {
	refined, err := p.Refined(ctx)
	if err != nil {
		return nil, nil, err
	}

	warnings := append([]string(nil), refined.Warnings...)

	chunks, err := chunk.New().Chunk(ctx, refined, p.chunkOpts)
	if err != nil {
		return nil, warnings, err
	}

	if p.completion != nil {
		enhanced, enhanceWarnings := enhance.New(p.completion).Enhance(ctx, chunks, p.enhanceOpts)
		chunks = enhanced
		warnings = append(warnings, enhanceWarnings...)
	}
	return chunks, warnings, nil
}

// Run executes the full pipeline and returns the refined content, chunks,
// quality report, and warnings in one Result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	refined, err := p.Refined(ctx)
	if err != nil {
		return nil, err
	}

	warnings := append([]string(nil), refined.Warnings...)

	chunks, err := chunk.New().Chunk(ctx, refined, p.chunkOpts)
	if err != nil {
		return nil, err
	}

	if p.completion != nil {
		enhanced, enhanceWarnings := enhance.New(p.completion).Enhance(ctx, chunks, p.enhanceOpts)
		chunks = enhanced
		warnings = append(warnings, enhanceWarnings...)
	}

	var report *quality.Report
	if p.analyze {
		report = quality.New().Analyze(ctx, chunks, refined.Text)
	}

	return &Result{
		Refined:  refined,
		Chunks:   chunks,
		Report:   report,
		Warnings: warnings,
	}, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	refined := refinery.Must(refinery.FromString(text, "doc.md").Refined(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustChunks wraps a call to Chunks() and panics if the error is non-nil.
// It discards warnings and returns just the chunks.
func MustChunks(chunks []model.DocumentChunk, _ []string, err error) []model.DocumentChunk {
	if err != nil {
		panic(err)
	}
	return chunks
}

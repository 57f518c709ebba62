package chunk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/refinery/model"
)

// ErrNilRefined is returned when Chunk is called with nil refined content.
var ErrNilRefined = errors.New("chunk: refined content is nil")

// semanticLengthThreshold is the text length above which auto strategy
// resolution prefers semantic grouping for unsectioned documents.
const semanticLengthThreshold = 8000

// Options controls how a document is chunked.
type Options struct {
	// Strategy selects the splitting engine. StrategyAuto picks one from
	// document characteristics.
	Strategy model.Strategy

	// MaxChunkSize is the upper bound on chunk content length in bytes,
	// overlap included. Only indivisible units may exceed it, and those
	// chunks are flagged Oversize.
	MaxChunkSize int

	// MinChunkSize is the preferred lower bound. A trailing fragment below
	// it is merged into the previous chunk when the merge fits.
	MinChunkSize int

	// OverlapSize is how many bytes of the preceding chunk each chunk
	// repeats at its start. Zero disables overlap.
	OverlapSize int

	// TargetChunkSize is the preferred size for strategies that can aim
	// for one. Zero means MaxChunkSize.
	TargetChunkSize int

	// PreserveSentences keeps sentences whole when the strategy packs
	// smaller units.
	PreserveSentences bool

	// PreserveParagraphs keeps paragraphs whole when possible.
	PreserveParagraphs bool
}

// DefaultOptions returns the chunking defaults: automatic strategy selection,
// 1000-byte chunks with a 100-byte floor and 50 bytes of overlap.
func DefaultOptions() Options {
	return Options{
		Strategy:           model.StrategyAuto,
		MaxChunkSize:       1000,
		MinChunkSize:       100,
		OverlapSize:        50,
		TargetChunkSize:    600,
		PreserveSentences:  true,
		PreserveParagraphs: true,
	}
}

// validate normalizes and checks option values.
func (o *Options) validate() error {
	if o.MaxChunkSize <= 0 {
		return fmt.Errorf("chunk: max chunk size must be positive, got %d", o.MaxChunkSize)
	}
	if o.MinChunkSize < 0 || o.MinChunkSize > o.MaxChunkSize {
		return fmt.Errorf("chunk: min chunk size %d out of range [0,%d]", o.MinChunkSize, o.MaxChunkSize)
	}
	if o.OverlapSize < 0 || o.OverlapSize >= o.MaxChunkSize {
		return fmt.Errorf("chunk: overlap %d must be in [0,%d)", o.OverlapSize, o.MaxChunkSize)
	}
	if o.TargetChunkSize < 0 {
		return fmt.Errorf("chunk: target chunk size must not be negative, got %d", o.TargetChunkSize)
	}
	return nil
}

// Chunker splits refined content into retrieval-sized chunks. The zero value
// is not usable; construct with New.
type Chunker struct {
	engines map[model.Strategy]Engine
}

// New returns a Chunker with the built-in engines registered.
func New() *Chunker {
	return &Chunker{
		engines: map[model.Strategy]Engine{
			model.StrategySentence:  sentenceEngine{},
			model.StrategyParagraph: paragraphEngine{},
			model.StrategyToken:     tokenEngine{},
			model.StrategySemantic:  semanticEngine{},
		},
	}
}

// RegisterEngine substitutes the engine for a strategy. Passing nil restores
// nothing; callers own keeping the registration sane.
func (c *Chunker) RegisterEngine(s model.Strategy, e Engine) {
	if e != nil {
		c.engines[s] = e
	}
}

// Chunk splits refined content into chunks per opts. Empty text yields an
// empty slice and no error. The returned chunks are ordered by StartPosition,
// and each chunk's Content is the exact refined-text substring at
// [StartPosition, EndPosition).
func (c *Chunker) Chunk(ctx context.Context, refined *model.RefinedContent, opts Options) ([]model.DocumentChunk, error) {
	if refined == nil {
		return nil, ErrNilRefined
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(refined.Text) == "" {
		return []model.DocumentChunk{}, nil
	}

	strategy := opts.Strategy
	if strategy == model.StrategyAuto {
		strategy = c.resolveAuto(refined, opts)
	}

	engine, err := c.engineFor(strategy, refined)
	if err != nil {
		return nil, err
	}

	// Reserve the overlap inside the packing budget so a chunk still honors
	// MaxChunkSize after its start is extended backward.
	engineOpts := opts
	if opts.OverlapSize > 0 {
		engineOpts.MaxChunkSize -= opts.OverlapSize
		if engineOpts.MinChunkSize > engineOpts.MaxChunkSize {
			engineOpts.MinChunkSize = engineOpts.MaxChunkSize
		}
		if engineOpts.TargetChunkSize > engineOpts.MaxChunkSize {
			engineOpts.TargetChunkSize = engineOpts.MaxChunkSize
		}
	}

	spans, err := engine.Split(ctx, refined.Text, engineOpts)
	if err != nil {
		return nil, fmt.Errorf("chunk %s with %s strategy: %w", refined.Metadata.FileName, engine.Name(), err)
	}
	if len(spans) == 0 {
		return []model.DocumentChunk{}, nil
	}

	if opts.OverlapSize > 0 {
		spans = applyOverlap(refined.Text, spans, opts.OverlapSize, opts.MaxChunkSize)
	}

	return c.assemble(refined, spans, strategy), nil
}

// resolveAuto picks a concrete strategy for StrategyAuto. Small documents
// chunk by sentence, sectioned documents along their hierarchy, long
// unsectioned documents semantically, and everything else by paragraph.
func (c *Chunker) resolveAuto(refined *model.RefinedContent, opts Options) model.Strategy {
	switch {
	case len(refined.Text) <= opts.MaxChunkSize:
		return model.StrategySentence
	case len(refined.Sections) >= 2:
		return model.StrategyHierarchical
	case len(refined.Text) >= semanticLengthThreshold:
		return model.StrategySemantic
	default:
		return model.StrategyParagraph
	}
}

// engineFor returns the engine for a strategy. The hierarchical engine is
// built per document since it needs the section index.
func (c *Chunker) engineFor(s model.Strategy, refined *model.RefinedContent) (Engine, error) {
	if s == model.StrategyHierarchical {
		if e, ok := c.engines[model.StrategyHierarchical]; ok {
			return e, nil
		}
		return hierarchicalEngine{sections: refined.Sections}, nil
	}
	e, ok := c.engines[s]
	if !ok {
		return nil, fmt.Errorf("chunk: no engine registered for strategy %q", s)
	}
	return e, nil
}

// applyOverlap extends each span's start backward by up to overlap bytes,
// never past the previous span's start and never beyond maxSize total span
// length, then snaps forward to a word boundary so no chunk begins mid-word.
// Span order and monotonic starts are preserved. Oversize spans already
// exceed maxSize and receive no extension.
func applyOverlap(text string, spans []Span, overlap, maxSize int) []Span {
	out := make([]Span, len(spans))
	copy(out, spans)

	for i := 1; i < len(out); i++ {
		start := out[i].Start - overlap
		if floor := spans[i-1].Start; start < floor {
			start = floor
		}
		if start < 0 {
			start = 0
		}
		if lo := out[i].End - maxSize; start < lo {
			start = lo
		}
		if start > out[i].Start {
			start = out[i].Start
		}

		// Snap forward so the overlap begins at a word boundary.
		for start < out[i].Start && start > 0 && !isSpaceByte(text[start-1]) {
			start++
		}
		for start < out[i].Start && isSpaceByte(text[start]) {
			start++
		}

		out[i].Start = start
	}

	return out
}

// assemble builds DocumentChunks from spans, stamping shared source info and
// per-chunk section topics.
func (c *Chunker) assemble(refined *model.RefinedContent, spans []Span, strategy model.Strategy) []model.DocumentChunk {
	source := model.SourceInfo{
		Title:       refined.Title(),
		SourceType:  refined.Metadata.FileType,
		FilePath:    refined.Metadata.FileName,
		TotalChunks: len(spans),
	}

	chunks := make([]model.DocumentChunk, 0, len(spans))
	for i, sp := range spans {
		content := refined.Text[sp.Start:sp.End]
		chunk := model.DocumentChunk{
			ID:            fmt.Sprintf("%s_%04d", chunkIDBase(refined), i),
			Content:       content,
			StartPosition: sp.Start,
			EndPosition:   sp.End,
			Strategy:      strategy,
			ContentType:   classifyContent(content),
			Source:        source,
			Oversize:      sp.Oversize,
		}
		if sec := refined.SectionByOffset(sp.Start); sec != nil {
			chunk.Annotations.Topic = sec.Title
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func chunkIDBase(refined *model.RefinedContent) string {
	if refined.RawID != "" {
		return refined.RawID
	}
	return "chunk"
}

// classifyContent labels a chunk by its dominant content kind.
func classifyContent(content string) string {
	trimmed := strings.TrimSpace(content)
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "code"
	case strings.HasPrefix(trimmed, "|") && strings.Contains(trimmed, "\n|"):
		return "table"
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "1. "):
		return "list"
	case strings.HasPrefix(trimmed, "#"):
		return "section"
	default:
		return "text"
	}
}

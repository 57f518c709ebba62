package chunk

import (
	"context"
	"strings"

	"github.com/tsawler/refinery/model"
)

// Span marks one chunk's extent in the source text. Oversize is set when the
// span holds a single indivisible unit that exceeds the configured maximum.
type Span struct {
	Start    int
	End      int
	Oversize bool
}

// Engine splits refined text into spans under one chunking strategy.
// Implementations must be deterministic: identical text and options always
// produce identical spans.
type Engine interface {
	// Name returns the strategy name for diagnostics.
	Name() string

	// Split returns ordered, non-overlapping spans covering the chunkable
	// portions of text.
	Split(ctx context.Context, text string, opts Options) ([]Span, error)
}

// packUnits greedily packs unit spans into chunks no larger than
// opts.MaxChunkSize. A unit that alone exceeds the maximum becomes its own
// span with Oversize set. Trailing chunks smaller than MinChunkSize are
// merged into the previous chunk when one exists.
func packUnits(text string, units []textSpan, opts Options) []Span {
	if len(units) == 0 {
		return nil
	}

	var spans []Span
	cur := -1 // index into spans of the open chunk, -1 when none

	for _, u := range units {
		size := u.end - u.start
		if size > opts.MaxChunkSize {
			cur = -1
			if opts.PreserveSentences {
				// Indivisible unit larger than the budget: keep it whole.
				spans = append(spans, Span{Start: u.start, End: u.end, Oversize: true})
			} else {
				spans = append(spans, hardSplit(text, u, opts.MaxChunkSize)...)
			}
			continue
		}

		if cur >= 0 && u.end-spans[cur].Start <= opts.MaxChunkSize {
			spans[cur].End = u.end
			continue
		}

		spans = append(spans, Span{Start: u.start, End: u.end})
		cur = len(spans) - 1
	}

	return foldTrailing(spans, opts)
}

// foldTrailing merges an undersized trailing chunk into its predecessor when
// the merge still honors the maximum.
func foldTrailing(spans []Span, opts Options) []Span {
	n := len(spans)
	if n < 2 || opts.MinChunkSize <= 0 {
		return spans
	}
	last := spans[n-1]
	prev := spans[n-2]
	if !last.Oversize && !prev.Oversize &&
		last.End-last.Start < opts.MinChunkSize &&
		last.End-prev.Start <= opts.MaxChunkSize {
		spans[n-2].End = last.End
		spans = spans[:n-1]
	}
	return spans
}

// hardSplit cuts an oversize unit into pieces no larger than max, preferring
// the last word boundary before the limit.
func hardSplit(text string, u textSpan, max int) []Span {
	var spans []Span
	start := u.start
	for start < u.end {
		end := start + max
		if end >= u.end {
			spans = append(spans, Span{Start: start, End: u.end})
			break
		}
		cut := end
		for cut > start && !isSpaceByte(text[cut-1]) {
			cut--
		}
		if cut == start {
			cut = end // no boundary inside the window
		}
		if t := trimSpan(text, start, cut); t != nil {
			spans = append(spans, Span{Start: t.start, End: t.end})
		}
		for cut < u.end && isSpaceByte(text[cut]) {
			cut++
		}
		start = cut
	}
	return spans
}

// sentenceEngine packs whole sentences into chunks.
type sentenceEngine struct{}

func (sentenceEngine) Name() string { return "sentence" }

func (sentenceEngine) Split(ctx context.Context, text string, opts Options) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return packUnits(text, splitSentences(text), opts), nil
}

// paragraphEngine packs whole paragraphs into chunks. Paragraphs above the
// size budget are re-split by sentence before packing.
type paragraphEngine struct{}

func (paragraphEngine) Name() string { return "paragraph" }

func (paragraphEngine) Split(ctx context.Context, text string, opts Options) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var units []textSpan
	for _, p := range splitParagraphs(text) {
		if p.end-p.start <= opts.MaxChunkSize && opts.PreserveParagraphs {
			units = append(units, p)
			continue
		}
		sentences := splitSentences(text[p.start:p.end])
		if len(sentences) <= 1 {
			units = append(units, p)
			continue
		}
		for _, s := range sentences {
			units = append(units, textSpan{start: p.start + s.start, end: p.start + s.end})
		}
	}
	return packUnits(text, units, opts), nil
}

// semanticEngine groups sentences at topic shifts, approximated by vocabulary
// overlap between adjacent sentences: a low-overlap boundary closes the
// current chunk once it has reached TargetChunkSize.
type semanticEngine struct{}

func (semanticEngine) Name() string { return "semantic" }

func (semanticEngine) Split(ctx context.Context, text string, opts Options) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	target := opts.TargetChunkSize
	if target <= 0 || target > opts.MaxChunkSize {
		target = opts.MaxChunkSize
	}

	var spans []Span
	cur := -1

	prevTerms := map[string]struct{}{}
	for i, s := range sentences {
		size := s.end - s.start
		terms := termSet(text[s.start:s.end])

		if size > opts.MaxChunkSize {
			cur = -1
			spans = append(spans, Span{Start: s.start, End: s.end, Oversize: true})
			prevTerms = terms
			continue
		}

		open := cur >= 0
		if open && s.end-spans[cur].Start > opts.MaxChunkSize {
			open = false
		}
		if open && i > 0 && spans[cur].End-spans[cur].Start >= target &&
			termOverlap(prevTerms, terms) < 0.15 {
			open = false
		}

		if open {
			spans[cur].End = s.end
		} else {
			spans = append(spans, Span{Start: s.start, End: s.end})
			cur = len(spans) - 1
		}
		prevTerms = terms
	}

	return foldTrailing(spans, opts), nil
}

// termSet returns the lowercase word set of text, words shorter than three
// characters excluded.
func termSet(text string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	}) {
		if len(w) >= 3 {
			set[w] = struct{}{}
		}
	}
	return set
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
}

// termOverlap returns the Jaccard similarity of two term sets.
func termOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// hierarchicalEngine splits along the document's section boundaries, packing
// within each section by paragraph. Sections larger than the budget fall
// back to the paragraph engine over the section body.
type hierarchicalEngine struct {
	sections []model.Section
}

func (hierarchicalEngine) Name() string { return "hierarchical" }

func (e hierarchicalEngine) Split(ctx context.Context, text string, opts Options) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(e.sections) == 0 {
		return paragraphEngine{}.Split(ctx, text, opts)
	}

	var spans []Span
	para := paragraphEngine{}

	appendRegion := func(start, end int) error {
		if start >= end {
			return nil
		}
		region := text[start:end]
		if strings.TrimSpace(region) == "" {
			return nil
		}
		if end-start <= opts.MaxChunkSize {
			if t := trimSpan(text, start, end); t != nil {
				spans = append(spans, Span{Start: t.start, End: t.end})
			}
			return nil
		}
		sub, err := para.Split(ctx, region, opts)
		if err != nil {
			return err
		}
		for _, s := range sub {
			spans = append(spans, Span{Start: start + s.Start, End: start + s.End, Oversize: s.Oversize})
		}
		return nil
	}

	// Preamble before the first section.
	first := e.sections[0]
	if first.Start > 0 {
		if err := appendRegion(0, first.Start); err != nil {
			return nil, err
		}
	}

	for _, sec := range e.sections {
		start, end := sec.Start, sec.End
		if start < 0 {
			start = 0
		}
		if end > len(text) {
			end = len(text)
		}
		if err := appendRegion(start, end); err != nil {
			return nil, err
		}
	}

	return spans, nil
}

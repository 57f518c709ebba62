package chunk

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// tokenEngine splits on a fixed character budget using langchaingo's
// recursive character splitter with markdown-aware separators. Overlap is
// left to the chunker so every strategy applies it the same way.
type tokenEngine struct{}

func (tokenEngine) Name() string { return "token" }

func (tokenEngine) Split(ctx context.Context, text string, opts Options) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{
			"\n```",
			"\n# ", "\n## ", "\n### ",
			"\n\n",
			"\n",
			". ",
			" ",
			"",
		}),
		textsplitter.WithChunkSize(opts.MaxChunkSize),
		textsplitter.WithChunkOverlap(0),
	)

	parts, err := splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	// Map each part back to its source offsets. The splitter trims
	// whitespace, so each part is a substring of the original; a forward
	// cursor keeps duplicate parts anchored to distinct positions.
	var spans []Span
	cursor := 0
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		idx := strings.Index(text[cursor:], part)
		if idx < 0 {
			// The splitter rewrote this piece; skip it rather than guess.
			continue
		}
		start := cursor + idx
		end := start + len(part)
		spans = append(spans, Span{Start: start, End: end, Oversize: end-start > opts.MaxChunkSize})
		cursor = end
	}

	return spans, nil
}

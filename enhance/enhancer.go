package enhance

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/refinery/model"
)

// Options selects which enrichments the Enhancer applies.
type Options struct {
	// Summaries fills Annotations.Summary per chunk.
	Summaries bool

	// Keywords fills Annotations.Keywords and entity props per chunk.
	Keywords bool

	// ContextualSummaries fills Annotations.ContextualSummary, a summary
	// that situates the chunk within its neighbors.
	ContextualSummaries bool

	// QualityScores fills RelevanceScore from the service's assessment.
	QualityScores bool

	// MaxSummaryLength bounds generated summaries, in characters.
	MaxSummaryLength int
}

// DefaultOptions enables summaries and keywords with a 200-character bound.
func DefaultOptions() Options {
	return Options{
		Summaries:        true,
		Keywords:         true,
		MaxSummaryLength: 200,
	}
}

// Enhancer annotates chunks using an optional completion service. A nil or
// unavailable service makes Enhance a no-op.
type Enhancer struct {
	completion Completion
}

// New creates an Enhancer around a completion service. completion may be nil.
func New(completion Completion) *Enhancer {
	return &Enhancer{completion: completion}
}

// Enhance returns a copy of chunks with annotations filled in. Content,
// positions, and ordering are never changed. Failures are collected as
// warnings per chunk; a failed call on one chunk never abandons the rest.
func (e *Enhancer) Enhance(ctx context.Context, chunks []model.DocumentChunk, opts Options) ([]model.DocumentChunk, []string) {
	out := make([]model.DocumentChunk, len(chunks))
	copy(out, chunks)

	if e == nil || e.completion == nil || !e.completion.IsAvailable() {
		return out, nil
	}

	var warnings []string
	warn := func(chunkID, op string, err error) {
		warnings = append(warnings, fmt.Sprintf("enhance %s: %s skipped: %v", chunkID, op, err))
	}

	for i := range out {
		if ctx.Err() != nil {
			warnings = append(warnings, fmt.Sprintf("enhance: stopped after %d of %d chunks: %v", i, len(out), ctx.Err()))
			break
		}
		c := &out[i]
		if strings.TrimSpace(c.Content) == "" {
			continue
		}

		if opts.Summaries {
			if s, err := e.completion.Summarize(ctx, c.Content, opts.MaxSummaryLength); err != nil {
				warn(c.ID, "summary", err)
			} else {
				c.Annotations.Summary = s.Text
				if len(c.Annotations.Keywords) == 0 {
					c.Annotations.Keywords = s.Keywords
				}
			}
		}

		if opts.Keywords {
			if meta, err := e.completion.ExtractMetadata(ctx, c.Content, c.ContentType); err != nil {
				warn(c.ID, "metadata", err)
			} else {
				if len(meta.Keywords) > 0 {
					c.Annotations.Keywords = meta.Keywords
				}
				if len(meta.Entities) > 0 {
					c.SetProp("entities", strings.Join(meta.Entities, ", "))
				}
			}
		}

		if opts.ContextualSummaries {
			if summary, err := e.contextualSummary(ctx, out, i, opts.MaxSummaryLength); err != nil {
				warn(c.ID, "contextual summary", err)
			} else {
				c.Annotations.ContextualSummary = summary
			}
		}

		if opts.QualityScores {
			if scores, err := e.completion.AssessQuality(ctx, c.Content); err != nil {
				warn(c.ID, "quality assessment", err)
			} else if len(scores) > 0 {
				sum := 0.0
				for _, v := range scores {
					sum += v
				}
				c.RelevanceScore = sum / float64(len(scores))
			}
		}
	}

	return out, warnings
}

// contextualSummary summarizes a chunk together with a slice of its
// neighbors so the summary places it in the document's flow.
func (e *Enhancer) contextualSummary(ctx context.Context, chunks []model.DocumentChunk, i, maxLen int) (string, error) {
	var b strings.Builder
	if i > 0 {
		b.WriteString("Preceding context:\n")
		b.WriteString(tail(chunks[i-1].Content, 300))
		b.WriteString("\n\n")
	}
	b.WriteString("Passage:\n")
	b.WriteString(chunks[i].Content)
	if i+1 < len(chunks) {
		b.WriteString("\n\nFollowing context:\n")
		b.WriteString(head(chunks[i+1].Content, 300))
	}

	prompt := fmt.Sprintf(
		"Summarize the passage below in at most %d characters, using the surrounding context to resolve references.\n\n%s",
		maxLen, b.String())

	summary, err := e.completion.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return truncate(strings.TrimSpace(summary), maxLen), nil
}

// truncate cuts s to at most n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimSpace(s[:n])
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}

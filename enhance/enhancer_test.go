package enhance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/tsawler/refinery/model"
)

// fakeCompletion is a scriptable Completion for tests.
type fakeCompletion struct {
	available   bool
	failFor     map[string]bool // chunk content substring -> fail
	generateOut string
	calls       int
}

func (f *fakeCompletion) IsAvailable() bool { return f.available }

func (f *fakeCompletion) shouldFail(text string) bool {
	for sub := range f.failFor {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}

func (f *fakeCompletion) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.shouldFail(prompt) {
		return "", errors.New("service unavailable")
	}
	if f.generateOut != "" {
		return f.generateOut, nil
	}
	return "generated text", nil
}

func (f *fakeCompletion) Summarize(ctx context.Context, text string, maxLen int) (Summary, error) {
	f.calls++
	if f.shouldFail(text) {
		return Summary{}, errors.New("service unavailable")
	}
	return Summary{Text: "summary of: " + head(text, 20), Keywords: []string{"alpha", "beta"}}, nil
}

func (f *fakeCompletion) ExtractMetadata(ctx context.Context, text, docType string) (Metadata, error) {
	f.calls++
	if f.shouldFail(text) {
		return Metadata{}, errors.New("service unavailable")
	}
	return Metadata{Keywords: []string{"gamma"}, Entities: []string{"Acme Corp"}}, nil
}

func (f *fakeCompletion) AnalyzeStructure(ctx context.Context, text, docType string) (StructureAnalysis, error) {
	f.calls++
	return StructureAnalysis{Sections: []string{"Intro"}, Confidence: 0.9}, nil
}

func (f *fakeCompletion) AssessQuality(ctx context.Context, text string) (map[string]float64, error) {
	f.calls++
	if f.shouldFail(text) {
		return nil, errors.New("service unavailable")
	}
	return map[string]float64{"clarity": 0.8, "coherence": 0.6}, nil
}

func testChunks() []model.DocumentChunk {
	return []model.DocumentChunk{
		{ID: "c0", Content: "The first chunk describes the opening topic in detail."},
		{ID: "c1", Content: "The second chunk continues with additional material."},
	}
}

func TestEnhanceUnavailableServiceIsNoop(t *testing.T) {
	chunks := testChunks()
	fake := &fakeCompletion{available: false}

	out, warnings := New(fake).Enhance(context.Background(), chunks, DefaultOptions())
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if fake.calls != 0 {
		t.Errorf("expected no service calls, got %d", fake.calls)
	}
	for i, c := range out {
		if !c.Annotations.IsZero() && chunks[i].Annotations.IsZero() {
			t.Errorf("chunk %d annotated despite unavailable service", i)
		}
	}
}

func TestEnhanceNilCompletion(t *testing.T) {
	out, warnings := New(nil).Enhance(context.Background(), testChunks(), DefaultOptions())
	if len(out) != 2 || len(warnings) != 0 {
		t.Errorf("expected a clean no-op, got %d chunks and %v", len(out), warnings)
	}
}

func TestEnhanceFillsAnnotations(t *testing.T) {
	fake := &fakeCompletion{available: true}
	out, warnings := New(fake).Enhance(context.Background(), testChunks(), DefaultOptions())

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	for i, c := range out {
		if c.Annotations.Summary == "" {
			t.Errorf("chunk %d missing summary", i)
		}
		if len(c.Annotations.Keywords) == 0 {
			t.Errorf("chunk %d missing keywords", i)
		}
		if c.Props["entities"] == "" {
			t.Errorf("chunk %d missing entities prop", i)
		}
	}
}

func TestEnhanceContentNeverModified(t *testing.T) {
	chunks := testChunks()
	fake := &fakeCompletion{available: true}

	out, _ := New(fake).Enhance(context.Background(), chunks, DefaultOptions())
	for i := range out {
		if out[i].Content != chunks[i].Content {
			t.Errorf("chunk %d content changed by enhancement", i)
		}
		if out[i].StartPosition != chunks[i].StartPosition || out[i].EndPosition != chunks[i].EndPosition {
			t.Errorf("chunk %d positions changed by enhancement", i)
		}
	}
}

func TestEnhancePerChunkFailureContinues(t *testing.T) {
	fake := &fakeCompletion{
		available: true,
		failFor:   map[string]bool{"first chunk": true},
	}

	out, warnings := New(fake).Enhance(context.Background(), testChunks(), DefaultOptions())

	if len(warnings) == 0 {
		t.Fatal("expected warnings for the failing chunk")
	}
	if out[0].Annotations.Summary != "" {
		t.Error("failing chunk should stay unannotated")
	}
	if out[1].Annotations.Summary == "" {
		t.Error("failure on one chunk must not abandon the rest")
	}
}

func TestEnhanceQualityScores(t *testing.T) {
	fake := &fakeCompletion{available: true}
	opts := Options{QualityScores: true}

	out, _ := New(fake).Enhance(context.Background(), testChunks(), opts)
	want := 0.7 // mean of 0.8 and 0.6
	for i, c := range out {
		if c.RelevanceScore < want-0.0001 || c.RelevanceScore > want+0.0001 {
			t.Errorf("chunk %d relevance = %v, want %v", i, c.RelevanceScore, want)
		}
	}
}

func TestEnhanceContextualSummaryTruncated(t *testing.T) {
	fake := &fakeCompletion{
		available:   true,
		generateOut: strings.Repeat("long response ", 50),
	}
	opts := Options{ContextualSummaries: true, MaxSummaryLength: 80}

	out, warnings := New(fake).Enhance(context.Background(), testChunks(), opts)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	for i, c := range out {
		if c.Annotations.ContextualSummary == "" {
			t.Errorf("chunk %d missing contextual summary", i)
		}
		if len(c.Annotations.ContextualSummary) > 80 {
			t.Errorf("chunk %d contextual summary length %d exceeds limit", i, len(c.Annotations.ContextualSummary))
		}
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
	}{
		{"ascii", "plain ascii text", 8},
		{"emoji at cut", "ab\U0001F600cd", 4},
		{"accented", strings.Repeat("é", 20), 11},
		{"cjk", strings.Repeat("漢字", 10), 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.in, tc.n)
			if len(got) > tc.n {
				t.Errorf("truncated to %d bytes, limit %d", len(got), tc.n)
			}
			if !utf8.ValidString(got) {
				t.Errorf("invalid UTF-8 after truncation: %q", got)
			}
		})
	}
}

func TestEnhanceMultiByteSummaryStaysValid(t *testing.T) {
	fake := &fakeCompletion{
		available:   true,
		generateOut: strings.Repeat("résumé détaillé ", 30),
	}
	opts := Options{ContextualSummaries: true, MaxSummaryLength: 41}

	out, warnings := New(fake).Enhance(context.Background(), testChunks(), opts)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	for i, c := range out {
		s := c.Annotations.ContextualSummary
		if s == "" {
			t.Errorf("chunk %d missing contextual summary", i)
		}
		if len(s) > 41 {
			t.Errorf("chunk %d summary length %d exceeds limit", i, len(s))
		}
		if !utf8.ValidString(s) {
			t.Errorf("chunk %d summary is invalid UTF-8: %q", i, s)
		}
	}
}

func TestEnhanceCancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeCompletion{available: true}
	out, warnings := New(fake).Enhance(ctx, testChunks(), DefaultOptions())

	if len(out) != 2 {
		t.Fatalf("expected all chunks returned, got %d", len(out))
	}
	if len(warnings) == 0 {
		t.Error("expected a cancellation warning")
	}
	if fake.calls != 0 {
		t.Errorf("expected no calls after cancellation, got %d", fake.calls)
	}
}

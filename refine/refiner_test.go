package refine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/refinery/model"
)

func TestRefine_NilContent(t *testing.T) {
	r := New()
	_, err := r.Refine(context.Background(), nil, DefaultOptions())
	if !errors.Is(err, ErrNilContent) {
		t.Errorf("expected ErrNilContent, got %v", err)
	}
}

func TestRefine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New()
	_, err := r.Refine(ctx, &model.RawContent{Text: "hello"}, DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRefine_NumberedSectionPromotion(t *testing.T) {
	raw := &model.RawContent{
		Text: "3-1. Technical Requirements\n\nThe system shall respond quickly.",
		File: model.FileMetadata{Name: "req.txt", Extension: ".txt"},
	}

	r := New()
	refined, err := r.Refine(context.Background(), raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if !strings.Contains(refined.Text, "### 3-1. Technical Requirements") {
		t.Errorf("expected promoted heading, got:\n%s", refined.Text)
	}
}

func TestRefine_NoiseCleanup(t *testing.T) {
	raw := &model.RawContent{
		Text: "## Paragraph 3\nReal content here.\n[Figure] chart of results\n\n\n\nMore    content.",
		File: model.FileMetadata{Name: "noisy.txt"},
	}

	r := New()
	refined, err := r.Refine(context.Background(), raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if strings.Contains(refined.Text, "Paragraph 3") {
		t.Errorf("artificial heading not stripped: %q", refined.Text)
	}
	if strings.Contains(refined.Text, "[Figure]") {
		t.Errorf("image placeholder not stripped: %q", refined.Text)
	}
	if strings.Contains(refined.Text, "\n\n\n") {
		t.Errorf("excess newlines not collapsed: %q", refined.Text)
	}
	if strings.Contains(refined.Text, "More    content") {
		t.Errorf("horizontal whitespace not collapsed: %q", refined.Text)
	}
}

func TestRefine_SectionCoverage(t *testing.T) {
	raw := &model.RawContent{
		Text: "# Title\n\nIntro paragraph.\n\n## Background\n\nSome background.\n\n## Method\n\nDetails.",
		File: model.FileMetadata{Name: "doc.md"},
	}

	r := New()
	refined, err := r.Refine(context.Background(), raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if len(refined.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(refined.Sections))
	}

	for i, s := range refined.Sections {
		if s.Start >= s.End {
			t.Errorf("section %d has invalid range [%d,%d)", i, s.Start, s.End)
		}
		if i > 0 && s.Start != refined.Sections[i-1].End {
			t.Errorf("section %d does not begin where section %d ends", i, i-1)
		}
		if s.Content != refined.Text[s.Start:s.End] {
			t.Errorf("section %d content does not match its offsets", i)
		}
	}

	last := refined.Sections[len(refined.Sections)-1]
	if last.End != len(refined.Text) {
		t.Errorf("last section ends at %d, want text length %d", last.End, len(refined.Text))
	}
}

func TestRefine_StructuredBlockConversion(t *testing.T) {
	raw := &model.RawContent{
		Text: "fallback text",
		Blocks: []model.TextBlock{
			{Content: "Overview", Type: model.BlockTypeHeading, HeadingLevel: 1, PageNumber: 1, Order: 0},
			{Content: "First point", Type: model.BlockTypeListItem, PageNumber: 1, Order: 1},
			{Content: "Quoted line", Type: model.BlockTypeQuote, PageNumber: 1, Order: 2},
			{Content: "Remember this", Type: model.BlockTypeNote, PageNumber: 1, Order: 3},
			{Content: "Page 1 of 9", Type: model.BlockTypeFooter, PageNumber: 1, Order: 4},
		},
		File: model.FileMetadata{Name: "blocks.pdf", Extension: ".pdf"},
	}

	r := New()
	refined, err := r.Refine(context.Background(), raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	for _, want := range []string{
		"# Overview",
		"- First point",
		"> Quoted line",
		"> **Note:** Remember this",
		"<!-- footer: Page 1 of 9 -->",
	} {
		if !strings.Contains(refined.Text, want) {
			t.Errorf("missing %q in:\n%s", want, refined.Text)
		}
	}
}

func TestRefine_PositionOrderedInterleaving(t *testing.T) {
	// PDF coordinates: larger Y is higher on the page, so the Y=700 block
	// must render before the Y=300 block even though its Order is later.
	raw := &model.RawContent{
		Blocks: []model.TextBlock{
			{Content: "Lower on page", Type: model.BlockTypeParagraph, PageNumber: 1, Order: 0,
				Location: &model.BlockLocation{Top: 300}},
			{Content: "Higher on page", Type: model.BlockTypeParagraph, PageNumber: 1, Order: 1,
				Location: &model.BlockLocation{Top: 700}},
			{Content: "Second page", Type: model.BlockTypeParagraph, PageNumber: 2, Order: 2,
				Location: &model.BlockLocation{Top: 750}},
		},
		Images: []model.ImageInfo{
			{ID: "img1", Caption: "diagram", Position: 0,
				Properties: map[string]string{"PageNumber": "1", "BoundsBottom": "500"}},
		},
		File: model.FileMetadata{Name: "pos.pdf"},
	}

	r := New()
	refined, err := r.Refine(context.Background(), raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	higher := strings.Index(refined.Text, "Higher on page")
	img := strings.Index(refined.Text, "![diagram]")
	lower := strings.Index(refined.Text, "Lower on page")
	second := strings.Index(refined.Text, "Second page")

	if higher < 0 || img < 0 || lower < 0 || second < 0 {
		t.Fatalf("missing content in:\n%s", refined.Text)
	}
	if !(higher < img && img < lower && lower < second) {
		t.Errorf("wrong interleave order: higher=%d img=%d lower=%d second=%d", higher, img, lower, second)
	}
}

type fakeConverter struct {
	result string
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, _ *model.RawContent) (string, error) {
	return f.result, f.err
}

func (f *fakeConverter) Name() string { return "fake" }

func TestRefine_ConverterFallback(t *testing.T) {
	raw := &model.RawContent{
		Text: "plain fallback",
		File: model.FileMetadata{Name: "f.html"},
	}

	t.Run("converter used when no structured data", func(t *testing.T) {
		r := NewWithConverter(&fakeConverter{result: "# Converted\n\nBody from the converter."})
		refined, err := r.Refine(context.Background(), raw, DefaultOptions())
		if err != nil {
			t.Fatalf("Refine failed: %v", err)
		}
		if !strings.Contains(refined.Text, "# Converted") {
			t.Errorf("converter output not used: %q", refined.Text)
		}
		if !refined.Info.UsedLLM {
			t.Error("Info.UsedLLM should be set")
		}
	})

	t.Run("converter failure degrades to raw text", func(t *testing.T) {
		r := NewWithConverter(&fakeConverter{err: errors.New("boom")})
		refined, err := r.Refine(context.Background(), raw, DefaultOptions())
		if err != nil {
			t.Fatalf("Refine should not fail on converter error: %v", err)
		}
		if !strings.Contains(refined.Text, "plain fallback") {
			t.Errorf("raw text not preserved: %q", refined.Text)
		}
		if len(refined.Warnings) == 0 {
			t.Error("expected a degradation warning")
		}
		if refined.Info.UsedLLM {
			t.Error("Info.UsedLLM should not be set on failure")
		}
	})
}

func TestRefine_QualityScores(t *testing.T) {
	raw := &model.RawContent{
		Text: "# Title\n\nNormal prose with several reasonable words in it.",
		File: model.FileMetadata{Name: "q.md"},
	}

	r := New()
	refined, err := r.Refine(context.Background(), raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	q := refined.Quality
	for name, score := range map[string]float64{
		"StructureScore": q.StructureScore,
		"CleanupScore":   q.CleanupScore,
		"RetentionScore": q.RetentionScore,
		"Confidence":     q.Confidence,
	} {
		if score < 0 || score > 1 {
			t.Errorf("%s = %f out of [0,1]", name, score)
		}
	}

	// Sections but no structures: structure score is the middle tier.
	if q.StructureScore != 0.7 {
		t.Errorf("StructureScore = %f, want 0.7", q.StructureScore)
	}
}

func TestRefine_OptionsDisableSteps(t *testing.T) {
	raw := &model.RawContent{
		Text: "1. Section One\n\ncontent",
		File: model.FileMetadata{Name: "opt.txt"},
	}

	opts := DefaultOptions()
	opts.BuildSections = false

	r := New()
	refined, err := r.Refine(context.Background(), raw, opts)
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if strings.Contains(refined.Text, "## 1. Section One") {
		t.Error("numbered promotion ran with BuildSections disabled")
	}
	if len(refined.Sections) != 0 {
		t.Error("sections built with BuildSections disabled")
	}
}

func TestRefine_EmptyText(t *testing.T) {
	raw := &model.RawContent{File: model.FileMetadata{Name: "empty.txt"}}

	r := New()
	refined, err := r.Refine(context.Background(), raw, DefaultOptions())
	if err != nil {
		t.Fatalf("Refine failed on empty text: %v", err)
	}
	if refined.Text != "" {
		t.Errorf("expected empty refined text, got %q", refined.Text)
	}
}

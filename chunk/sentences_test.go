package chunk

import (
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three simple sentences",
			text: "First sentence here. Second sentence follows. Third one ends it.",
			want: []string{"First sentence here.", "Second sentence follows.", "Third one ends it."},
		},
		{
			name: "abbreviation not a boundary",
			text: "Dr. Smith arrived late. The meeting had started.",
			want: []string{"Dr. Smith arrived late.", "The meeting had started."},
		},
		{
			name: "decimal number not a boundary",
			text: "The value is 3.14 exactly. Nobody disagreed.",
			want: []string{"The value is 3.14 exactly.", "Nobody disagreed."},
		},
		{
			name: "question and exclamation",
			text: "Is this right? It is! Good.",
			want: []string{"Is this right?", "It is!", "Good."},
		},
		{
			name: "trailing text without punctuation",
			text: "Complete sentence. Trailing fragment",
			want: []string{"Complete sentence.", "Trailing fragment"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spans := splitSentences(tc.text)
			if len(spans) != len(tc.want) {
				t.Fatalf("got %d sentences, want %d: %v", len(spans), len(tc.want), spans)
			}
			for i, sp := range spans {
				got := tc.text[sp.start:sp.end]
				if got != tc.want[i] {
					t.Errorf("sentence %d: got %q, want %q", i, got, tc.want[i])
				}
			}
		})
	}
}

func TestSplitSentencesOffsets(t *testing.T) {
	text := "One here. Two there. Three everywhere."
	spans := splitSentences(text)

	prevEnd := 0
	for i, sp := range spans {
		if sp.start < prevEnd {
			t.Errorf("sentence %d starts at %d before previous end %d", i, sp.start, prevEnd)
		}
		if sp.end <= sp.start {
			t.Errorf("sentence %d has empty span [%d,%d)", i, sp.start, sp.end)
		}
		if sp.end > len(text) {
			t.Errorf("sentence %d end %d past text length %d", i, sp.end, len(text))
		}
		prevEnd = sp.end
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := "First paragraph line one.\nStill the first paragraph.\n\nSecond paragraph.\n\n\n\nThird paragraph."
	spans := splitParagraphs(text)

	want := []string{
		"First paragraph line one.\nStill the first paragraph.",
		"Second paragraph.",
		"Third paragraph.",
	}
	if len(spans) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(spans), len(want))
	}
	for i, sp := range spans {
		if got := text[sp.start:sp.end]; got != want[i] {
			t.Errorf("paragraph %d: got %q, want %q", i, got, want[i])
		}
	}
}

func TestSplitParagraphsEmpty(t *testing.T) {
	if got := splitParagraphs(""); len(got) != 0 {
		t.Errorf("expected no paragraphs from empty text, got %v", got)
	}
	if got := splitParagraphs("\n\n\n"); len(got) != 0 {
		t.Errorf("expected no paragraphs from blank text, got %v", got)
	}
}

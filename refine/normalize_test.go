package refine

import (
	"regexp"
	"strings"
	"testing"
)

func TestNormalizeMarkdown_Idempotent(t *testing.T) {
	inputs := []struct {
		name string
		text string
	}{
		{"plain prose", "Just a paragraph.\n\nAnother paragraph."},
		{"heading jump", "# One\n\ntext\n\n### Deep\n\nmore text"},
		{"empty heading chain", "# A\n\n## B\n\n## C\n\ncontent"},
		{"messy list", "* one\n+ two\n1) three\n- four\n- five\n- six\n\ntail"},
		{"ragged table", "| A | B |\n| --- |\n| 1 | 2 | 3 |\n\nafter"},
		{"excess blanks", "a\n\n\n\n\nb   \nc\t\n"},
		{"empty", ""},
		{"only heading", "## Lonely"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			once := NormalizeMarkdown(tt.text)
			twice := NormalizeMarkdown(once)
			if once != twice {
				t.Errorf("not idempotent:\nonce:  %q\ntwice: %q", once, twice)
			}
		})
	}
}

func TestNormalizeMarkdown_HeadingMonotonicity(t *testing.T) {
	inputs := []string{
		"# A\n\ntext\n\n#### B\n\ntext\n\n###### C\n\ntext",
		"## Start\n\nbody\n\n# Up\n\nbody\n\n##### Down\n\nbody",
		"### First\n\nx\n\n# Second\n\ny\n\n### Third\n\nz",
	}

	headingRe := regexp.MustCompile(`^(#{1,6}) `)
	for _, input := range inputs {
		out := NormalizeMarkdown(input)

		prev := 0
		for _, line := range strings.Split(out, "\n") {
			m := headingRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			level := len(m[1])
			if prev > 0 && level > prev+1 {
				t.Errorf("heading jump from %d to %d in:\n%s", prev, level, out)
			}
			prev = level
		}
	}
}

func TestNormalizeMarkdown_ClampsJump(t *testing.T) {
	out := NormalizeMarkdown("# Top\n\nintro\n\n### Jumped\n\nbody")
	if !strings.Contains(out, "## Jumped") {
		t.Errorf("H3 after H1 should become H2, got:\n%s", out)
	}
}

func TestNormalizeMarkdown_RemovesEmptyHeadings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		gone    []string
		present []string
	}{
		{
			name:    "heading before equal heading",
			input:   "## Empty\n\n## Full\n\ncontent",
			gone:    []string{"## Empty"},
			present: []string{"## Full", "content"},
		},
		{
			name:    "trailing heading",
			input:   "content\n\n## Trailing",
			gone:    []string{"## Trailing"},
			present: []string{"content"},
		},
		{
			name:    "parent with subtree stays",
			input:   "# Parent\n\n## Child\n\nbody",
			present: []string{"# Parent", "## Child", "body"},
		},
		{
			name: "cascading removal",
			// Dropping the childless H4 leaves the H2 childless too.
			input:   "## A\n\n#### B\n\n## C\n\nbody",
			gone:    []string{"A", "B"},
			present: []string{"## C", "body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NormalizeMarkdown(tt.input)
			for _, g := range tt.gone {
				if strings.Contains(out, g) {
					t.Errorf("%q should be removed from:\n%s", g, out)
				}
			}
			for _, p := range tt.present {
				if !strings.Contains(out, p) {
					t.Errorf("%q should be kept in:\n%s", p, out)
				}
			}
		})
	}
}

func TestNormalizeMarkdown_ListMarkers(t *testing.T) {
	out := NormalizeMarkdown("* star\n+ plus\n- dash\n1) paren\n\ntail")

	for _, want := range []string{"- star", "- plus", "- dash", "1. paren"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "* star") || strings.Contains(out, "1) paren") {
		t.Errorf("old markers survived:\n%s", out)
	}
}

func TestNormalizeMarkdown_TableColumns(t *testing.T) {
	out := NormalizeMarkdown("| A | B | C |\n| --- | --- |\n| 1 |\n\ntail")

	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := splitTableRow(line)
		if len(cells) != 3 {
			t.Errorf("row %q has %d columns, want 3", line, len(cells))
		}
	}
}

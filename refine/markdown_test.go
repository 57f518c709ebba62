package refine

import (
	"strings"
	"testing"

	"github.com/tsawler/refinery/model"
)

func TestTableToMarkdown_RoundTrip(t *testing.T) {
	table := &model.TableData{
		Headers: []string{"Name", "Role", "Team"},
		Cells: [][]string{
			{"Ann", "Engineer", "Core"},
			{"Bo", "Designer", "UX"},
			{"Cy", "Manager", "Ops"},
			{"Di", "Analyst", "Data"},
		},
		Confidence: 1.0,
	}

	md := TableToMarkdown(table)
	lines := strings.Split(md, "\n")

	// N data rows render as header + separator + N rows.
	if len(lines) != table.RowCount()+2 {
		t.Fatalf("expected %d lines, got %d:\n%s", table.RowCount()+2, len(lines), md)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
			t.Errorf("line %d is not pipe-delimited: %q", i, line)
		}
	}
}

func TestTableToMarkdown_EscapesCells(t *testing.T) {
	table := &model.TableData{
		Headers: []string{"Expr", "Note"},
		Cells: [][]string{
			{"a|b", "pipe inside"},
			{"multi\nline", "newline inside"},
		},
		Confidence: 1.0,
	}

	md := TableToMarkdown(table)
	if !strings.Contains(md, `a\|b`) {
		t.Errorf("pipe not escaped:\n%s", md)
	}
	if strings.Count(md, "\n") != 3 {
		t.Errorf("embedded newline not stripped:\n%s", md)
	}
	if !strings.Contains(md, "multi line") {
		t.Errorf("newline should flatten to space:\n%s", md)
	}
}

func TestTableToMarkdown_HeaderSources(t *testing.T) {
	t.Run("first row as header", func(t *testing.T) {
		table := &model.TableData{
			Cells:     [][]string{{"H1", "H2"}, {"a", "b"}},
			HasHeader: true,
		}
		md := TableToMarkdown(table)
		lines := strings.Split(md, "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), md)
		}
		if !strings.Contains(lines[0], "H1") {
			t.Errorf("first row should become header:\n%s", md)
		}
	})

	t.Run("synthesized headers", func(t *testing.T) {
		table := &model.TableData{
			Cells: [][]string{{"a", "b", "c"}},
		}
		md := TableToMarkdown(table)
		for _, want := range []string{"Col1", "Col2", "Col3"} {
			if !strings.Contains(md, want) {
				t.Errorf("missing synthesized header %q:\n%s", want, md)
			}
		}
	})

	t.Run("ragged rows padded", func(t *testing.T) {
		table := &model.TableData{
			Headers: []string{"A"},
			Cells:   [][]string{{"1", "2", "3"}},
		}
		md := TableToMarkdown(table)
		for _, line := range strings.Split(md, "\n") {
			if n := strings.Count(line, "|") - strings.Count(line, `\|`); n != 4 {
				t.Errorf("row %q should have 4 unescaped pipes, has %d", line, n)
			}
		}
	})
}

func TestTableToMarkdown_Alignments(t *testing.T) {
	table := &model.TableData{
		Headers: []string{"L", "R", "C", "J"},
		Cells:   [][]string{{"1", "2", "3", "4"}},
		ColumnAlignments: []model.ColumnAlignment{
			model.AlignLeft, model.AlignRight, model.AlignCenter, model.AlignJustify,
		},
	}

	md := TableToMarkdown(table)
	lines := strings.Split(md, "\n")
	if len(lines) < 2 {
		t.Fatalf("unexpected output:\n%s", md)
	}
	if lines[1] != "| :--- | ---: | :---: | --- |" {
		t.Errorf("separator = %q", lines[1])
	}
}

func TestTableToMarkdown_LowConfidenceComment(t *testing.T) {
	table := &model.TableData{
		Headers:        []string{"A"},
		Cells:          [][]string{{"x"}},
		Confidence:     0.4,
		NeedsLlmAssist: true,
	}

	md := TableToMarkdown(table)
	if !strings.Contains(md, "low confidence") {
		t.Errorf("expected low-confidence comment:\n%s", md)
	}
}

func TestTableToMarkdown_PlainTextFallback(t *testing.T) {
	table := &model.TableData{PlainTextFallback: "just text"}
	if got := TableToMarkdown(table); got != "just text" {
		t.Errorf("fallback = %q", got)
	}
}

func TestRenderBlock_HeadingClamp(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "# Title"},
		{3, "### Title"},
		{9, "###### Title"},
	}

	for _, tt := range tests {
		b := &model.TextBlock{Content: "Title", Type: model.BlockTypeHeading, HeadingLevel: tt.level}
		if got := renderBlock(b); got != tt.want {
			t.Errorf("level %d: got %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestRenderBlock_OrderedListIndent(t *testing.T) {
	b := &model.TextBlock{
		Content:       "nested item",
		Type:          model.BlockTypeListItem,
		ListLevel:     2,
		IsOrderedList: true,
	}
	if got := renderBlock(b); got != "    1. nested item" {
		t.Errorf("got %q", got)
	}
}

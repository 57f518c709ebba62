package refine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/refinery/model"
)

// contentItem is the union of the three positioned things that can appear in
// a document: a text block, a table, or an image. Items are ordered by page
// ascending, then Y descending (PDF origin is bottom-left, so a larger Y is
// higher on the page), then extraction order.
type contentItem struct {
	block *model.TextBlock
	table *model.TableData
	image *model.ImageInfo

	page  int
	y     float64
	hasY  bool
	order int
}

func blockItem(b *model.TextBlock, order int) contentItem {
	item := contentItem{block: b, page: b.PageNumber, order: order}
	if b.Location != nil {
		item.y = b.Location.Top
		item.hasY = true
	}
	return item
}

func tableItem(t *model.TableData, order int) contentItem {
	return contentItem{table: t, page: t.PageNumber, order: order}
}

func imageItem(img *model.ImageInfo, order int) contentItem {
	item := contentItem{image: img, order: order}
	if v, ok := img.Properties["PageNumber"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			item.page = n
		}
	}
	if v, ok := img.Properties["BoundsBottom"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			item.y = f
			item.hasY = true
		}
	}
	return item
}

// renderStructured renders the raw content's blocks, tables, and images as
// markdown in document position order. The plain text argument is the
// fallback when nothing renders.
func renderStructured(ctx context.Context, raw *model.RawContent, fallback string, opts Options) (string, error) {
	items := make([]contentItem, 0, len(raw.Blocks)+len(raw.Tables)+len(raw.Images))

	order := 0
	if opts.ConvertBlocksToMarkdown {
		for i := range raw.Blocks {
			items = append(items, blockItem(&raw.Blocks[i], order))
			order++
		}
	}
	if opts.ConvertTablesToMarkdown {
		for i := range raw.Tables {
			items = append(items, tableItem(&raw.Tables[i], order))
			order++
		}
	}
	for i := range raw.Images {
		items = append(items, imageItem(&raw.Images[i], order))
		order++
	}

	if len(items) == 0 {
		return fallback, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.page != b.page {
			return a.page < b.page
		}
		if a.hasY && b.hasY && a.y != b.y {
			return a.y > b.y
		}
		return a.order < b.order
	})

	var sb strings.Builder
	for i, item := range items {
		if i%32 == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}

		var rendered string
		switch {
		case item.block != nil:
			rendered = renderBlock(item.block)
		case item.table != nil:
			rendered = TableToMarkdown(item.table)
		case item.image != nil:
			rendered = renderImage(item.image)
		}
		if rendered == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(rendered)
	}

	if sb.Len() == 0 {
		return fallback, nil
	}
	return sb.String(), nil
}

// renderBlock maps one text block to its markdown form.
func renderBlock(b *model.TextBlock) string {
	content := strings.TrimSpace(b.Content)
	if content == "" {
		return ""
	}

	switch b.Type {
	case model.BlockTypeHeading:
		level := b.HeadingLevel
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + content

	case model.BlockTypeListItem:
		marker := "-"
		if b.IsOrderedList {
			marker = "1."
		}
		indent := strings.Repeat("  ", b.ListLevel)
		return indent + marker + " " + content

	case model.BlockTypeCodeBlock:
		return "```\n" + strings.TrimRight(b.Content, "\n") + "\n```"

	case model.BlockTypeQuote:
		return quoteLines(content, "> ")

	case model.BlockTypeHeader:
		return "<!-- header: " + commentSafe(content) + " -->"

	case model.BlockTypeFooter:
		return "<!-- footer: " + commentSafe(content) + " -->"

	case model.BlockTypeCaption:
		return "*" + content + "*"

	case model.BlockTypeNote:
		return "> **Note:** " + content

	default:
		// Paragraph, TocEntry, and anything unclassified pass through.
		return content
	}
}

func renderImage(img *model.ImageInfo) string {
	caption := img.Caption
	if caption == "" {
		caption = img.ID
	}
	target := img.Ref
	if target == "" {
		target = img.ID
	}
	return fmt.Sprintf("![%s](%s)", caption, target)
}

func quoteLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func commentSafe(s string) string {
	return strings.ReplaceAll(s, "--", "-")
}

// TableToMarkdown renders extracted table data as a standard markdown table:
// header row, alignment separator row, then data rows. The column count is
// the widest row; headers are padded or truncated to it. Cell text has pipes
// escaped and embedded newlines flattened. Tables flagged NeedsLlmAssist get
// a trailing HTML comment noting low extraction confidence. Empty tables
// fall back to their plain-text representation.
func TableToMarkdown(t *model.TableData) string {
	if t.IsEmpty() {
		return strings.TrimSpace(t.PlainTextFallback)
	}

	cols := t.ColumnCount()
	if cols == 0 {
		return ""
	}

	headers := make([]string, 0, cols)
	rows := t.Cells
	switch {
	case len(t.Headers) > 0:
		headers = append(headers, t.Headers...)
	case t.HasHeader && len(rows) > 0:
		headers = append(headers, rows[0]...)
		rows = rows[1:]
	default:
		for i := 0; i < cols; i++ {
			headers = append(headers, "Col"+strconv.Itoa(i+1))
		}
	}

	// Pad or truncate the header row to the column count.
	for len(headers) < cols {
		headers = append(headers, "")
	}
	headers = headers[:cols]

	var sb strings.Builder
	writeRow(&sb, headers, cols)
	writeSeparator(&sb, t.ColumnAlignments, cols)
	for _, row := range rows {
		writeRow(&sb, row, cols)
	}

	if t.NeedsLlmAssist {
		sb.WriteString(fmt.Sprintf("<!-- table extracted with low confidence (%.2f) -->\n", t.Confidence))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeRow(sb *strings.Builder, cells []string, cols int) {
	sb.WriteString("|")
	for i := 0; i < cols; i++ {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(escapeCell(cell))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func writeSeparator(sb *strings.Builder, alignments []model.ColumnAlignment, cols int) {
	sb.WriteString("|")
	for i := 0; i < cols; i++ {
		marker := "---"
		if i < len(alignments) {
			switch alignments[i] {
			case model.AlignLeft:
				marker = ":---"
			case model.AlignRight:
				marker = "---:"
			case model.AlignCenter:
				marker = ":---:"
			}
		}
		sb.WriteString(" ")
		sb.WriteString(marker)
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

// escapeCell makes cell text safe inside a markdown table row.
func escapeCell(cell string) string {
	cell = strings.ReplaceAll(cell, "\r\n", " ")
	cell = strings.ReplaceAll(cell, "\n", " ")
	cell = strings.ReplaceAll(cell, "|", `\|`)
	return strings.TrimSpace(cell)
}

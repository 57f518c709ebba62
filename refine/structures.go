package refine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/refinery/model"
)

var (
	fencedCodeRe = regexp.MustCompile("(?ms)^```([A-Za-z0-9+#_-]*)[ \t]*\n(.*?)^```[ \t]*$")

	markdownTableRe = regexp.MustCompile(`(?m)^\|.*\|[ \t]*\n\|[ \t:\|-]+\|[ \t]*\n(?:^\|.*\|[ \t]*\n?)+`)

	listBlockRe = regexp.MustCompile(`(?m)(?:^[ \t]*(?:[-*+]|\d+[.)])[ \t]+.+(?:\n|$)){3,}`)

	listItemRe = regexp.MustCompile(`^[ \t]*([-*+]|\d+[.)])[ \t]+(.+)$`)
)

// extractStructures scans normalized markdown and records fenced code
// blocks, markdown tables, and lists (3+ consecutive marked lines) as typed
// structured elements, each with its character-offset location.
func extractStructures(text string) []model.StructuredElement {
	var elements []model.StructuredElement
	elements = append(elements, extractCodeBlocks(text)...)
	elements = append(elements, extractMarkdownTables(text)...)
	elements = append(elements, extractLists(text)...)
	return elements
}

func extractCodeBlocks(text string) []model.StructuredElement {
	var elements []model.StructuredElement
	for _, loc := range fencedCodeRe.FindAllStringSubmatchIndex(text, -1) {
		lang := text[loc[2]:loc[3]]
		content := text[loc[4]:loc[5]]
		elements = append(elements, model.StructuredElement{
			Type: model.StructureCode,
			Code: &model.CodeData{
				Language: lang,
				Content:  strings.TrimRight(content, "\n"),
			},
			Location: model.StructureLocation{Start: loc[0], End: loc[1]},
		})
	}
	return elements
}

func extractMarkdownTables(text string) []model.StructuredElement {
	var elements []model.StructuredElement
	for _, loc := range markdownTableRe.FindAllStringIndex(text, -1) {
		block := text[loc[0]:loc[1]]
		content := parseMarkdownTable(block)
		if content == nil {
			continue
		}
		elements = append(elements, model.StructuredElement{
			Type:     model.StructureTable,
			Table:    content,
			Location: model.StructureLocation{Start: loc[0], End: loc[1]},
		})
	}
	return elements
}

// parseMarkdownTable converts a markdown table block into row dictionaries
// keyed by header name.
func parseMarkdownTable(block string) *model.TableContent {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	if len(lines) < 3 {
		return nil
	}

	headers := splitTableRow(lines[0])
	rows := make([]map[string]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		cells := splitTableRow(line)
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return &model.TableContent{Headers: headers, Rows: rows}
}

func extractLists(text string) []model.StructuredElement {
	var elements []model.StructuredElement
	for _, loc := range listBlockRe.FindAllStringIndex(text, -1) {
		block := text[loc[0]:loc[1]]
		items, ordered := parseListBlock(block)
		if len(items) < 3 {
			continue
		}
		elements = append(elements, model.StructuredElement{
			Type: model.StructureList,
			List: &model.ListData{
				Items:   items,
				Ordered: ordered,
			},
			Location: model.StructureLocation{Start: loc[0], End: loc[1]},
		})
	}
	return elements
}

// parseListBlock returns the item texts and whether the list is ordered,
// classified by the first marker.
func parseListBlock(block string) ([]string, bool) {
	var items []string
	ordered := false
	for i, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		m := listItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if i == 0 {
			ordered = m[1] != "-" && m[1] != "*" && m[1] != "+"
		}
		items = append(items, strings.TrimSpace(m[2]))
	}
	return items, ordered
}

// structuresFromTables converts the original extracted TableData into
// structured elements. True character offsets are not trackable after
// markdown conversion, so these carry the zero location.
func structuresFromTables(tables []model.TableData) []model.StructuredElement {
	var elements []model.StructuredElement
	for i := range tables {
		t := &tables[i]
		if t.IsEmpty() {
			continue
		}

		cols := t.ColumnCount()
		headers := make([]string, 0, cols)
		rows := t.Cells
		switch {
		case len(t.Headers) > 0:
			headers = append(headers, t.Headers...)
		case t.HasHeader && len(rows) > 0:
			headers = append(headers, rows[0]...)
			rows = rows[1:]
		default:
			for j := 0; j < cols; j++ {
				headers = append(headers, "Col"+strconv.Itoa(j+1))
			}
		}
		for len(headers) < cols {
			headers = append(headers, "")
		}
		headers = headers[:cols]

		rowMaps := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			m := make(map[string]string, cols)
			for j, h := range headers {
				if j < len(row) {
					m[h] = row[j]
				} else {
					m[h] = ""
				}
			}
			rowMaps = append(rowMaps, m)
		}

		elements = append(elements, model.StructuredElement{
			Type:  model.StructureTable,
			Table: &model.TableContent{Headers: headers, Rows: rowMaps},
		})
	}
	return elements
}

package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/refinery/model"
)

// HTMLFile reads an HTML file into raw content.
func HTMLFile(path string) (*model.RawContent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract html: %w", err)
	}
	defer f.Close()

	raw, err := HTML(f)
	if err != nil {
		return nil, fmt.Errorf("extract html %s: %w", path, err)
	}

	raw.File.Name = filepath.Base(path)
	raw.File.Extension = strings.TrimPrefix(filepath.Ext(path), ".")
	if info, err := f.Stat(); err == nil {
		raw.File.Size = info.Size()
		raw.File.Modified = info.ModTime()
	}
	return raw, nil
}

// HTML parses an HTML document into raw content: classified text blocks,
// tables, image references, and the concatenated plain text.
func HTML(r io.Reader) (*model.RawContent, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	w := &htmlWalker{}
	w.head(doc)

	body := findNode(doc, "body")
	if body == nil {
		body = doc
	}
	w.walk(body, 0)

	raw := &model.RawContent{
		Text:   w.plainText(),
		Blocks: w.blocks,
		Tables: w.tables,
		Images: w.images,
	}
	raw.File.Title = w.title
	return raw, nil
}

// htmlWalker accumulates classified blocks while traversing the DOM.
type htmlWalker struct {
	title  string
	blocks []model.TextBlock
	tables []model.TableData
	images []model.ImageInfo
	order  int
}

var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "template": {},
	"svg": {}, "iframe": {}, "object": {}, "embed": {},
}

func (w *htmlWalker) head(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "title" {
		w.title = nodeText(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.head(c)
	}
}

func (w *htmlWalker) add(b model.TextBlock) {
	b.Order = w.order
	w.order++
	w.blocks = append(w.blocks, b)
}

func (w *htmlWalker) walk(n *html.Node, listLevel int) {
	if n.Type == html.ElementNode {
		if _, skip := skipTags[n.Data]; skip {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := nodeText(n); text != "" {
				w.add(model.TextBlock{
					Content:      text,
					Type:         model.BlockTypeHeading,
					HeadingLevel: int(n.Data[1] - '0'),
				})
			}
			return

		case "p":
			if text := nodeText(n); text != "" {
				w.add(model.TextBlock{Content: text, Type: model.BlockTypeParagraph})
			}
			return

		case "ul", "ol":
			ordered := n.Data == "ol"
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "li" {
					w.listItem(c, listLevel, ordered)
				}
			}
			return

		case "pre":
			if text := rawNodeText(n); strings.TrimSpace(text) != "" {
				w.add(model.TextBlock{
					Content: strings.Trim(text, "\n"),
					Type:    model.BlockTypeCodeBlock,
				})
			}
			return

		case "blockquote":
			if text := nodeText(n); text != "" {
				w.add(model.TextBlock{Content: text, Type: model.BlockTypeQuote})
			}
			return

		case "table":
			if table := w.parseTable(n); !table.IsEmpty() {
				w.tables = append(w.tables, table)
			}
			return

		case "img":
			w.images = append(w.images, imageFromNode(n, len(w.images)))
			return

		case "figcaption":
			if text := nodeText(n); text != "" {
				w.add(model.TextBlock{Content: text, Type: model.BlockTypeCaption})
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, listLevel)
	}
}

// listItem records one li and recurses into any nested list.
func (w *htmlWalker) listItem(li *html.Node, level int, ordered bool) {
	if text := directText(li); text != "" {
		w.add(model.TextBlock{
			Content:       text,
			Type:          model.BlockTypeListItem,
			ListLevel:     level,
			IsOrderedList: ordered,
		})
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			w.walk(c, level+1)
		}
	}
}

// parseTable flattens an HTML table into a TableData grid. thead rows (or a
// leading all-th row) become the header.
func (w *htmlWalker) parseTable(n *html.Node) model.TableData {
	table := model.TableData{Confidence: 1.0}

	var rows []*html.Node
	var headerRows []*html.Node
	var collect func(n *html.Node, inHead bool)
	collect = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead":
				collect(c, true)
			case "tbody", "tfoot":
				collect(c, inHead)
			case "tr":
				if inHead {
					headerRows = append(headerRows, c)
				} else {
					rows = append(rows, c)
				}
			}
		}
	}
	collect(n, false)

	if len(headerRows) > 0 {
		table.Headers = rowCells(headerRows[0])
		table.HasHeader = true
		rows = append(headerRows[1:], rows...)
	} else if len(rows) > 0 && allHeaderCells(rows[0]) {
		table.Headers = rowCells(rows[0])
		table.HasHeader = true
		rows = rows[1:]
	}

	for _, tr := range rows {
		if cells := rowCells(tr); len(cells) > 0 {
			table.Cells = append(table.Cells, cells)
		}
	}
	return table
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, nodeText(c))
		}
	}
	return cells
}

func allHeaderCells(tr *html.Node) bool {
	sawCell := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			sawCell = true
		case "td":
			return false
		}
	}
	return sawCell
}

func imageFromNode(n *html.Node, index int) model.ImageInfo {
	img := model.ImageInfo{
		ID:       fmt.Sprintf("img_%d", index+1),
		Position: index,
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "src":
			img.Ref = attr.Val
		case "alt", "title":
			if img.Caption == "" {
				img.Caption = attr.Val
			}
		}
	}
	return img
}

// plainText joins the walker's blocks into the document's plain text, with
// table fallbacks appended in document order.
func (w *htmlWalker) plainText() string {
	var b strings.Builder
	for _, block := range w.blocks {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.Content)
	}
	for _, table := range w.tables {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if len(table.Headers) > 0 {
			b.WriteString(strings.Join(table.Headers, "\t"))
			b.WriteString("\n")
		}
		for _, row := range table.Cells {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// nodeText extracts normalized text from a node and its descendants.
func nodeText(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

// rawNodeText extracts text preserving internal whitespace, for pre blocks.
func rawNodeText(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode {
		if _, skip := skipTags[n.Data]; skip {
			return
		}
		if n.Data == "br" {
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// directText extracts a node's text excluding nested block children, so a
// list item's own text is separated from its sublist.
func directText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			switch c.Data {
			case "ul", "ol", "div", "p", "table", "blockquote":
			default:
				collectText(c, &b)
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

package model

import "time"

// BlockType classifies a unit of raw extracted content.
type BlockType int

const (
	BlockTypeParagraph BlockType = iota
	BlockTypeHeading
	BlockTypeListItem
	BlockTypeCodeBlock
	BlockTypeQuote
	BlockTypeHeader
	BlockTypeFooter
	BlockTypeCaption
	BlockTypeTocEntry
	BlockTypeNote
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeParagraph:
		return "Paragraph"
	case BlockTypeHeading:
		return "Heading"
	case BlockTypeListItem:
		return "ListItem"
	case BlockTypeCodeBlock:
		return "CodeBlock"
	case BlockTypeQuote:
		return "Quote"
	case BlockTypeHeader:
		return "Header"
	case BlockTypeFooter:
		return "Footer"
	case BlockTypeCaption:
		return "Caption"
	case BlockTypeTocEntry:
		return "TocEntry"
	case BlockTypeNote:
		return "Note"
	default:
		return "Unknown"
	}
}

// ColumnAlignment describes horizontal alignment for a table column.
type ColumnAlignment int

const (
	AlignLeft ColumnAlignment = iota
	AlignRight
	AlignCenter
	AlignJustify
)

func (ca ColumnAlignment) String() string {
	switch ca {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	default:
		return "unknown"
	}
}

// FileMetadata identifies the source file of an extraction. Title is filled
// when the format exposes one (HTML head, document properties).
type FileMetadata struct {
	Name      string    `json:"name"`
	Extension string    `json:"extension"`
	Size      int64     `json:"size"`
	Title     string    `json:"title,omitempty"`
	Created   time.Time `json:"created,omitempty"`
	Modified  time.Time `json:"modified,omitempty"`
}

// BlockLocation is an optional bounding box for a text block. Only Top is
// guaranteed meaningful; it is used for position-aware interleaving with
// images. PDF coordinates are bottom-left origin, so a larger Top means
// higher on the page.
type BlockLocation struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// TextBlock is a classified unit of raw content produced by an extraction
// reader. Order is a monotonic sequence index for deterministic
// reconstruction when position data is absent.
type TextBlock struct {
	Content string    `json:"content"`
	Type    BlockType `json:"type"`

	// HeadingLevel is valid only when Type is BlockTypeHeading (1-6).
	HeadingLevel int `json:"heading_level,omitempty"`

	// ListLevel and IsOrderedList are valid only when Type is BlockTypeListItem.
	ListLevel     int  `json:"list_level,omitempty"`
	IsOrderedList bool `json:"is_ordered_list,omitempty"`

	PageNumber int            `json:"page_number,omitempty"`
	Order      int            `json:"order"`
	Location   *BlockLocation `json:"location,omitempty"`
}

// TableData is a grid of extracted table cells. Ragged rows are tolerated.
// When Cells is empty, PlainTextFallback carries whatever text the reader
// recovered.
type TableData struct {
	Cells   [][]string `json:"cells"`
	Headers []string   `json:"headers,omitempty"`

	// HasHeader indicates the first data row should be treated as a header
	// when Headers is empty.
	HasHeader bool `json:"has_header"`

	ColumnAlignments []ColumnAlignment `json:"column_alignments,omitempty"`

	// Confidence expresses extraction certainty (0-1).
	Confidence float64 `json:"confidence"`

	// NeedsLlmAssist is set by readers when confidence is low enough that a
	// language model should verify the reconstruction.
	NeedsLlmAssist bool `json:"needs_llm_assist,omitempty"`

	PageNumber        int    `json:"page_number,omitempty"`
	PlainTextFallback string `json:"plain_text_fallback,omitempty"`
}

// RowCount returns the number of data rows.
func (t *TableData) RowCount() int {
	return len(t.Cells)
}

// ColumnCount returns the widest row width, considering Headers as well.
func (t *TableData) ColumnCount() int {
	cols := len(t.Headers)
	for _, row := range t.Cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// IsEmpty reports whether the table carries no cell data at all.
func (t *TableData) IsEmpty() bool {
	return len(t.Cells) == 0 && len(t.Headers) == 0
}

// ImageInfo describes an image encountered during extraction.
type ImageInfo struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type,omitempty"`

	// Data holds raw image bytes when the reader embeds them; Ref is an
	// external reference when it does not.
	Data []byte `json:"-"`
	Ref  string `json:"ref,omitempty"`

	Caption  string `json:"caption,omitempty"`
	Position int    `json:"position"`

	// Properties is an open map for reader-supplied attributes such as
	// PageNumber, Width, Height, and BoundsBottom.
	Properties map[string]string `json:"properties,omitempty"`
}

// RawContent is the immutable extraction result consumed by the refiner.
// Text is never nil; it may be empty.
type RawContent struct {
	Text     string       `json:"text"`
	Tables   []TableData  `json:"tables,omitempty"`
	Blocks   []TextBlock  `json:"blocks,omitempty"`
	Images   []ImageInfo  `json:"images,omitempty"`
	File     FileMetadata `json:"file"`
	Warnings []string     `json:"warnings,omitempty"`
}

// HasStructuredData reports whether the reader recovered any structured
// tables or blocks beyond the plain text.
func (rc *RawContent) HasStructuredData() bool {
	return len(rc.Tables) > 0 || len(rc.Blocks) > 0
}

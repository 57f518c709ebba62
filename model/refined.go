package model

import "time"

// Section is a heading-delimited span of the refined text. Start and End are
// character offsets into RefinedContent.Text; sections are non-overlapping
// and ordered by Start.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Level   int    `json:"level"` // markdown heading depth, 1-6
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Content string `json:"content"`
}

// StructureType identifies the kind of a StructuredElement.
type StructureType int

const (
	StructureCode StructureType = iota
	StructureTable
	StructureList
)

func (st StructureType) String() string {
	switch st {
	case StructureCode:
		return "code"
	case StructureTable:
		return "table"
	case StructureList:
		return "list"
	default:
		return "unknown"
	}
}

// CodeData is the payload of a code StructuredElement.
type CodeData struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// TableContent is the payload of a table StructuredElement: one map per data
// row, keyed by header name.
type TableContent struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// ListData is the payload of a list StructuredElement.
type ListData struct {
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered"`
}

// StructureLocation is a character-offset range into the refined text.
// Both fields are zero when the true offsets are not determinable, as with
// elements converted from structured source data.
type StructureLocation struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// StructuredElement is a typed record for a code block, table, or list
// detected in (or converted into) the refined text. Exactly one of Code,
// Table, or List is set, matching Type.
type StructuredElement struct {
	Type     StructureType     `json:"type"`
	Caption  string            `json:"caption,omitempty"`
	Code     *CodeData         `json:"code,omitempty"`
	Table    *TableContent     `json:"table,omitempty"`
	List     *ListData         `json:"list,omitempty"`
	Location StructureLocation `json:"location"`
}

// DocumentMetadata carries document-level descriptive fields on the refined
// result.
type DocumentMetadata struct {
	FileName string    `json:"file_name"`
	FileType string    `json:"file_type"`
	FileSize int64     `json:"file_size"`
	Title    string    `json:"title,omitempty"`
	Created  time.Time `json:"created,omitempty"`
	Modified time.Time `json:"modified,omitempty"`
}

// RefinementQuality scores a refinement run. All scores are in [0,1].
type RefinementQuality struct {
	OriginalChars  int     `json:"original_chars"`
	RefinedChars   int     `json:"refined_chars"`
	StructureScore float64 `json:"structure_score"`
	CleanupScore   float64 `json:"cleanup_score"`
	RetentionScore float64 `json:"retention_score"`
	Confidence     float64 `json:"confidence"`
}

// RefinementInfo records how a refinement was produced.
type RefinementInfo struct {
	Refiner  string        `json:"refiner"`
	UsedLLM  bool          `json:"used_llm"`
	Duration time.Duration `json:"duration"`
}

// RefinedContent is the refiner's output: cleaned, structurally normalized
// markdown plus derived sections, structures, and quality scores. It is
// built once per refinement call and never mutated afterwards.
type RefinedContent struct {
	// RawID is a back-reference to the source file, not ownership.
	RawID string `json:"raw_id"`

	Text       string              `json:"text"`
	Sections   []Section           `json:"sections,omitempty"`
	Structures []StructuredElement `json:"structures,omitempty"`
	Metadata   DocumentMetadata    `json:"metadata"`
	Quality    RefinementQuality   `json:"quality"`
	Info       RefinementInfo      `json:"info"`
	Warnings   []string            `json:"warnings,omitempty"`
}

// SectionByOffset returns the section containing the given character offset,
// or nil if the offset falls before the first section.
func (rc *RefinedContent) SectionByOffset(offset int) *Section {
	for i := range rc.Sections {
		s := &rc.Sections[i]
		if offset >= s.Start && offset < s.End {
			return s
		}
	}
	return nil
}

// Title returns the document title, falling back to the first section title.
func (rc *RefinedContent) Title() string {
	if rc.Metadata.Title != "" {
		return rc.Metadata.Title
	}
	if len(rc.Sections) > 0 {
		return rc.Sections[0].Title
	}
	return ""
}

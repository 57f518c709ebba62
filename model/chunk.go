package model

import "strings"

// Strategy identifies which chunking strategy produced a chunk.
type Strategy int

const (
	// StrategyAuto lets the chunker pick a strategy from document
	// characteristics.
	StrategyAuto Strategy = iota
	// StrategySentence splits at sentence boundaries.
	StrategySentence
	// StrategyParagraph splits at paragraph boundaries.
	StrategyParagraph
	// StrategyToken splits by estimated token count.
	StrategyToken
	// StrategySemantic splits at scored semantic boundaries.
	StrategySemantic
	// StrategyHierarchical splits along the section hierarchy.
	StrategyHierarchical
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategySentence:
		return "sentence"
	case StrategyParagraph:
		return "paragraph"
	case StrategyToken:
		return "token"
	case StrategySemantic:
		return "semantic"
	case StrategyHierarchical:
		return "hierarchical"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a strategy name to a Strategy. Legacy aliases from
// earlier releases are accepted: Smart maps to Sentence, Intelligent to
// Semantic, FixedSize to Token, and PageLevel to Paragraph. Unrecognized
// names map to StrategyAuto.
func ParseStrategy(name string) Strategy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sentence", "smart":
		return StrategySentence
	case "paragraph", "pagelevel", "page_level":
		return StrategyParagraph
	case "token", "fixedsize", "fixed_size":
		return StrategyToken
	case "semantic", "intelligent":
		return StrategySemantic
	case "hierarchical":
		return StrategyHierarchical
	default:
		return StrategyAuto
	}
}

// SourceInfo identifies the document a chunk came from. It is identical
// across all chunks of one document.
type SourceInfo struct {
	Title       string `json:"title,omitempty"`
	SourceType  string `json:"source_type,omitempty"`
	FilePath    string `json:"file_path,omitempty"`
	TotalChunks int    `json:"total_chunks"`
}

// ChunkAnnotations holds the fixed set of enrichment annotations as named
// optional fields. Open-ended collaborator output goes in DocumentChunk.Props
// instead.
type ChunkAnnotations struct {
	Topic             string   `json:"topic,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	ContextualSummary string   `json:"contextual_summary,omitempty"`
}

// IsZero reports whether no annotation has been set.
func (a ChunkAnnotations) IsZero() bool {
	return a.Topic == "" && len(a.Keywords) == 0 && a.Summary == "" && a.ContextualSummary == ""
}

// DocumentChunk is a contiguous slice of refined text sized for retrieval.
// Content is never empty and is never altered after chunk creation; the
// enhancement stage only fills Annotations and Props.
type DocumentChunk struct {
	ID      string `json:"id"`
	Content string `json:"content"`

	// StartPosition and EndPosition are offsets into the refined text.
	// Chunks of one document are ordered by StartPosition.
	StartPosition int `json:"start_position"`
	EndPosition   int `json:"end_position"`

	Strategy    Strategy `json:"strategy"`
	ContentType string   `json:"content_type,omitempty"`

	// QualityScore is 0 until computed by the quality analyzer.
	QualityScore   float64 `json:"quality_score,omitempty"`
	Importance     float64 `json:"importance,omitempty"`
	RelevanceScore float64 `json:"relevance_score,omitempty"`

	TopicCategory  string `json:"topic_category,omitempty"`
	DocumentDomain string `json:"document_domain,omitempty"`

	Annotations ChunkAnnotations `json:"annotations,omitempty"`

	// Props is an open map for collaborator-supplied annotations that do
	// not fit the fixed Annotations set.
	Props map[string]string `json:"props,omitempty"`

	Source SourceInfo `json:"source"`

	// Oversize is set when a single indivisible unit exceeded the maximum
	// chunk size and was kept whole.
	Oversize bool `json:"oversize,omitempty"`
}

// Size returns the chunk content length in bytes.
func (c *DocumentChunk) Size() int {
	return len(c.Content)
}

// EstimatedTokens is a rough token estimate (chars/4).
func (c *DocumentChunk) EstimatedTokens() int {
	return len(c.Content) / 4
}

// SetProp records an open-ended annotation, allocating the map on first use.
func (c *DocumentChunk) SetProp(key, value string) {
	if c.Props == nil {
		c.Props = make(map[string]string)
	}
	c.Props[key] = value
}

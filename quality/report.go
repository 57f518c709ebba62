package quality

// Report is the analyzer's aggregate for one chunk set. It is built fresh
// for every Analyze call and never updated incrementally.
type Report struct {
	TotalChunks    int     `json:"total_chunks"`
	CompositeScore float64 `json:"composite_score"`

	SemanticCompleteness SemanticCompleteness `json:"semantic_completeness"`
	ContextPreservation  ContextPreservation  `json:"context_preservation"`
	InformationDensity   InformationDensity   `json:"information_density"`
	StructuralIntegrity  StructuralIntegrity  `json:"structural_integrity"`
	RetrievalReadiness   RetrievalReadiness   `json:"retrieval_readiness"`
	BoundaryQuality      BoundaryQuality      `json:"boundary_quality"`

	// ContentCoverage is only present when Analyze was given the source
	// text the chunks came from.
	ContentCoverage *ContentCoverage `json:"content_coverage,omitempty"`

	Recommendations []string `json:"recommendations"`
}

// SemanticCompleteness scores how many chunks read as complete, standalone
// prose.
type SemanticCompleteness struct {
	OverallScore          float64 `json:"overall_score"`
	CompleteSentenceRatio float64 `json:"complete_sentence_ratio"`
	CompleteThoughtRatio  float64 `json:"complete_thought_ratio"`
	OrphanRatio           float64 `json:"orphan_ratio"`
	BoundaryScore         float64 `json:"boundary_score"`
}

// ContextPreservation scores how well adjacent chunks carry shared context.
type ContextPreservation struct {
	OverallScore    float64 `json:"overall_score"`
	OverlapScore    float64 `json:"overlap_score"`
	ContinuityScore float64 `json:"continuity_score"`
	ReferenceScore  float64 `json:"reference_score"`
	WindowScore     float64 `json:"window_score"`
}

// InformationDensity scores the information content of chunk text.
type InformationDensity struct {
	OverallScore float64 `json:"overall_score"`
	TokenDensity float64 `json:"token_density"`
	Redundancy   float64 `json:"redundancy"`
	Uniqueness   float64 `json:"uniqueness"`
	Entropy      float64 `json:"entropy"`
}

// StructureFlag records structural findings for one chunk.
type StructureFlag struct {
	ChunkID            string `json:"chunk_id"`
	Preserved          int    `json:"preserved"`
	Broken             int    `json:"broken"`
	HasBrokenStructure bool   `json:"has_broken_structure"`
}

// StructuralIntegrity scores whether markdown structures survived chunking
// intact.
type StructuralIntegrity struct {
	OverallScore   float64         `json:"overall_score"`
	PreservedCount int             `json:"preserved_count"`
	BrokenCount    int             `json:"broken_count"`
	BrokenRatio    float64         `json:"broken_ratio"`
	ChunkFlags     []StructureFlag `json:"chunk_flags,omitempty"`
}

// RetrievalReadiness scores how well chunks would serve as standalone
// retrieval results.
type RetrievalReadiness struct {
	OverallScore    float64 `json:"overall_score"`
	SelfContainment float64 `json:"self_containment"`
	KeywordRichness float64 `json:"keyword_richness"`
	SummaryQuality  float64 `json:"summary_quality"`
	QueryMatch      float64 `json:"query_match"`
}

// BoundaryQuality scores chunk start/end cleanliness and inter-chunk
// transitions.
type BoundaryQuality struct {
	OverallScore    float64 `json:"overall_score"`
	CleanStartRatio float64 `json:"clean_start_ratio"`
	CleanEndRatio   float64 `json:"clean_end_ratio"`
	TransitionScore float64 `json:"transition_score"`
}

// ContentCoverage compares the chunk set against the source text it was cut
// from.
type ContentCoverage struct {
	OverallScore     float64 `json:"overall_score"`
	CoverageRatio    float64 `json:"coverage_ratio"`
	MissingRatio     float64 `json:"missing_ratio"`
	DuplicationRatio float64 `json:"duplication_ratio"`
}

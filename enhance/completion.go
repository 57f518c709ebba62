package enhance

import "context"

// Summary is the result of a summarization call.
type Summary struct {
	Text     string
	Keywords []string
}

// Metadata is the result of a metadata extraction call.
type Metadata struct {
	Keywords []string
	Entities []string
}

// StructureAnalysis is the result of a document structure call: section
// titles in document order plus the service's confidence in them.
type StructureAnalysis struct {
	Sections   []string
	Confidence float64
}

// Completion is a text-completion service. Every method may fail; callers
// must treat failure as "skip this enrichment" rather than abort. Check
// IsAvailable before relying on any call.
type Completion interface {
	// IsAvailable reports whether the service can currently be reached.
	IsAvailable() bool

	// Generate returns a free-form completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Summarize condenses text to at most maxLen characters, with keywords.
	Summarize(ctx context.Context, text string, maxLen int) (Summary, error)

	// ExtractMetadata pulls keywords and named entities from text.
	ExtractMetadata(ctx context.Context, text, docType string) (Metadata, error)

	// AnalyzeStructure proposes a section outline for unstructured text.
	AnalyzeStructure(ctx context.Context, text, docType string) (StructureAnalysis, error)

	// AssessQuality scores text on named quality dimensions in [0,1].
	AssessQuality(ctx context.Context, text string) (map[string]float64, error)
}

// ImageText is an image-to-text service. Same failure contract as
// Completion: absence and failure both mean "skip".
type ImageText interface {
	// IsAvailable reports whether OCR support is compiled in and working.
	IsAvailable() bool

	// ExtractText recognizes text in an image, returning the text and a
	// confidence estimate in [0,1].
	ExtractText(ctx context.Context, image []byte) (string, float64, error)
}

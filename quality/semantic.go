package quality

import (
	"strings"
	"unicode"

	"github.com/tsawler/refinery/model"
)

// completenessFactors are the per-chunk tests behind semantic completeness.
type completenessFactors struct {
	completeSentence bool // ends with terminal punctuation and is long enough to carry one
	completeThought  bool // at least two complete sentences and substantial length
	notOrphan        bool // not a short or unterminated fragment
	cleanStart       bool // begins with a capital, heading, or numbered marker
}

func (f completenessFactors) passed() int {
	n := 0
	for _, b := range []bool{f.completeSentence, f.completeThought, f.notOrphan, f.cleanStart} {
		if b {
			n++
		}
	}
	return n
}

func chunkCompleteness(content string) completenessFactors {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return completenessFactors{}
	}

	var f completenessFactors
	f.completeSentence = endsLikeSentence(trimmed) && len(trimmed) > 10

	sentences := splitSentenceStrings(trimmed)
	complete := 0
	for _, s := range sentences {
		if endsLikeSentence(s) && len(s) > 10 {
			complete++
		}
	}
	f.completeThought = complete >= 2 && len(trimmed) > 100

	f.notOrphan = len(trimmed) >= 50 && endsLikeSentence(trimmed)

	first := []rune(trimmed)[0]
	f.cleanStart = unicode.IsUpper(first) || startsClean(trimmed)

	return f
}

// scoreSemanticCompleteness evaluates how many chunks read as complete
// standalone prose. An empty chunk set scores zero.
func scoreSemanticCompleteness(chunks []model.DocumentChunk) SemanticCompleteness {
	if len(chunks) == 0 {
		return SemanticCompleteness{}
	}

	var sentenceHits, thoughtHits, orphans, cleanStarts int
	for _, c := range chunks {
		f := chunkCompleteness(c.Content)
		if f.completeSentence {
			sentenceHits++
		}
		if f.completeThought {
			thoughtHits++
		}
		if !f.notOrphan {
			orphans++
		}
		if f.cleanStart {
			cleanStarts++
		}
	}

	n := float64(len(chunks))
	m := SemanticCompleteness{
		CompleteSentenceRatio: float64(sentenceHits) / n,
		CompleteThoughtRatio:  float64(thoughtHits) / n,
		OrphanRatio:           float64(orphans) / n,
		BoundaryScore:         float64(cleanStarts) / n,
	}
	m.OverallScore = clamp01(
		0.3*m.CompleteSentenceRatio +
			0.3*m.CompleteThoughtRatio +
			0.2*(1-m.OrphanRatio) +
			0.2*m.BoundaryScore)
	return m
}

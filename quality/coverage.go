package quality

import (
	"strings"

	"github.com/tsawler/refinery/model"
)

// scoreContentCoverage compares the chunk set against the source text it was
// cut from: how much of the original length survived, how many sentences
// went missing, and how many chunks are exact duplicates of another.
func scoreContentCoverage(chunks []model.DocumentChunk, source string) *ContentCoverage {
	if strings.TrimSpace(source) == "" {
		return nil
	}

	m := &ContentCoverage{}
	if len(chunks) == 0 {
		return m
	}

	combined := 0
	seen := map[string]int{}
	duplicates := 0
	chunkSentences := 0
	for _, c := range chunks {
		combined += len(c.Content)
		seen[c.Content]++
		if seen[c.Content] > 1 {
			duplicates++
		}
		chunkSentences += len(splitSentenceStrings(c.Content))
	}

	m.CoverageRatio = float64(combined) / float64(len(source))

	sourceSentences := len(splitSentenceStrings(source))
	if sourceSentences > 0 {
		m.MissingRatio = clamp01(1 - float64(chunkSentences)/float64(sourceSentences))
	}

	m.DuplicationRatio = float64(duplicates) / float64(len(chunks))

	coverage := m.CoverageRatio
	if coverage > 1 {
		coverage = 1
	}
	m.OverallScore = clamp01(coverage * (1 - m.MissingRatio) * (1 - m.DuplicationRatio))
	return m
}

package quality

import (
	"strings"

	"github.com/tsawler/refinery/model"
)

// scoreBoundaryQuality evaluates chunk start/end cleanliness and the
// transitions between adjacent chunks. A single chunk has no boundaries to
// get wrong and scores 1.0 exactly.
func scoreBoundaryQuality(chunks []model.DocumentChunk) BoundaryQuality {
	if len(chunks) == 0 {
		return BoundaryQuality{}
	}
	if len(chunks) == 1 {
		return BoundaryQuality{
			OverallScore:    1.0,
			CleanStartRatio: 1.0,
			CleanEndRatio:   1.0,
			TransitionScore: 1.0,
		}
	}

	var cleanStarts, cleanEnds int
	for _, c := range chunks {
		if startsClean(c.Content) {
			cleanStarts++
		}
		if cleanEnd(c.Content) {
			cleanEnds++
		}
	}

	var transitionSum float64
	for i := 1; i < len(chunks); i++ {
		transitionSum += transitionScore(chunks[i-1].Content, chunks[i].Content)
	}

	n := float64(len(chunks))
	m := BoundaryQuality{
		CleanStartRatio: float64(cleanStarts) / n,
		CleanEndRatio:   float64(cleanEnds) / n,
		TransitionScore: clamp01(transitionSum / float64(len(chunks)-1)),
	}
	m.OverallScore = clamp01(
		0.35*m.CleanStartRatio +
			0.35*m.CleanEndRatio +
			0.30*m.TransitionScore)
	return m
}

// cleanEnd reports whether a chunk ends at a natural stopping point:
// terminal punctuation or a closing code fence.
func cleanEnd(content string) bool {
	t := strings.TrimSpace(content)
	if t == "" {
		return false
	}
	if strings.HasSuffix(t, "```") {
		return true
	}
	return endsLikeSentence(t)
}

// transitionScore rates the seam between two adjacent chunks.
func transitionScore(prev, curr string) float64 {
	score := 0.4 * overlapPairScore(prev, curr)

	if startsWithDiscourseMarker(curr) || strings.HasPrefix(strings.TrimSpace(curr), "#") {
		score += 0.3
	} else {
		score += 0.15
	}

	if cleanEnd(prev) {
		score += 0.15
	}
	if startsClean(curr) {
		score += 0.15
	}
	return clamp01(score)
}

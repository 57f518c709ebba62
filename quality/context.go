package quality

import (
	"strings"

	"github.com/tsawler/refinery/model"
)

const (
	maxOverlapScan = 256
	minOverlapScan = 3
)

// GetOverlapLength returns the length of the longest prefix of curr that is
// also a suffix of prev, scanning candidate lengths from 256 down to 3.
// Zero means no meaningful overlap.
func GetOverlapLength(prev, curr string) int {
	limit := maxOverlapScan
	if len(prev) < limit {
		limit = len(prev)
	}
	if len(curr) < limit {
		limit = len(curr)
	}
	for n := limit; n >= minOverlapScan; n-- {
		if prev[len(prev)-n:] == curr[:n] {
			return n
		}
	}
	return 0
}

var discourseMarkers = []string{
	"however", "therefore", "moreover", "furthermore", "consequently",
	"additionally", "thus", "meanwhile", "nevertheless", "in addition",
	"for example", "in contrast", "on the other hand", "as a result",
	"similarly", "in other words",
}

// startsWithDiscourseMarker reports whether the chunk opens with a
// connective that ties it back to the previous chunk.
func startsWithDiscourseMarker(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	for _, m := range discourseMarkers {
		if strings.HasPrefix(lower, m) {
			return true
		}
	}
	return false
}

var leadingPronouns = []string{
	"it ", "this ", "that ", "they ", "these ", "those ", "he ", "she ",
	"them ", "its ", "their ",
}

// startsWithUnresolvedPronoun reports whether the chunk opens with a pronoun
// whose antecedent lives in a previous chunk.
func startsWithUnresolvedPronoun(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	for _, p := range leadingPronouns {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// scoreContextPreservation evaluates how well adjacent chunks share context.
// A single chunk has no context to preserve and scores 1.0 exactly.
func scoreContextPreservation(chunks []model.DocumentChunk) ContextPreservation {
	if len(chunks) == 0 {
		return ContextPreservation{}
	}
	if len(chunks) == 1 {
		return ContextPreservation{
			OverallScore:    1.0,
			OverlapScore:    1.0,
			ContinuityScore: 1.0,
			ReferenceScore:  1.0,
			WindowScore:     1.0,
		}
	}

	var overlapSum, continuitySum, referenceSum float64
	pairs := len(chunks) - 1

	for i := 1; i < len(chunks); i++ {
		prev, curr := chunks[i-1].Content, chunks[i].Content

		overlapSum += overlapPairScore(prev, curr)

		if startsWithDiscourseMarker(curr) || strings.HasPrefix(strings.TrimSpace(curr), "#") {
			continuitySum += 1.0
		} else {
			continuitySum += 0.5
		}

		if startsWithUnresolvedPronoun(curr) && GetOverlapLength(prev, curr) == 0 {
			// Pronoun with its antecedent stranded in the previous chunk.
			referenceSum += 0.0
		} else {
			referenceSum += 1.0
		}
	}

	m := ContextPreservation{
		OverlapScore:    clamp01(overlapSum / float64(pairs)),
		ContinuityScore: clamp01(continuitySum / float64(pairs)),
		ReferenceScore:  clamp01(referenceSum / float64(pairs)),
		WindowScore:     windowTermOverlap(chunks),
	}
	m.OverallScore = clamp01(
		0.3*m.OverlapScore +
			0.3*m.ContinuityScore +
			0.2*m.ReferenceScore +
			0.2*m.WindowScore)
	return m
}

// overlapPairScore normalizes the detected overlap against the expected
// overlap for the pair: min(128, a quarter of the shorter chunk). An overlap
// containing a sentence boundary earns a 1.2x bonus, capped at 1.0.
func overlapPairScore(prev, curr string) float64 {
	overlap := GetOverlapLength(prev, curr)
	if overlap == 0 {
		return 0
	}

	shorter := len(prev)
	if len(curr) < shorter {
		shorter = len(curr)
	}
	expected := shorter / 4
	if expected > 128 {
		expected = 128
	}
	if expected == 0 {
		expected = 1
	}

	score := float64(overlap) / float64(expected)
	if score > 1 {
		score = 1
	}
	if strings.ContainsAny(curr[:overlap], ".!?") {
		score *= 1.2
	}
	return clamp01(score)
}

// windowTermOverlap averages term overlap between each chunk and its
// neighbors within two positions either side.
func windowTermOverlap(chunks []model.DocumentChunk) float64 {
	sets := make([]map[string]struct{}, len(chunks))
	for i, c := range chunks {
		sets[i] = uniqueTerms(c.Content)
	}

	var sum float64
	var count int
	for i := range chunks {
		for j := i + 1; j <= i+2 && j < len(chunks); j++ {
			sum += jaccard(sets[i], sets[j])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return clamp01(sum / float64(count))
}

package refine

import (
	"strings"
	"unicode"

	"github.com/tsawler/refinery/model"
)

// scoreRefinement rates a refinement run. Structure presence, size
// reduction, and content retention each score independently; confidence is a
// text-health heuristic on the refined output.
func scoreRefinement(original, refined string, hasStructures, hasSections bool) model.RefinementQuality {
	q := model.RefinementQuality{
		OriginalChars: len(original),
		RefinedChars:  len(refined),
	}

	switch {
	case hasStructures && hasSections:
		q.StructureScore = 0.9
	case hasStructures || hasSections:
		q.StructureScore = 0.7
	default:
		q.StructureScore = 0.5
	}

	q.CleanupScore = cleanupScore(len(original), len(refined))

	if len(original) == 0 {
		q.RetentionScore = 1.0
	} else {
		q.RetentionScore = float64(len(refined)) / float64(len(original))
		if q.RetentionScore > 1 {
			q.RetentionScore = 1
		}
	}

	q.Confidence = (printableRatio(refined) + wordlikeRatio(refined)) / 2

	return q
}

// cleanupScore rewards a 5-20% size reduction and penalizes heavier ones:
// cleanup should remove noise, not content.
func cleanupScore(original, refined int) float64 {
	if original == 0 {
		return 0.7
	}
	reduction := 1 - float64(refined)/float64(original)
	switch {
	case reduction >= 0.05 && reduction <= 0.20:
		return 0.9
	case reduction > 0.20 && reduction <= 0.50:
		return 0.6
	case reduction > 0.50:
		return 0.3
	default:
		// Little or no reduction, or growth from added markup.
		return 0.7
	}
}

// printableRatio returns the ratio of printable characters. Private Use Area
// runes, the replacement character, and non-whitespace control characters
// count as garbage.
func printableRatio(text string) float64 {
	if len(text) == 0 {
		return 1.0
	}
	total, printable := 0, 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	if r == 0xFFFD {
		return true
	}
	if r < 0x0020 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return false
}

// wordlikeRatio returns the ratio of tokens that look like words (2-15
// runes). Extraction garbage tends to produce very short or very long runs.
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	wordlike := 0
	for _, f := range fields {
		n := len([]rune(f))
		if n >= 2 && n <= 15 {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(fields))
}

package quality

import (
	"strings"
	"unicode"

	"github.com/tsawler/refinery/model"
)

var whWords = []string{"what", "when", "where", "which", "who", "why", "how"}

var definitionPatterns = []string{
	" is a ", " is an ", " is the ", " are the ", " refers to ",
	" means ", " is defined as ", " consists of ",
}

// scoreRetrievalReadiness evaluates how well chunks serve as standalone
// retrieval results.
func scoreRetrievalReadiness(chunks []model.DocumentChunk) RetrievalReadiness {
	if len(chunks) == 0 {
		return RetrievalReadiness{}
	}

	var containment, richness, summary, query float64
	for _, c := range chunks {
		containment += selfContainmentScore(c.Content)
		richness += keywordRichnessScore(c.Content)
		summary += summaryQualityScore(c.Content)
		query += queryMatchScore(c.Content)
	}

	n := float64(len(chunks))
	m := RetrievalReadiness{
		SelfContainment: clamp01(containment / n),
		KeywordRichness: clamp01(richness / n),
		SummaryQuality:  clamp01(summary / n),
		QueryMatch:      clamp01(query / n),
	}
	m.OverallScore = clamp01(
		0.3*m.SelfContainment +
			0.2*m.KeywordRichness +
			0.25*m.SummaryQuality +
			0.25*m.QueryMatch)
	return m
}

// selfContainmentScore checks that a chunk is a complete thought and does
// not lean on an antecedent outside itself.
func selfContainmentScore(content string) float64 {
	f := chunkCompleteness(content)
	score := 0.0
	if f.completeThought {
		score += 0.6
	} else if f.completeSentence {
		score += 0.3
	}
	if !startsWithUnresolvedPronoun(content) {
		score += 0.4
	}
	return clamp01(score)
}

// keywordRichnessScore rewards chunks with a deep and varied vocabulary:
// more than 10 unique terms, with uniqueness above 20%.
func keywordRichnessScore(content string) float64 {
	terms := extractTerms(content)
	if len(terms) == 0 {
		return 0
	}
	unique := map[string]struct{}{}
	for _, t := range terms {
		unique[t] = struct{}{}
	}

	score := 0.0
	if len(unique) > 10 {
		score += 0.5
	} else {
		score += 0.5 * float64(len(unique)) / 10
	}
	if ratio := float64(len(unique)) / float64(len(terms)); ratio > 0.2 {
		score += 0.5
	} else {
		score += 0.5 * ratio / 0.2
	}
	return clamp01(score)
}

// summaryQualityScore evaluates whether the chunk's first sentence works as
// a summary of the remainder: length in 20-200 chars (0.3), completeness
// (0.3), and term overlap with the rest (0.4). Single-sentence chunks get a
// flat 0.4 for the overlap component.
func summaryQualityScore(content string) float64 {
	sentences := splitSentenceStrings(content)
	if len(sentences) == 0 {
		return 0
	}

	first := sentences[0]
	score := 0.0
	if len(first) >= 20 && len(first) <= 200 {
		score += 0.3
	}
	if endsLikeSentence(first) {
		score += 0.3
	}

	if len(sentences) == 1 {
		return clamp01(score + 0.4)
	}

	rest := strings.Join(sentences[1:], " ")
	overlap := jaccard(uniqueTerms(first), uniqueTerms(rest))
	score += 0.4 * clamp01(overlap*4) // 25% term overlap earns the full component
	return clamp01(score)
}

// queryMatchScore estimates how likely the chunk is to match real queries:
// WH-words, definition phrasing, vocabulary depth, proper nouns, and
// numerals each contribute 0.2, capped at 1.0.
func queryMatchScore(content string) float64 {
	lower := strings.ToLower(content)
	score := 0.0

	for _, w := range whWords {
		if strings.Contains(lower, w+" ") {
			score += 0.2
			break
		}
	}
	for _, p := range definitionPatterns {
		if strings.Contains(lower, p) {
			score += 0.2
			break
		}
	}
	if len(extractTerms(content)) > 20 {
		score += 0.2
	}
	if countProperNouns(content) > 2 {
		score += 0.2
	}
	if countNumerals(content) > 2 {
		score += 0.2
	}
	return clamp01(score)
}

// countProperNouns counts capitalized words that do not start a sentence.
func countProperNouns(content string) int {
	count := 0
	words := strings.Fields(content)
	for i, w := range words {
		runes := []rune(w)
		if len(runes) < 2 || !unicode.IsUpper(runes[0]) || !unicode.IsLower(runes[1]) {
			continue
		}
		if i == 0 {
			continue
		}
		prev := words[i-1]
		if strings.ContainsAny(prev[len(prev)-1:], ".!?:") {
			continue
		}
		count++
	}
	return count
}

func countNumerals(content string) int {
	count := 0
	for _, w := range strings.Fields(content) {
		hasDigit := false
		for _, r := range w {
			if unicode.IsDigit(r) {
				hasDigit = true
				break
			}
		}
		if hasDigit {
			count++
		}
	}
	return count
}

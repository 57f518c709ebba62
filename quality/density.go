package quality

import (
	"math"

	"github.com/tsawler/refinery/model"
)

// scoreInformationDensity evaluates the information content of the chunk
// text. A set with no extractable terms scores zero.
func scoreInformationDensity(chunks []model.DocumentChunk) InformationDensity {
	if len(chunks) == 0 {
		return InformationDensity{}
	}

	var densitySum, redundancySum, uniquenessSum float64
	var scored int
	freq := map[string]int{}
	totalTerms := 0

	for _, c := range chunks {
		words := splitWords(c.Content)
		if len(words) == 0 {
			continue
		}
		terms := extractTerms(c.Content)

		densitySum += float64(len(terms)) / float64(len(words))
		redundancySum += intraChunkRedundancy(c.Content)

		set := map[string]struct{}{}
		for _, t := range terms {
			set[t] = struct{}{}
			freq[t]++
			totalTerms++
		}
		if len(terms) > 0 {
			uniquenessSum += float64(len(set)) / float64(len(terms))
		}
		scored++
	}

	if scored == 0 || totalTerms == 0 {
		return InformationDensity{}
	}

	n := float64(scored)
	m := InformationDensity{
		TokenDensity: clamp01(densitySum / n),
		Redundancy:   clamp01(redundancySum / n),
		Uniqueness:   clamp01(uniquenessSum / n),
		Entropy:      termEntropy(freq, totalTerms),
	}
	m.OverallScore = clamp01(
		0.3*m.TokenDensity +
			0.3*(1-m.Redundancy) +
			0.2*m.Uniqueness +
			0.2*m.Entropy)
	return m
}

// intraChunkRedundancy averages pairwise Jaccard similarity between the
// chunk's sentences.
func intraChunkRedundancy(content string) float64 {
	sentences := splitSentenceStrings(content)
	if len(sentences) < 2 {
		return 0
	}

	sets := make([]map[string]struct{}, len(sentences))
	for i, s := range sentences {
		sets[i] = uniqueTerms(s)
	}

	var sum float64
	var pairs int
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			sum += jaccard(sets[i], sets[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

// termEntropy is the Shannon entropy of the term frequency distribution,
// base 2, normalized by the maximum possible entropy for the vocabulary.
func termEntropy(freq map[string]int, total int) float64 {
	if len(freq) <= 1 || total == 0 {
		return 0
	}

	var h float64
	for _, count := range freq {
		p := float64(count) / float64(total)
		h -= p * math.Log2(p)
	}

	maxH := math.Log2(float64(len(freq)))
	if maxH == 0 {
		return 0
	}
	return clamp01(h / maxH)
}

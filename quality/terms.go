package quality

import (
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "his": {}, "how": {},
	"its": {}, "may": {}, "new": {}, "now": {}, "old": {}, "see": {},
	"two": {}, "way": {}, "who": {}, "did": {}, "get": {}, "him": {},
	"she": {}, "too": {}, "use": {}, "that": {}, "with": {}, "have": {},
	"this": {}, "will": {}, "your": {}, "from": {}, "they": {}, "been": {},
	"were": {}, "there": {}, "their": {}, "which": {}, "about": {},
	"would": {}, "these": {}, "other": {}, "into": {}, "more": {},
	"some": {}, "could": {}, "them": {}, "than": {}, "then": {},
	"when": {}, "what": {}, "also": {}, "only": {}, "over": {},
	"such": {}, "very": {}, "each": {}, "most": {}, "both": {},
	"does": {}, "because": {}, "through": {}, "between": {}, "after": {},
	"before": {}, "where": {}, "while": {}, "being": {}, "under": {},
}

// extractTerms returns the lowercase content words of text: words longer
// than three characters that are not stop words.
func extractTerms(text string) []string {
	var terms []string
	for _, w := range splitWords(text) {
		w = strings.ToLower(w)
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

// uniqueTerms returns the distinct terms of text as a set.
func uniqueTerms(text string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, t := range extractTerms(text) {
		set[t] = struct{}{}
	}
	return set
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-'
	})
}

// jaccard returns the Jaccard similarity of two term sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// splitSentenceStrings splits text into trimmed sentence strings on terminal
// punctuation followed by whitespace.
func splitSentenceStrings(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		s := strings.TrimSpace(string(runes[start : i+1]))
		if s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// endsLikeSentence reports whether text ends with terminal punctuation,
// optionally followed by a closing quote or bracket.
func endsLikeSentence(text string) bool {
	t := strings.TrimRight(strings.TrimSpace(text), "\"')]}*")
	if t == "" {
		return false
	}
	switch t[len(t)-1] {
	case '.', '!', '?', ':':
		return true
	}
	return false
}

// startsClean reports whether text begins like a fresh statement: a capital
// letter, a markdown heading, a list or numbered marker, or a digit followed
// by a period.
func startsClean(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	first := []rune(t)[0]
	switch {
	case unicode.IsUpper(first):
		return true
	case first == '#', first == '-', first == '|', first == '`', first == '>':
		return true
	case unicode.IsDigit(first):
		rest := strings.TrimLeft(t, "0123456789")
		return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, ")")
	}
	return false
}

// clamp01 bounds v to [0,1], mapping NaN to 0.
func clamp01(v float64) float64 {
	if !(v > 0) { // catches NaN and negatives
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

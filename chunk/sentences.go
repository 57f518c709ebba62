package chunk

import (
	"strings"
	"unicode"
)

// textSpan is a half-open [Start,End) range into the source text.
type textSpan struct {
	start int
	end   int
}

// splitSentences returns sentence spans over text. Sentence ends are '.',
// '!', or '?' followed by whitespace and a capital letter or quote, with
// common abbreviations, initials, and decimal numbers excluded.
func splitSentences(text string) []textSpan {
	var spans []textSpan
	runes := []rune(text)

	// Byte offset of each rune index, plus the terminating length.
	offsets := make([]int, len(runes)+1)
	pos := 0
	for i, r := range runes {
		offsets[i] = pos
		pos += len(string(r))
	}
	offsets[len(runes)] = pos

	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if !isSentenceEnd(runes, i) {
			continue
		}

		end := i + 1
		if trimmed := trimSpan(text, offsets[start], offsets[end]); trimmed != nil {
			spans = append(spans, *trimmed)
		}

		// Skip whitespace to the next sentence start.
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
		start = i + 1
	}

	if start < len(runes) {
		if trimmed := trimSpan(text, offsets[start], len(text)); trimmed != nil {
			spans = append(spans, *trimmed)
		}
	}

	return spans
}

// trimSpan shrinks a span to exclude leading and trailing whitespace,
// returning nil when nothing remains.
func trimSpan(text string, start, end int) *textSpan {
	for start < end && isSpaceByte(text[start]) {
		start++
	}
	for end > start && isSpaceByte(text[end-1]) {
		end--
	}
	if start >= end {
		return nil
	}
	return &textSpan{start: start, end: end}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isSentenceEnd checks whether the punctuation at rune index i really ends a
// sentence.
func isSentenceEnd(runes []rune, i int) bool {
	r := runes[i]
	if r != '.' && r != '!' && r != '?' {
		return false
	}

	if r == '.' && i > 0 {
		// Single capital letter before the period (initials, "Mr.").
		if unicode.IsUpper(runes[i-1]) {
			if i < 2 || !unicode.IsLetter(runes[i-2]) {
				return false
			}
		}

		if isAbbreviation(runes, i) {
			return false
		}

		// Decimal numbers ("3.14").
		if unicode.IsDigit(runes[i-1]) && i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
			return false
		}
	}

	// End of text always ends the sentence.
	if i+1 >= len(runes) {
		return true
	}

	if i+2 < len(runes) && unicode.IsSpace(runes[i+1]) {
		next := runes[i+2]
		if unicode.IsUpper(next) || next == '"' || next == '\'' || next == '#' {
			return true
		}
	}

	// Newline after punctuation ends the sentence even without a capital.
	if runes[i+1] == '\n' {
		return true
	}

	return false
}

var abbreviations = map[string]struct{}{
	"mr.": {}, "mrs.": {}, "ms.": {}, "dr.": {}, "prof.": {},
	"sr.": {}, "jr.": {}, "vs.": {}, "etc.": {}, "e.g.": {}, "i.e.": {},
	"inc.": {}, "ltd.": {}, "co.": {}, "corp.": {},
	"jan.": {}, "feb.": {}, "mar.": {}, "apr.": {}, "jun.": {}, "jul.": {},
	"aug.": {}, "sep.": {}, "oct.": {}, "nov.": {}, "dec.": {},
	"st.": {}, "rd.": {}, "ave.": {}, "blvd.": {},
	"no.": {}, "vol.": {}, "pp.": {}, "pg.": {},
}

func isAbbreviation(runes []rune, i int) bool {
	start := i
	for start > 0 && unicode.IsLetter(runes[start-1]) {
		start--
	}
	if start >= i {
		return false
	}
	word := strings.ToLower(string(runes[start : i+1]))
	_, ok := abbreviations[word]
	return ok
}

// splitParagraphs returns paragraph spans: runs of non-blank lines separated
// by one or more blank lines.
func splitParagraphs(text string) []textSpan {
	var spans []textSpan
	start := -1
	lineStart := 0

	flush := func(end int) {
		if start < 0 {
			return
		}
		if trimmed := trimSpan(text, start, end); trimmed != nil {
			spans = append(spans, *trimmed)
		}
		start = -1
	}

	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		line := text[lineStart:i]
		if strings.TrimSpace(line) == "" {
			flush(lineStart)
		} else if start < 0 {
			start = lineStart
		}
		lineStart = i + 1
	}
	flush(len(text))

	return spans
}

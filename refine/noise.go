package refine

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Artificial headings injected by naive readers ("## Paragraph 12").
	artificialHeadingRe = regexp.MustCompile(`(?m)^#{1,6}\s*Paragraph\s+\d+\s*$`)

	// Image placeholder artifacts such as "[Figure] ..." or "[그림] ...".
	imagePlaceholderRe = regexp.MustCompile(`(?m)^\[(그림|Figure|Image|이미지|사진|도표|표)\].*$`)

	excessNewlinesRe = regexp.MustCompile(`\n{3,}`)
)

// cleanNoise strips reader artifacts from raw text: artificial
// paragraph-numbering headings, image placeholders, runaway blank lines, and
// runs of horizontal whitespace. Text is NFC-normalized first so heuristics
// downstream see composed forms.
func cleanNoise(text string) string {
	text = norm.NFC.String(text)
	text = artificialHeadingRe.ReplaceAllString(text, "")
	text = imagePlaceholderRe.ReplaceAllString(text, "")
	text = collapseHorizontalWhitespace(text)
	text = excessNewlinesRe.ReplaceAllString(text, "\n\n")
	return text
}

// collapseHorizontalWhitespace reduces interior runs of spaces and tabs to a
// single space. Leading indentation is preserved so list nesting and code
// indent survive cleanup.
func collapseHorizontalWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		indent := 0
		for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
			indent++
		}
		body := line[indent:]
		if body == "" {
			lines[i] = ""
			continue
		}
		lines[i] = line[:indent] + collapseRuns(body)
	}
	return strings.Join(lines, "\n")
}

func collapseRuns(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if !inRun {
				sb.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

// normalizeWhitespace is the final whitespace pass: collapse 3+ newlines to
// exactly 2, strip trailing whitespace per line, trim the document ends.
func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	text = excessNewlinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

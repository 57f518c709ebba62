package refine

import (
	"regexp"
	"strings"
)

// Numbered-section promotion patterns, most specific first. A line consumed
// by one pass is never reconsidered by a later one.
var (
	// "1-2-3. Title" -> H4
	tripleNumberRe = regexp.MustCompile(`^(\d+-\d+-\d+)\.\s+(.+)$`)

	// "1-2. Title" -> H3
	doubleNumberRe = regexp.MustCompile(`^(\d+-\d+)\.\s+(.+)$`)

	// "1. Title" -> H2
	singleNumberRe = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)

	// "① Title" -> H3
	circledNumberRe = regexp.MustCompile(`^([①②③④⑤⑥⑦⑧⑨⑩⑪⑫⑬⑭⑮⑯⑰⑱⑲⑳])\s*(.+)$`)

	// "(1) Title" -> H3
	parenNumberRe = regexp.MustCompile(`^\((\d+)\)\s+(.+)$`)
)

// promoteNumberedSections converts bare numbered section markers at
// line-start into markdown headings of increasing depth: "N." becomes H2,
// "N-M." H3, "N-M-K." H4, and circled or parenthesized numerals H3.
// Indented lines are left alone so ordered-list items are not promoted,
// and lines that are already headings are never touched.
func promoteNumberedSections(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
			continue
		}

		switch {
		case tripleNumberRe.MatchString(line):
			lines[i] = tripleNumberRe.ReplaceAllString(line, "#### $1. $2")
		case doubleNumberRe.MatchString(line):
			lines[i] = doubleNumberRe.ReplaceAllString(line, "### $1. $2")
		case singleNumberRe.MatchString(line):
			lines[i] = singleNumberRe.ReplaceAllString(line, "## $1. $2")
		case circledNumberRe.MatchString(line):
			lines[i] = circledNumberRe.ReplaceAllString(line, "### $1 $2")
		case parenNumberRe.MatchString(line):
			lines[i] = parenNumberRe.ReplaceAllString(line, "### ($1) $2")
		}
	}
	return strings.Join(lines, "\n")
}

package refine

import (
	"fmt"
	"regexp"

	"github.com/tsawler/refinery/model"
)

var sectionHeadingRe = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

// buildSections derives the section list from markdown headings. Each
// heading starts a section running until the next heading or end of text, so
// sections are non-overlapping, ordered by start offset, and the last
// section ends at the text length.
func buildSections(text string) []model.Section {
	matches := sectionHeadingRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]model.Section, 0, len(matches))
	for i, m := range matches {
		start := m[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		sections = append(sections, model.Section{
			ID:      fmt.Sprintf("sec_%d", i+1),
			Title:   text[m[4]:m[5]],
			Level:   m[3] - m[2],
			Start:   start,
			End:     end,
			Content: text[start:end],
		})
	}
	return sections
}

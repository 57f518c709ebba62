package refine

import (
	"regexp"
	"strings"
)

var (
	headingLineRe   = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletMarkerRe  = regexp.MustCompile(`^(\s*)[*+]\s+(.*)$`)
	orderedParenRe  = regexp.MustCompile(`^(\s*)(\d+)\)\s+(.*)$`)
	tableRowRe      = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	separatorCellRe = regexp.MustCompile(`^:?-{3,}:?$`)
)

// NormalizeMarkdown enforces structural consistency on markdown text:
//
//   - heading levels never jump up by more than 1 between consecutive
//     headings (an H1 followed by an H3 is corrected to H2)
//   - headings with no following content are removed
//   - list markers are normalized ("*" and "+" bullets become "-",
//     "1)" ordering becomes "1.")
//   - every row of a table gets the same column count
//   - trailing whitespace and runaway blank lines are collapsed
//
// The pass is idempotent: normalizing already-normalized text is a no-op.
func NormalizeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	lines = removeEmptyHeadings(lines)
	lines = clampHeadingJumps(lines)
	lines = normalizeListMarkers(lines)
	lines = reconcileTableColumns(lines)
	return normalizeWhitespace(strings.Join(lines, "\n"))
}

// removeEmptyHeadings drops headings that are immediately followed (ignoring
// blanks) by another heading of the same or shallower level, or by end of
// text. A heading whose next heading is deeper keeps its subtree and stays.
// Removal repeats until stable: dropping a deeper heading can expose its
// parent as newly empty.
func removeEmptyHeadings(lines []string) []string {
	for {
		out := removeEmptyHeadingsOnce(lines)
		if len(out) == len(lines) {
			return out
		}
		lines = out
	}
}

func removeEmptyHeadingsOnce(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		m := headingLineRe.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		level := len(m[1])
		if strings.TrimSpace(m[2]) == "" {
			continue
		}

		empty := true
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if nm := headingLineRe.FindStringSubmatch(lines[j]); nm != nil {
				empty = len(nm[1]) <= level
			} else {
				empty = false
			}
			break
		}
		if !empty {
			out = append(out, line)
		}
	}
	return out
}

// clampHeadingJumps rewrites heading levels so no heading is more than one
// level deeper than the previous heading. Jumping back up is unrestricted.
func clampHeadingJumps(lines []string) []string {
	prev := 0
	for i, line := range lines {
		m := headingLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		level := len(m[1])
		if prev > 0 && level > prev+1 {
			level = prev + 1
			lines[i] = strings.Repeat("#", level) + " " + m[2]
		}
		prev = level
	}
	return lines
}

func normalizeListMarkers(lines []string) []string {
	for i, line := range lines {
		if m := bulletMarkerRe.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + "- " + m[2]
			continue
		}
		if m := orderedParenRe.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + m[2] + ". " + m[3]
		}
	}
	return lines
}

// reconcileTableColumns pads every row of a contiguous table to the table's
// widest column count, rebuilding separator rows to match.
func reconcileTableColumns(lines []string) []string {
	for i := 0; i < len(lines); {
		if !tableRowRe.MatchString(lines[i]) {
			i++
			continue
		}

		end := i
		for end < len(lines) && tableRowRe.MatchString(lines[end]) {
			end++
		}

		cols := 0
		for j := i; j < end; j++ {
			if n := len(splitTableRow(lines[j])); n > cols {
				cols = n
			}
		}

		for j := i; j < end; j++ {
			cells := splitTableRow(lines[j])
			if isSeparatorRow(cells) {
				lines[j] = rebuildSeparatorRow(cells, cols)
				continue
			}
			lines[j] = rebuildTableRow(cells, cols)
		}
		i = end
	}
	return lines
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := splitEscapedPipes(trimmed)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// splitEscapedPipes splits on "|" while honoring "\|" escapes.
func splitEscapedPipes(s string) []string {
	var parts []string
	var cur strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune('\\')
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	parts = append(parts, cur.String())
	return parts
}

func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !separatorCellRe.MatchString(c) {
			return false
		}
	}
	return true
}

func rebuildTableRow(cells []string, cols int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i := 0; i < cols; i++ {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(" |")
	}
	return sb.String()
}

func rebuildSeparatorRow(cells []string, cols int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i := 0; i < cols; i++ {
		marker := "---"
		if i < len(cells) {
			marker = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(marker)
		sb.WriteString(" |")
	}
	return sb.String()
}

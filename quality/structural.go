package quality

import (
	"regexp"
	"strings"

	"github.com/tsawler/refinery/model"
)

var (
	headerLineRe     = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	underlineHdrRe   = regexp.MustCompile(`(?m)^\S.*\n(={3,}|-{3,})\s*$`)
	tableSeparatorRe = regexp.MustCompile(`(?m)^\s*\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)+\|?\s*$`)
)

// inspectChunkStructure counts preserved and broken markdown structures in
// one chunk.
func inspectChunkStructure(content string) (preserved, broken int) {
	// Headers are complete by construction when the whole line is present.
	preserved += len(headerLineRe.FindAllString(content, -1))
	preserved += len(underlineHdrRe.FindAllString(content, -1))

	// Code fences: pairs preserve, an odd marker out is broken.
	fences := strings.Count(content, "```")
	preserved += fences / 2
	broken += fences % 2

	// Pipe tables need a separator row to count as a table at all.
	if pipes := countPipeRows(content); pipes >= 2 {
		if tableSeparatorRe.MatchString(content) {
			preserved++
		} else {
			broken++
		}
	}

	listItems := countListItems(content)
	switch {
	case listItems >= 2:
		preserved++
	case listItems == 1:
		// A lone list item is a fragment cut off from its list.
		broken++
	}

	return preserved, broken
}

func countPipeRows(content string) int {
	rows := 0
	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "|") && strings.Count(t, "|") >= 2 {
			rows++
		}
	}
	return rows
}

func countListItems(content string) int {
	items := 0
	for _, line := range strings.Split(content, "\n") {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "- ") || strings.HasPrefix(t, "* ") {
			items++
			continue
		}
		if i := strings.IndexByte(t, '.'); i > 0 && i <= 3 {
			if allDigits(t[:i]) && strings.HasPrefix(t[i:], ". ") {
				items++
			}
		}
	}
	return items
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// scoreStructuralIntegrity evaluates whether markdown structures survived
// chunking intact. With nothing detected anywhere the score is 1 minus the
// broken ratio, which is 1.0 for a structure-free chunk set.
func scoreStructuralIntegrity(chunks []model.DocumentChunk) StructuralIntegrity {
	if len(chunks) == 0 {
		return StructuralIntegrity{}
	}

	m := StructuralIntegrity{}
	chunksWithBroken := 0

	for _, c := range chunks {
		preserved, broken := inspectChunkStructure(c.Content)
		m.PreservedCount += preserved
		m.BrokenCount += broken
		flag := StructureFlag{
			ChunkID:            c.ID,
			Preserved:          preserved,
			Broken:             broken,
			HasBrokenStructure: broken > 0,
		}
		if flag.HasBrokenStructure {
			chunksWithBroken++
		}
		m.ChunkFlags = append(m.ChunkFlags, flag)
	}

	m.BrokenRatio = float64(chunksWithBroken) / float64(len(chunks))

	total := m.PreservedCount + m.BrokenCount
	if total > 0 {
		m.OverallScore = clamp01(float64(m.PreservedCount-m.BrokenCount) / float64(total))
	} else {
		m.OverallScore = clamp01(1 - m.BrokenRatio)
	}
	return m
}

package quality

import (
	"testing"
)

func TestChunkCompletenessThreeSentenceParagraph(t *testing.T) {
	// A clean three-sentence paragraph under 100 chars passes every factor
	// except the complete-thought length test.
	f := chunkCompleteness("This is sentence one. This is sentence two. This is sentence three.")

	if !f.completeSentence {
		t.Error("expected the complete-sentence factor to pass")
	}
	if f.completeThought {
		t.Error("expected the complete-thought factor to fail on length")
	}
	if !f.notOrphan {
		t.Error("expected the orphan factor to pass")
	}
	if !f.cleanStart {
		t.Error("expected the clean-start factor to pass")
	}
	if got := f.passed(); got != 3 {
		t.Errorf("factors passed = %d, want 3 of 4", got)
	}
}

func TestChunkCompletenessEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int // factors passed
	}{
		{"empty", "", 0},
		{"whitespace", "   \n  ", 0},
		{"short fragment", "and then it", 0},
		{"long complete thought", "The first sentence establishes the subject clearly for readers. The second sentence develops it further with detail.", 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := chunkCompleteness(tc.content).passed(); got != tc.want {
				t.Errorf("passed = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestGetOverlapLength(t *testing.T) {
	tests := []struct {
		name string
		prev string
		curr string
		min  int
	}{
		{
			name: "shared sentence tail",
			prev: "the lazy dog watched the quick brown fox.",
			curr: "brown fox. jumps over",
			min:  10,
		},
		{
			name: "no overlap",
			prev: "completely unrelated ending text",
			curr: "different beginning entirely here",
			min:  0,
		},
		{
			name: "identical short strings",
			prev: "abcdef",
			curr: "abcdef",
			min:  6,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := GetOverlapLength(tc.prev, tc.curr)
			if tc.min == 0 {
				if got != 0 {
					t.Errorf("GetOverlapLength = %d, want 0", got)
				}
				return
			}
			if got < tc.min {
				t.Errorf("GetOverlapLength = %d, want at least %d", got, tc.min)
			}
		})
	}
}

func TestOverlapPairScoreSentenceBonus(t *testing.T) {
	// Same overlap length with and without a sentence boundary inside it.
	// Both chunks are long enough that the normalized score sits below the
	// cap, so the bonus is visible.
	pad := "Long filler material stretches this chunk well past the expected overlap window so normalization does not saturate. "
	base := overlapPairScore(
		pad+pad+"leading up to shared words here",
		"shared words here and the chunk continues "+pad+pad,
	)
	bonus := overlapPairScore(
		pad+pad+"leading up to shared words here.",
		"shared words here. and the chunk continues "+pad+pad,
	)
	if base <= 0 {
		t.Fatalf("expected a positive base overlap score, got %v", base)
	}
	if bonus <= base {
		t.Errorf("sentence-boundary overlap %v not greater than plain overlap %v", bonus, base)
	}
	if bonus > 1 {
		t.Errorf("bonus score %v exceeds cap", bonus)
	}
}

func TestStructuralIntegrityBrokenFence(t *testing.T) {
	broken := chunksOf("Intro text for the example.\n```go\nfunc main() {}")
	intact := chunksOf("Intro text for the example.\n```go\nfunc main() {}\n```")

	brokenScore := scoreStructuralIntegrity(broken)
	intactScore := scoreStructuralIntegrity(intact)

	if len(brokenScore.ChunkFlags) != 1 || !brokenScore.ChunkFlags[0].HasBrokenStructure {
		t.Error("expected HasBrokenStructure on the unmatched fence chunk")
	}
	if intactScore.ChunkFlags[0].HasBrokenStructure {
		t.Error("did not expect HasBrokenStructure on the matched fence chunk")
	}
	if brokenScore.OverallScore >= intactScore.OverallScore {
		t.Errorf("broken fence score %v not below intact score %v",
			brokenScore.OverallScore, intactScore.OverallScore)
	}
}

func TestStructuralIntegrityNoStructures(t *testing.T) {
	chunks := chunksOf("Plain prose without any markdown structure at all.")
	m := scoreStructuralIntegrity(chunks)
	if m.OverallScore != 1.0 {
		t.Errorf("structure-free score = %v, want 1.0", m.OverallScore)
	}
}

func TestStructuralIntegrityOrphanListItem(t *testing.T) {
	m := scoreStructuralIntegrity(chunksOf("Text ending with\n- a single stranded item"))
	if m.BrokenCount != 1 {
		t.Errorf("BrokenCount = %d, want 1 for an orphaned list item", m.BrokenCount)
	}

	whole := scoreStructuralIntegrity(chunksOf("A list follows:\n- first item\n- second item\n- third item"))
	if whole.BrokenCount != 0 {
		t.Errorf("BrokenCount = %d, want 0 for a complete list", whole.BrokenCount)
	}
}

func TestInformationDensityRedundantChunks(t *testing.T) {
	repetitive := chunksOf("The identical sentence repeats verbatim always. The identical sentence repeats verbatim always. The identical sentence repeats verbatim always.")
	varied := chunksOf("Databases persist records durably. Compilers translate source languages. Networks route packets globally.")

	r := scoreInformationDensity(repetitive)
	v := scoreInformationDensity(varied)

	if r.Redundancy <= v.Redundancy {
		t.Errorf("repetitive redundancy %v not above varied %v", r.Redundancy, v.Redundancy)
	}
	if r.OverallScore >= v.OverallScore {
		t.Errorf("repetitive density %v not below varied %v", r.OverallScore, v.OverallScore)
	}
}

func TestInformationDensityNoTerms(t *testing.T) {
	m := scoreInformationDensity(chunksOf("a an of to", "is at on"))
	if m.OverallScore != 0 {
		t.Errorf("no-term density = %v, want 0", m.OverallScore)
	}
}

func TestBoundaryQualityCleanVsRagged(t *testing.T) {
	clean := chunksOf(
		"The first chunk ends with proper punctuation.",
		"The second chunk also starts cleanly and ends well.",
	)
	ragged := chunksOf(
		"the first chunk trails off without",
		"punctuation and the second starts lowercase too",
	)

	c := scoreBoundaryQuality(clean)
	r := scoreBoundaryQuality(ragged)

	if c.CleanStartRatio != 1.0 {
		t.Errorf("clean start ratio = %v, want 1.0", c.CleanStartRatio)
	}
	if r.CleanStartRatio != 0 {
		t.Errorf("ragged start ratio = %v, want 0", r.CleanStartRatio)
	}
	if c.OverallScore <= r.OverallScore {
		t.Errorf("clean boundary score %v not above ragged %v", c.OverallScore, r.OverallScore)
	}
}

func TestRetrievalReadinessDefinitionChunk(t *testing.T) {
	definition := chunksOf("A binary tree is a hierarchical data structure where each node holds at most two children. Binary trees support logarithmic search when balanced. Rotations in AVL trees restore balance after 2 insertions or 3 deletions across 4 levels.")
	fragment := chunksOf("them and so")

	d := scoreRetrievalReadiness(definition)
	f := scoreRetrievalReadiness(fragment)

	if d.OverallScore <= f.OverallScore {
		t.Errorf("definition readiness %v not above fragment %v", d.OverallScore, f.OverallScore)
	}
	if d.QueryMatch == 0 {
		t.Error("expected the definition pattern to register in query-match")
	}
}

func TestContextPreservationPronounStart(t *testing.T) {
	resolved := chunksOf(
		"The scheduler assigns work to threads fairly and predictably.",
		"Workers pull tasks from the shared queue in priority order.",
	)
	stranded := chunksOf(
		"The scheduler assigns work to threads fairly and predictably.",
		"It does this without any locks being held anywhere.",
	)

	ok := scoreContextPreservation(resolved)
	bad := scoreContextPreservation(stranded)

	if bad.ReferenceScore >= ok.ReferenceScore {
		t.Errorf("stranded-pronoun reference score %v not below resolved %v",
			bad.ReferenceScore, ok.ReferenceScore)
	}
}

package quality

import (
	"context"
	"fmt"

	"github.com/tsawler/refinery/model"
)

// Metric weights for the composite score. The composite is renormalized by
// the weights actually computed, so a partial metric set still produces a
// bounded score.
const (
	weightSemantic   = 0.25
	weightContext    = 0.20
	weightDensity    = 0.15
	weightStructural = 0.15
	weightRetrieval  = 0.15
	weightBoundary   = 0.10
)

// Recommendation thresholds.
const (
	orphanRatioLimit  = 0.2
	overlapScoreFloor = 0.3
	redundancyLimit   = 0.3
	brokenRatioLimit  = 0.1
	compositeFloor    = 0.6
)

// Analyzer computes quality reports for chunk sets. It holds no per-call
// state; one Analyzer may be shared across goroutines.
type Analyzer struct{}

// New returns a quality Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze evaluates a chunk set and returns a fresh report. Passing the
// pre-chunking source text enables the content-coverage check; an empty
// source skips it. Analysis never fails on malformed chunk content — bad
// chunks simply contribute zero to the affected sub-scores. Cancelling ctx
// stops remaining metrics; the composite is then renormalized over the
// metrics already computed.
func (a *Analyzer) Analyze(ctx context.Context, chunks []model.DocumentChunk, source string) *Report {
	report := &Report{
		TotalChunks:     len(chunks),
		Recommendations: []string{},
	}

	type metricRun struct {
		weight  float64
		compute func()
		score   func() float64
	}
	runs := []metricRun{
		{weightSemantic, func() { report.SemanticCompleteness = scoreSemanticCompleteness(chunks) },
			func() float64 { return report.SemanticCompleteness.OverallScore }},
		{weightContext, func() { report.ContextPreservation = scoreContextPreservation(chunks) },
			func() float64 { return report.ContextPreservation.OverallScore }},
		{weightDensity, func() { report.InformationDensity = scoreInformationDensity(chunks) },
			func() float64 { return report.InformationDensity.OverallScore }},
		{weightStructural, func() { report.StructuralIntegrity = scoreStructuralIntegrity(chunks) },
			func() float64 { return report.StructuralIntegrity.OverallScore }},
		{weightRetrieval, func() { report.RetrievalReadiness = scoreRetrievalReadiness(chunks) },
			func() float64 { return report.RetrievalReadiness.OverallScore }},
		{weightBoundary, func() { report.BoundaryQuality = scoreBoundaryQuality(chunks) },
			func() float64 { return report.BoundaryQuality.OverallScore }},
	}

	var weightedSum, weightTotal float64
	for _, run := range runs {
		if ctx.Err() != nil {
			break
		}
		run.compute()
		weightedSum += run.weight * run.score()
		weightTotal += run.weight
	}

	if weightTotal > 0 {
		report.CompositeScore = clamp01(weightedSum / weightTotal)
	}

	if ctx.Err() == nil && source != "" {
		report.ContentCoverage = scoreContentCoverage(chunks, source)
	}

	report.Recommendations = a.recommend(report)
	return report
}

// recommend turns threshold breaches into ordered, human-readable guidance.
func (a *Analyzer) recommend(r *Report) []string {
	var recs []string

	if r.TotalChunks == 0 {
		return []string{"No chunks to evaluate; check that the document produced refinable text."}
	}

	if r.SemanticCompleteness.OrphanRatio > orphanRatioLimit {
		recs = append(recs, fmt.Sprintf(
			"%.0f%% of chunks are orphaned fragments; raise the minimum chunk size or enable sentence preservation.",
			r.SemanticCompleteness.OrphanRatio*100))
	}
	if r.TotalChunks > 1 && r.ContextPreservation.OverlapScore < overlapScoreFloor {
		recs = append(recs, fmt.Sprintf(
			"Adjacent chunks share little overlap (score %.2f); increase the overlap size so retrieval hits carry context.",
			r.ContextPreservation.OverlapScore))
	}
	if r.InformationDensity.Redundancy > redundancyLimit {
		recs = append(recs, fmt.Sprintf(
			"Chunk content is %.0f%% redundant; consider semantic chunking to group repeated material.",
			r.InformationDensity.Redundancy*100))
	}
	if r.StructuralIntegrity.BrokenRatio > brokenRatioLimit {
		recs = append(recs, fmt.Sprintf(
			"%d chunk(s) contain broken structures such as unclosed code fences; increase the maximum chunk size or chunk along section boundaries.",
			r.StructuralIntegrity.BrokenCount))
	}
	if r.CompositeScore < compositeFloor {
		recs = append(recs, fmt.Sprintf(
			"Overall quality is low (%.2f); review the chunking strategy and size settings for this document type.",
			r.CompositeScore))
	}

	if len(recs) == 0 {
		recs = append(recs, "Chunk quality is satisfactory; no changes recommended.")
	}
	return recs
}

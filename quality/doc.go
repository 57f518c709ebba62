// Package quality evaluates chunk sets for retrieval fitness.
//
// The Analyzer computes six independent metrics over a chunk set — semantic
// completeness, context preservation, information density, structural
// integrity, retrieval readiness, and boundary quality — plus an optional
// content-coverage check against the pre-chunking source text. The metrics
// are combined into a weighted composite score and a prioritized list of
// human-readable recommendations.
//
// No metric reads another metric's result, so the set can be computed in any
// order (or concurrently by a caller). Analysis never fails: malformed or
// empty chunks contribute zero to the affected sub-scores, and every score
// in the report lies in [0, 1].
package quality

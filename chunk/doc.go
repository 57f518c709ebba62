// Package chunk splits refined document text into ordered, overlapping
// chunks sized for retrieval.
//
// The [Chunker] dispatches to a strategy-specific [Engine]:
//
//   - Sentence - accumulate whole sentences up to the size limit
//   - Paragraph - accumulate whole paragraphs up to the size limit
//   - Semantic - split at scored structural boundaries (headings,
//     paragraph breaks, sentence ends) near the target size
//   - Hierarchical - one chunk per section, splitting oversized sections
//   - Token - delegate to langchaingo's recursive character splitter
//   - Auto - resolve to one of the above from document characteristics
//
// All engines honor the same contract: chunk output is deterministic for
// identical input and options; no chunk exceeds MaxChunkSize unless a single
// indivisible unit is already larger, in which case the unit is kept whole
// and flagged Oversize; adjacent chunks share up to OverlapSize characters
// of context when overlap is requested.
//
// Every produced chunk's Content is the exact substring of the refined text
// at [StartPosition, EndPosition), so downstream consumers can always map a
// chunk back to its source span.
package chunk

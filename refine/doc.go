// Package refine transforms raw extraction output into cleaned, structurally
// normalized markdown suitable for chunking.
//
// The [Refiner] runs an ordered, each-step-optional pipeline over a
// [model.RawContent]:
//
//  1. Noise cleanup - strips artificial headings and image placeholder
//     artifacts, collapses runaway whitespace
//  2. Numbered-section promotion - converts bare numbered section markers
//     ("1. Foo", "3-1. Bar") into markdown headings
//  3. Structured-to-markdown conversion - renders extracted blocks and
//     tables as markdown, interleaved in document position order
//  4. Markdown normalization - clamps heading level jumps, removes empty
//     headings, normalizes list markers and table column counts
//  5. Structure extraction - records code blocks, tables, and lists as
//     typed [model.StructuredElement] values
//  6. Whitespace normalization
//  7. Section building - derives the hierarchical [model.Section] list
//     from markdown headings
//
// Every step degrades gracefully: a failing step leaves the text unchanged
// and appends a warning to the result rather than aborting. Only a nil input
// or a cancelled context fails the whole refinement.
//
// Basic usage:
//
//	r := refine.New()
//	refined, err := r.Refine(ctx, raw, refine.DefaultOptions())
package refine

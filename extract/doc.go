// Package extract reads source documents into raw content for refinement.
//
// Readers exist for HTML, markdown, and plain text. Each produces a
// model.RawContent: the document's plain text plus whatever structured
// blocks and tables the format exposes. Binary formats (PDF, DOCX, and the
// like) come from external extraction tools; their output enters the
// pipeline through the same RawContent record.
package extract

// Package model provides the intermediate representation (IR) for the
// refinement and chunking pipeline.
//
// This package defines the records that flow between pipeline stages. Data
// moves strictly forward: a [RawContent] produced by an extraction reader is
// refined into a [RefinedContent], which is split into [DocumentChunk] values
// for retrieval. No stage mutates an upstream stage's output; each stage
// builds a new record.
//
// # Raw Content
//
// The [RawContent] type is the extraction result consumed by the refiner:
// plain text plus optional structured tables ([TableData]), classified blocks
// ([TextBlock]), images ([ImageInfo]), and file metadata.
//
// # Refined Content
//
// The [RefinedContent] type carries the normalized markdown text together
// with the hierarchical [Section] list, extracted [StructuredElement] values
// (code blocks, tables, lists), document metadata, and refinement quality
// scores.
//
// # Chunks
//
// The [DocumentChunk] type is the unit consumed by downstream retrieval and
// embedding. Chunks from one document are ordered by StartPosition; adjacent
// chunks may overlap by up to the configured overlap size. Enhancement
// annotates chunks through [ChunkAnnotations] and the open Props map, never
// by altering Content or positions.
package model

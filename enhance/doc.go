// Package enhance enriches document chunks with LLM-generated annotations
// and recovers text from images via OCR.
//
// Both collaborators are optional. The Completion and ImageText interfaces
// carry an IsAvailable check so absence is a first-class state: an
// unavailable service makes enhancement a no-op, never an error. Individual
// call failures are caught per chunk and surface only as warnings; the
// chunk set always comes back complete, with failed chunks unannotated.
//
// Chunk content is never modified by enhancement. Only Annotations and
// Props are filled in.
package enhance

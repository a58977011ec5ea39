// Package domain defines the core business entities for docvault.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Text and keyword metadata extracted from a PDF
//   - Chunk: A slice of document text with its date/version/security metadata
//   - ChunkRecord: A persisted chunk keyed by its content hash
//   - DocumentView: The grouped result of a closest-date query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

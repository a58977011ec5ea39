// Package normalisers provides implementations of the Normaliser interface.
// Each normaliser knows how to extract text and metadata from one file type.
//
// Subpackages:
//   - pdf: text and Keywords metadata via pdfcpu
package normalisers

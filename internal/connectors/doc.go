// Package connectors provides the document sources docvault ingests from.
// Each connector knows how to find documents in one kind of location.
//
// Subpackages:
//   - filesystem: loads PDFs from a local directory and watches it for new files
package connectors

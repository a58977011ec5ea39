package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// Rule widths used between sections and chunks.
const (
	wideRule   = 50
	narrowRule = 30
)

// Messages printed when a query has nothing to show.
const (
	NoMatch     = "No matching documents found."
	NoDocuments = "No documents found in the database."
)

// Document writes a closest-date result: document metadata followed by
// each chunk numbered from 1. A nil view prints NoMatch.
func Document(w io.Writer, view *domain.DocumentView) {
	if view == nil {
		fmt.Fprintf(w, "\n%s\n", NoMatch)
		return
	}

	fmt.Fprintln(w, "\nFound Document:")
	fmt.Fprintln(w, rule(wideRule))
	fmt.Fprintf(w, "Source: %s\n", view.Metadata.Source)
	fmt.Fprintf(w, "Date: %s\n", view.Metadata.Date)
	fmt.Fprintf(w, "Version: %s\n", view.Metadata.Version)
	fmt.Fprintf(w, "Security Level: %s\n", view.Metadata.Security)
	fmt.Fprintf(w, "\nTotal Chunks: %d\n", view.TotalChunks)

	fmt.Fprintln(w, "\nDocument Content:")
	fmt.Fprintln(w, rule(wideRule))
	for _, c := range view.Chunks {
		fmt.Fprintf(w, "\nChunk %d of %d:\n", c.Metadata.ChunkID+1, c.Metadata.TotalChunks)
		fmt.Fprintln(w, c.Content)
		fmt.Fprintln(w, rule(narrowRule))
	}
}

// Chunks writes every stored chunk with its full metadata.
// An empty slice prints NoDocuments.
func Chunks(w io.Writer, chunks []domain.Chunk) {
	if len(chunks) == 0 {
		fmt.Fprintf(w, "\n%s\n", NoDocuments)
		return
	}

	fmt.Fprintln(w, "\nAll Stored Documents:")
	fmt.Fprintln(w, rule(wideRule))
	for i, c := range chunks {
		fmt.Fprintf(w, "\nDocument %d:\n", i+1)
		fmt.Fprintf(w, "Source: %s\n", c.Metadata.Source)
		fmt.Fprintf(w, "Content: %s\n", c.Content)
		fmt.Fprintf(w, "Date: %s\n", c.Metadata.Date)
		fmt.Fprintf(w, "Version: %s\n", c.Metadata.Version)
		fmt.Fprintf(w, "Security Level: %s\n", c.Metadata.Security)
		fmt.Fprintf(w, "Chunk: %d of %d\n", c.Metadata.ChunkID+1, c.Metadata.TotalChunks)
		fmt.Fprintln(w, rule(wideRule))
	}
}

// Report writes a one-line summary of an ingestion.
func Report(w io.Writer, source string, r domain.IngestReport) {
	if r.AlreadyPopulated {
		fmt.Fprintln(w, "Documents already exist in the database")
		return
	}
	fmt.Fprintf(w, "%s: %d stored, %d failed (%d loaded)\n", source, r.Stored, r.Failed, r.Loaded)
}

// DocumentString returns Document's output as a string.
func DocumentString(view *domain.DocumentView) string {
	var b strings.Builder
	Document(&b, view)
	return b.String()
}

// ChunksString returns Chunks' output as a string.
func ChunksString(chunks []domain.Chunk) string {
	var b strings.Builder
	Chunks(&b, chunks)
	return b.String()
}

func rule(n int) string {
	return strings.Repeat("-", n)
}

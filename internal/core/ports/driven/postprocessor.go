package driven

import (
	"context"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// PostProcessor processes document content to produce text chunks.
// PostProcessors are chained in a pipeline (e.g., chunking, cleanup).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and returns chunk texts.
	// If the processor modifies chunks (e.g., cleanup), it receives and returns chunks.
	// If the processor creates chunks (e.g., chunker), it receives nil and returns new chunks.
	Process(ctx context.Context, doc *domain.Document, chunks []string) ([]string, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document through all processors in order.
	// Returns the final chunk texts after all processing.
	Process(ctx context.Context, doc *domain.Document) ([]string, error)
}

package driven

import (
	"context"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// Normaliser turns a file on disk into a text document.
// Each normaliser handles a single file extension (e.g. ".pdf").
type Normaliser interface {
	// Extension returns the lower-case file extension handled, including the dot.
	Extension() string

	// Normalise extracts text and embedded keyword metadata from the file at path.
	Normalise(ctx context.Context, path string) (*domain.Document, error)
}

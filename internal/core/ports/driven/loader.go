package driven

import (
	"context"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// DocumentLoader turns files on disk into chunks ready for storage.
// Chunks missing date, version or security metadata are dropped by the loader.
type DocumentLoader interface {
	// LoadDirectory processes every supported file directly inside dir.
	// Per-file failures are logged and skipped; only an unreadable
	// directory is returned as an error.
	LoadDirectory(ctx context.Context, dir string) ([]domain.Chunk, error)

	// LoadFile processes a single file.
	LoadFile(ctx context.Context, path string) ([]domain.Chunk, error)
}

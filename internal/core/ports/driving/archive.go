package driving

import (
	"context"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// ArchiveService stores and queries document chunks.
//
// No method returns an error: failures are logged and reported through
// the return value (false, nil or an empty slice) so callers only need
// sentinel checks.
type ArchiveService interface {
	// StoreChunk validates metadata, derives the chunk ID and persists it.
	StoreChunk(ctx context.Context, content string, meta domain.ChunkMetadata) bool

	// StoreInitialBatch ingests the configured PDF directory unless the
	// archive already holds chunks.
	StoreInitialBatch(ctx context.Context) domain.IngestReport

	// StoreFile ingests a single PDF regardless of existing content.
	StoreFile(ctx context.Context, path string) domain.IngestReport

	// FindClosestDate returns the highest-version document on the stored
	// date nearest to targetDate (YYYY-MM-DD).
	FindClosestDate(ctx context.Context, targetDate string) *domain.DocumentView

	// FindClosestDateWithSecurity returns the nearest document labelled
	// securityLevel.
	FindClosestDateWithSecurity(ctx context.Context, targetDate, securityLevel string) *domain.DocumentView

	// ListAll returns every stored chunk, date ascending then version
	// descending (string order).
	ListAll(ctx context.Context) []domain.Chunk

	// Clear removes every stored chunk.
	Clear(ctx context.Context) bool
}

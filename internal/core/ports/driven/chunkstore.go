package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/docvault/internal/core/domain"
)

// ChunkStore persists chunk records in a single table.
// Backed by SQLite; an in-memory implementation exists for tests.
//
// Methods return infrastructure errors unchanged. Turning them into
// user-facing sentinels is the archive service's job.
type ChunkStore interface {
	// Save inserts a record. A record whose ID is already stored
	// fails with domain.ErrAlreadyExists.
	Save(ctx context.Context, rec domain.ChunkRecord) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// ClosestDate returns every record on the stored date nearest to target.
	// Equidistant dates resolve to the earlier one. Records are ordered by
	// source, then chunk ID. An empty store yields an empty slice.
	ClosestDate(ctx context.Context, target time.Time) ([]domain.ChunkRecord, error)

	// ClosestDateWithSecurity restricts candidates to records labelled
	// security (compared case-insensitively), picks the nearest (date, source) pair (earlier date, then
	// smaller source on ties) and returns that pair's records ordered by
	// chunk ID.
	ClosestDateWithSecurity(ctx context.Context, target time.Time, security string) ([]domain.ChunkRecord, error)

	// List returns every record ordered by date ascending, then version
	// descending. Versions compare as plain strings.
	List(ctx context.Context) ([]domain.ChunkRecord, error)

	// Clear deletes every record and reports how many were removed.
	Clear(ctx context.Context) (int64, error)
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
// Ordering and tie-breaks match the SQLite store.
type ChunkStore struct {
	mu      sync.RWMutex
	records []domain.ChunkRecord
	ids     map[string]struct{}
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		ids: make(map[string]struct{}),
	}
}

// Save stores a record unless its ID is already present.
func (s *ChunkStore) Save(_ context.Context, rec domain.ChunkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[rec.ID]; ok {
		return fmt.Errorf("saving chunk %s: %w", rec.ID, domain.ErrAlreadyExists)
	}
	s.ids[rec.ID] = struct{}{}
	s.records = append(s.records, rec)
	return nil
}

// Count returns the number of stored records.
func (s *ChunkStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// ClosestDate returns every record on the stored date nearest to target.
func (s *ChunkStore) ClosestDate(_ context.Context, target time.Time) ([]domain.ChunkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best, ok := closest(s.records, target, func(domain.ChunkRecord) bool { return true })
	if !ok {
		return []domain.ChunkRecord{}, nil
	}

	result := filter(s.records, func(r domain.ChunkRecord) bool {
		return r.Metadata.Date == best.Metadata.Date
	})
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Metadata, result[j].Metadata
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.ChunkID < b.ChunkID
	})
	return result, nil
}

// ClosestDateWithSecurity returns the chunks of the nearest document labelled security.
func (s *ChunkStore) ClosestDateWithSecurity(
	_ context.Context, target time.Time, security string,
) ([]domain.ChunkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	labelled := func(r domain.ChunkRecord) bool { return strings.EqualFold(r.Metadata.Security, security) }
	best, ok := closest(s.records, target, labelled)
	if !ok {
		return []domain.ChunkRecord{}, nil
	}

	result := filter(s.records, func(r domain.ChunkRecord) bool {
		return labelled(r) &&
			r.Metadata.Date == best.Metadata.Date &&
			r.Metadata.Source == best.Metadata.Source
	})
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Metadata.ChunkID < result[j].Metadata.ChunkID
	})
	return result, nil
}

// List returns every record ordered by date, then version descending as strings.
func (s *ChunkStore) List(_ context.Context) ([]domain.ChunkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ChunkRecord, len(s.records))
	copy(result, s.records)
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Metadata, result[j].Metadata
		switch {
		case a.Date != b.Date:
			return a.Date < b.Date
		case a.Version != b.Version:
			return a.Version > b.Version
		case a.Source != b.Source:
			return a.Source < b.Source
		default:
			return a.ChunkID < b.ChunkID
		}
	})
	return result, nil
}

// Clear removes every record.
func (s *ChunkStore) Clear(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.records))
	s.records = nil
	s.ids = make(map[string]struct{})
	return n, nil
}

// closest picks the matching record nearest to target.
// Ties go to the earlier date, then the smaller source.
func closest(records []domain.ChunkRecord, target time.Time, match func(domain.ChunkRecord) bool) (domain.ChunkRecord, bool) {
	var (
		best     domain.ChunkRecord
		bestDist int64
		found    bool
	)
	for _, r := range records {
		if !match(r) {
			continue
		}
		d, err := domain.ParseDate(r.Metadata.Date)
		if err != nil {
			continue
		}
		// Seconds, not time.Duration, which saturates past ~292 years.
		dist := d.Unix() - target.Unix()
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < bestDist || (dist == bestDist && before(r.Metadata, best.Metadata)) {
			best, bestDist, found = r, dist, true
		}
	}
	return best, found
}

func before(a, b domain.ChunkMetadata) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.Source < b.Source
}

func filter(records []domain.ChunkRecord, keep func(domain.ChunkRecord) bool) []domain.ChunkRecord {
	out := []domain.ChunkRecord{}
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

package services

import (
	"context"
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
	"github.com/custodia-labs/docvault/internal/logger"
)

// Ensure ArchiveService implements the interface.
var _ driving.ArchiveService = (*ArchiveService)(nil)

// ArchiveService stores PDF chunks and answers closest-date queries.
type ArchiveService struct {
	chunks driven.ChunkStore
	loader driven.DocumentLoader
	pdfDir string
}

// NewArchiveService creates a new archive service.
// loader may be nil, in which case the ingest operations store nothing.
func NewArchiveService(chunks driven.ChunkStore, loader driven.DocumentLoader, pdfDir string) *ArchiveService {
	if pdfDir == "" {
		pdfDir = domain.DefaultPDFDir
	}
	return &ArchiveService{
		chunks: chunks,
		loader: loader,
		pdfDir: pdfDir,
	}
}

// StoreChunk validates meta, derives the chunk ID and persists the chunk.
func (s *ArchiveService) StoreChunk(ctx context.Context, content string, meta domain.ChunkMetadata) bool {
	rec, err := newChunkRecord(content, meta)
	if err != nil {
		logger.Error("Error storing document chunk: %v", err)
		return false
	}

	if err := s.chunks.Save(ctx, rec); err != nil {
		logger.Error("Error storing document chunk: %v", err)
		return false
	}
	return true
}

// StoreInitialBatch ingests the PDF directory if the archive is empty.
func (s *ArchiveService) StoreInitialBatch(ctx context.Context) domain.IngestReport {
	n, err := s.chunks.Count(ctx)
	if err != nil {
		logger.Error("Error checking existing documents: %v", err)
		return domain.IngestReport{}
	}
	if n > 0 {
		logger.Info("Documents already exist in the database")
		return domain.IngestReport{AlreadyPopulated: true}
	}

	if s.loader == nil {
		return domain.IngestReport{}
	}

	logger.Section("Ingest " + s.pdfDir)
	chunks, err := s.loader.LoadDirectory(ctx, s.pdfDir)
	if err != nil {
		logger.Error("Error loading documents: %v", err)
		return domain.IngestReport{}
	}
	return s.storeAll(ctx, chunks)
}

// StoreFile ingests a single PDF.
func (s *ArchiveService) StoreFile(ctx context.Context, path string) domain.IngestReport {
	if s.loader == nil {
		return domain.IngestReport{}
	}

	chunks, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		logger.Error("Error loading %s: %v", path, err)
		return domain.IngestReport{}
	}
	return s.storeAll(ctx, chunks)
}

func (s *ArchiveService) storeAll(ctx context.Context, chunks []domain.Chunk) domain.IngestReport {
	report := domain.IngestReport{Loaded: len(chunks)}
	for _, c := range chunks {
		if ctx.Err() != nil {
			report.Failed += len(chunks) - report.Stored - report.Failed
			logger.Warn("Ingest interrupted: %v", ctx.Err())
			break
		}
		if s.StoreChunk(ctx, c.Content, c.Metadata) {
			report.Stored++
			logger.Info("Stored chunk %d from %s", c.Metadata.ChunkID, c.Metadata.Source)
		} else {
			report.Failed++
		}
	}
	return report
}

// FindClosestDate returns the highest-version document on the stored date
// nearest to targetDate. Returns nil if nothing is stored or the date is invalid.
func (s *ArchiveService) FindClosestDate(ctx context.Context, targetDate string) *domain.DocumentView {
	target, err := domain.ParseDate(targetDate)
	if err != nil {
		logger.Error("Error finding closest date: %v", err)
		return nil
	}

	records, err := s.chunks.ClosestDate(ctx, target)
	if err != nil {
		logger.Error("Error finding closest date: %v", err)
		return nil
	}

	return domain.NewDocumentView(highestVersion(records))
}

// FindClosestDateWithSecurity returns the document labelled securityLevel
// nearest to targetDate. Labels compare case-insensitively. Returns nil if
// no document carries that label.
func (s *ArchiveService) FindClosestDateWithSecurity(
	ctx context.Context, targetDate, securityLevel string,
) *domain.DocumentView {
	target, err := domain.ParseDate(targetDate)
	if err != nil {
		logger.Error("Error finding closest date with security: %v", err)
		return nil
	}

	records, err := s.chunks.ClosestDateWithSecurity(ctx, target, securityLevel)
	if err != nil {
		logger.Error("Error finding closest date with security: %v", err)
		return nil
	}

	return domain.NewDocumentView(records)
}

// ListAll returns every stored chunk. Versions are ordered as strings,
// so "10.0" sorts below "9.0".
func (s *ArchiveService) ListAll(ctx context.Context) []domain.Chunk {
	records, err := s.chunks.List(ctx)
	if err != nil {
		logger.Error("Error retrieving documents: %v", err)
		return []domain.Chunk{}
	}

	chunks := make([]domain.Chunk, len(records))
	for i := range records {
		chunks[i] = records[i].Chunk
	}
	return chunks
}

// Clear removes every stored chunk.
func (s *ArchiveService) Clear(ctx context.Context) bool {
	n, err := s.chunks.Clear(ctx)
	if err != nil {
		logger.Error("Error clearing database: %v", err)
		return false
	}
	logger.Info("Database cleared successfully (%d chunks removed)", n)
	return true
}

// ChunkID returns the deduplication key for a chunk: the hex MD5 of
// content, date, version and chunk index concatenated.
func ChunkID(content, date, version string, chunkID int) string {
	sum := md5.Sum([]byte(content + date + version + strconv.Itoa(chunkID))) //nolint:gosec // fingerprint
	return hex.EncodeToString(sum[:])
}

// newChunkRecord validates meta and builds the record to persist.
// The stored date is normalised to YYYY-MM-DD.
func newChunkRecord(content string, meta domain.ChunkMetadata) (domain.ChunkRecord, error) {
	if strings.TrimSpace(content) == "" {
		return domain.ChunkRecord{}, fmt.Errorf("%w: empty content", domain.ErrInvalidInput)
	}

	date, err := domain.NormaliseDate(meta.Date)
	if err != nil {
		return domain.ChunkRecord{}, err
	}

	if _, err := version.NewVersion(meta.Version); err != nil {
		return domain.ChunkRecord{}, fmt.Errorf("%w: %q", domain.ErrInvalidVersion, meta.Version)
	}

	if strings.TrimSpace(meta.Security) == "" {
		return domain.ChunkRecord{}, fmt.Errorf("%w: empty security level", domain.ErrInvalidInput)
	}

	meta.Date = date
	return domain.ChunkRecord{
		ID: ChunkID(content, date, meta.Version, meta.ChunkID),
		Chunk: domain.Chunk{
			Content:  content,
			Metadata: meta,
		},
	}, nil
}

// highestVersion keeps only the records whose version compares equal to the
// highest version present. Records with unparseable versions are dropped
// unless none parse, in which case all are returned.
func highestVersion(records []domain.ChunkRecord) []domain.ChunkRecord {
	var highest *version.Version
	parsed := make([]*version.Version, len(records))
	for i := range records {
		v, err := version.NewVersion(records[i].Metadata.Version)
		if err != nil {
			continue
		}
		parsed[i] = v
		if highest == nil || v.GreaterThan(highest) {
			highest = v
		}
	}
	if highest == nil {
		return records
	}

	kept := make([]domain.ChunkRecord, 0, len(records))
	for i, v := range parsed {
		if v != nil && v.Equal(highest) {
			kept = append(kept, records[i])
		}
	}
	return kept
}

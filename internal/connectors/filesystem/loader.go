package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
	"github.com/custodia-labs/docvault/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Keyword names that must be present for a chunk to be stored.
const (
	KeyDate     = "date"
	KeyVersion  = "version"
	KeySecurity = "security"
)

// Loader normalises files and runs them through the post-processor pipeline.
type Loader struct {
	normaliser driven.Normaliser
	pipeline   driven.PostProcessorPipeline
}

// NewLoader creates a loader for files handled by normaliser.
func NewLoader(normaliser driven.Normaliser, pipeline driven.PostProcessorPipeline) *Loader {
	return &Loader{
		normaliser: normaliser,
		pipeline:   pipeline,
	}
}

// LoadDirectory processes every matching file directly inside dir, in name order.
// A file that fails is logged and skipped.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]domain.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var chunks []domain.Chunk
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return chunks, err
		}
		if entry.IsDir() || !l.Matches(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		fileChunks, err := l.LoadFile(ctx, path)
		if err != nil {
			logger.Error("Error processing %s: %v", entry.Name(), err)
			continue
		}
		chunks = append(chunks, fileChunks...)
	}

	return chunks, nil
}

// LoadFile processes a single file. Chunks without date, version and
// security keywords are dropped with a warning.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]domain.Chunk, error) {
	doc, err := l.normaliser.Normalise(ctx, path)
	if err != nil {
		return nil, err
	}

	texts, err := l.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("processing %s: %w", doc.Source, err)
	}
	logger.Debug("%s: %d pages, %d chunks", doc.Source, doc.Pages, len(texts))

	chunks := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		meta := domain.ChunkMetadata{
			Date:        doc.Keywords[KeyDate],
			Version:     doc.Keywords[KeyVersion],
			Security:    doc.Keywords[KeySecurity],
			Source:      doc.Source,
			ChunkID:     i,
			TotalChunks: len(texts),
		}
		if missing := missingKeys(meta); len(missing) > 0 {
			logger.Warn("Skipping chunk %d from %s: missing %s", i, doc.Source, strings.Join(missing, ", "))
			continue
		}
		chunks = append(chunks, domain.Chunk{Content: text, Metadata: meta})
	}

	return chunks, nil
}

// Matches reports whether name is a visible file with the normaliser's extension.
// The comparison is case-sensitive.
func (l *Loader) Matches(name string) bool {
	return !isHidden(name) && strings.HasSuffix(name, l.normaliser.Extension())
}

func missingKeys(meta domain.ChunkMetadata) []string {
	var missing []string
	if meta.Date == "" {
		missing = append(missing, KeyDate)
	}
	if meta.Version == "" {
		missing = append(missing, KeyVersion)
	}
	if meta.Security == "" {
		missing = append(missing, KeySecurity)
	}
	return missing
}

// isHidden reports whether the base name starts with a dot.
func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

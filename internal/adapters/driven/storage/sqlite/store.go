package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docvault/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// DatabaseFile is the file name of the archive database inside the data directory.
const DatabaseFile = "documents.db"

// Store is the SQLite database handle. It is opened once at startup,
// passed to whoever needs it and closed at shutdown.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the archive database in dataDir.
// If dataDir is empty, defaults to ./data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = domain.DefaultDataDir
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps every statement on the same session.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_document_chunks.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// chunkColumns is the column list shared by every read query. The date is
// cast so the driver hands it back as text rather than time.Time.
const chunkColumns = `d.id, d.content, CAST(d.date AS TEXT), d.version, d.security, d.source, d.chunk_id, d.total_chunks`

// Save inserts a chunk record.
func (s *chunkStore) Save(ctx context.Context, rec domain.ChunkRecord) error {
	meta := rec.Metadata
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO document_chunks
			(id, content, date, version, security, source, chunk_id, total_chunks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, rec.ID, rec.Content, meta.Date, meta.Version, meta.Security,
		meta.Source, meta.ChunkID, meta.TotalChunks)
	if err != nil {
		return fmt.Errorf("saving chunk: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving chunk: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("saving chunk %s: %w", rec.ID, domain.ErrAlreadyExists)
	}
	return nil
}

// Count returns the number of stored chunks.
func (s *chunkStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM document_chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// ClosestDate returns all chunks on the stored date nearest to target.
func (s *chunkStore) ClosestDate(ctx context.Context, target time.Time) ([]domain.ChunkRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		WITH closest AS (
			SELECT date
			FROM document_chunks
			GROUP BY date
			ORDER BY ABS(julianday(date) - julianday(?)), date
			LIMIT 1
		)
		SELECT `+chunkColumns+`
		FROM document_chunks d
		WHERE d.date = (SELECT date FROM closest)
		ORDER BY d.source, d.chunk_id
	`, target.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying closest date: %w", err)
	}
	defer rows.Close()

	return scanChunkRecords(rows)
}

// ClosestDateWithSecurity returns the chunks of the nearest document with the
// given label. Labels compare case-insensitively.
func (s *chunkStore) ClosestDateWithSecurity(
	ctx context.Context, target time.Time, security string,
) ([]domain.ChunkRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		WITH closest AS (
			SELECT DISTINCT date, source
			FROM document_chunks
			WHERE security = ? COLLATE NOCASE
			ORDER BY ABS(julianday(date) - julianday(?)), date, source
			LIMIT 1
		)
		SELECT `+chunkColumns+`
		FROM document_chunks d
		JOIN closest c ON d.date = c.date AND d.source = c.source
		WHERE d.security = ? COLLATE NOCASE
		ORDER BY d.chunk_id
	`, security, target.Format(domain.DateLayout), security)
	if err != nil {
		return nil, fmt.Errorf("querying closest date with security: %w", err)
	}
	defer rows.Close()

	return scanChunkRecords(rows)
}

// List returns all chunks ordered by date, then version (string order, descending).
func (s *chunkStore) List(ctx context.Context) ([]domain.ChunkRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+chunkColumns+`
		FROM document_chunks d
		ORDER BY d.date, d.version DESC, d.source, d.chunk_id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	defer rows.Close()

	return scanChunkRecords(rows)
}

// Clear deletes every chunk.
func (s *chunkStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM document_chunks")
	if err != nil {
		return 0, fmt.Errorf("clearing chunks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing chunks: %w", err)
	}
	return n, nil
}

// ==================== Helper Functions ====================

// scanChunkRecords reads every row of a chunkColumns query.
func scanChunkRecords(rows *sql.Rows) ([]domain.ChunkRecord, error) {
	records := []domain.ChunkRecord{}
	for rows.Next() {
		var rec domain.ChunkRecord
		meta := &rec.Metadata
		if err := rows.Scan(&rec.ID, &rec.Content, &meta.Date, &meta.Version,
			&meta.Security, &meta.Source, &meta.ChunkID, &meta.TotalChunks); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return records, nil
}

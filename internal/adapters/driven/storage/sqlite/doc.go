// Package sqlite provides the SQLite-backed chunk store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It owns a single table,
// document_chunks, and implements driven.ChunkStore on top of it.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations, so opening an existing
// database is idempotent.
//
// # Data Location
//
// The database file is documents.db inside the configured data directory
// (./data by default). The directory is created if it does not exist.
//
// # Dates
//
// Dates are stored as YYYY-MM-DD text and compared with julianday(), so the
// closest-date queries run entirely in SQL.
package sqlite

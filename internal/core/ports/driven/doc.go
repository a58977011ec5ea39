// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ChunkStore: Chunk persistence and closest-date queries (SQLite)
//   - DocumentLoader: Directory/file ingestion into chunks
//   - Normaliser: Text and keyword extraction from a file (PDF)
//   - PostProcessor / PostProcessorPipeline: Chunking of extracted text
//   - ConfigStore: Application configuration (TOML)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven

package domain

// Document is a source PDF after text extraction, before chunking.
type Document struct {
	// Source is the base file name the document was read from.
	Source string

	// Path is the location on disk.
	Path string

	// Content is the extracted text, pages separated by blank lines.
	Content string

	// Pages is the page count reported by the PDF.
	Pages int

	// Keywords holds the key/value pairs parsed from the PDF Keywords field.
	// Absent or malformed keywords leave it empty, never nil.
	Keywords map[string]string
}

// ChunkMetadata describes where a chunk came from and how it is classified.
type ChunkMetadata struct {
	// Date is the document date in YYYY-MM-DD form.
	Date string `json:"date"`

	// Version is a free-form version string, e.g. "1.0" or "2.1.3".
	Version string `json:"version"`

	// Security is the classification label (Public, Confidential, ...).
	Security string `json:"security"`

	// Source is the originating file name.
	Source string `json:"source"`

	// ChunkID is the zero-based index of the chunk within its source.
	ChunkID int `json:"chunk_id"`

	// TotalChunks is the number of chunks the source was split into.
	TotalChunks int `json:"total_chunks"`
}

// Chunk is a slice of document text together with its metadata.
type Chunk struct {
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkRecord is a persisted chunk. ID is derived from the content and
// metadata, so it doubles as the deduplication key.
type ChunkRecord struct {
	ID string
	Chunk
}

// DocumentMetadata is the document-level subset of ChunkMetadata.
type DocumentMetadata struct {
	Date     string `json:"date"`
	Version  string `json:"version"`
	Security string `json:"security"`
	Source   string `json:"source"`
}

// DocumentView is the shape returned by the closest-date queries.
type DocumentView struct {
	// Chunks are the matching chunks in storage order.
	Chunks []Chunk `json:"chunks"`

	// TotalChunks is the number of chunks in the view.
	TotalChunks int `json:"total_chunks"`

	// Metadata is taken from the first chunk.
	Metadata DocumentMetadata `json:"document_metadata"`
}

// NewDocumentView builds a view from stored records.
// Returns nil when records is empty.
func NewDocumentView(records []ChunkRecord) *DocumentView {
	if len(records) == 0 {
		return nil
	}

	chunks := make([]Chunk, len(records))
	for i := range records {
		chunks[i] = records[i].Chunk
	}

	first := records[0].Metadata
	return &DocumentView{
		Chunks:      chunks,
		TotalChunks: len(chunks),
		Metadata: DocumentMetadata{
			Date:     first.Date,
			Version:  first.Version,
			Security: first.Security,
			Source:   first.Source,
		},
	}
}

// IngestReport summarises a batch or single-file ingestion.
type IngestReport struct {
	// AlreadyPopulated is set when a batch ingest was skipped
	// because the archive already holds chunks.
	AlreadyPopulated bool

	// Loaded is the number of chunks produced by the loader.
	Loaded int

	// Stored is the number of chunks persisted.
	Stored int

	// Failed is the number of chunks rejected or not persisted.
	Failed int
}

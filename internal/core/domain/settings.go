package domain

// Default locations, relative to the working directory.
const (
	DefaultDataDir = "./data"
	DefaultPDFDir  = "./data"
)

// Default chunker settings.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// StorageSettings configures where the archive database lives.
type StorageSettings struct {
	// DataDir holds documents.db.
	DataDir string
}

// IngestSettings configures where PDFs are read from.
type IngestSettings struct {
	// PDFDir is scanned (non-recursively) for *.pdf files.
	PDFDir string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Storage  StorageSettings
	Ingest   IngestSettings
	Pipeline PipelineConfig
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage:  StorageSettings{DataDir: DefaultDataDir},
		Ingest:   IngestSettings{PDFDir: DefaultPDFDir},
		Pipeline: DefaultPipelineConfig(),
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration.
// Works out-of-the-box with chunker using sensible defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": DefaultChunkSize,
				"overlap":    DefaultChunkOverlap,
			},
		},
	}
}

package driving

import "github.com/custodia-labs/docvault/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores a single key given as text, e.g.
	// ("pipeline.chunker.chunk_size", "500"). Unknown keys and values of
	// the wrong shape fail with domain.ErrInvalidInput.
	Set(key, value string) error

	// Keys lists the keys accepted by Set.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// GetPipelineConfig returns the post-processor pipeline configuration.
	GetPipelineConfig() domain.PipelineConfig

	// ConfigPath returns the backing configuration file.
	ConfigPath() string
}

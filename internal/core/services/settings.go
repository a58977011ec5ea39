package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDataDir      = "storage.data_dir"
	keyPDFDir       = "ingest.pdf_dir"
	keyProcessors   = "pipeline.processors"
	keyChunkSize    = "pipeline.chunker.chunk_size"
	keyChunkOverlap = "pipeline.chunker.overlap"
)

// settingKind says how Set parses a textual value.
type settingKind int

const (
	kindString settingKind = iota
	kindPositiveInt
	kindNonNegativeInt
	kindList
)

var settingKinds = map[string]settingKind{
	keyDataDir:      kindString,
	keyPDFDir:       kindString,
	keyProcessors:   kindList,
	keyChunkSize:    kindPositiveInt,
	keyChunkOverlap: kindNonNegativeInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			DataDir: s.getString(keyDataDir, defaults.Storage.DataDir),
		},
		Ingest: domain.IngestSettings{
			PDFDir: s.getString(keyPDFDir, defaults.Ingest.PDFDir),
		},
		Pipeline: s.GetPipelineConfig(),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save data dir: %w", err)
	}
	if err := s.configStore.Set(keyPDFDir, settings.Ingest.PDFDir); err != nil {
		return fmt.Errorf("save pdf dir: %w", err)
	}
	if len(settings.Pipeline.Processors) > 0 {
		if err := s.configStore.Set(keyProcessors, settings.Pipeline.Processors); err != nil {
			return fmt.Errorf("save processors: %w", err)
		}
	}

	for name, cfg := range settings.Pipeline.ProcessorConfigs {
		for k, v := range cfg {
			key := "pipeline." + name + "." + k
			if err := s.configStore.Set(key, v); err != nil {
				return fmt.Errorf("save %s: %w", key, err)
			}
		}
	}

	return nil
}

// Set parses value according to key and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(kind, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the backing configuration file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// GetPipelineConfig returns the post-processor pipeline configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) GetPipelineConfig() domain.PipelineConfig {
	defaults := domain.DefaultPipelineConfig()

	if processors := s.configStore.GetStringSlice(keyProcessors); len(processors) > 0 {
		defaults.Processors = processors
	}

	// Overlay per-processor keys on top of the defaults
	for _, name := range defaults.Processors {
		cfg := s.loadProcessorConfig("pipeline." + name + ".")
		if len(cfg) == 0 {
			continue
		}
		existing := defaults.ProcessorConfigs[name]
		if existing == nil {
			existing = make(map[string]any)
		}
		for k, v := range cfg {
			existing[k] = v
		}
		defaults.ProcessorConfigs[name] = existing
	}

	return defaults
}

// loadProcessorConfig loads config keys with a given prefix into a map.
func (s *SettingsService) loadProcessorConfig(prefix string) map[string]any {
	cfg := make(map[string]any)

	for _, key := range []string{"chunk_size", "overlap"} {
		if val, exists := s.configStore.Get(prefix + key); exists {
			cfg[key] = val
		}
	}

	return cfg
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func parseSetting(kind settingKind, value string) (any, error) {
	switch kind {
	case kindPositiveInt, kindNonNegativeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", value)
		}
		if n < 0 || (kind == kindPositiveInt && n == 0) {
			return nil, fmt.Errorf("%d is out of range", n)
		}
		return n, nil
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("list is empty")
		}
		return items, nil
	default:
		if value == "" {
			return nil, fmt.Errorf("value is empty")
		}
		return value, nil
	}
}

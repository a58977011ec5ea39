package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docvault/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(nil))
	require.NotNil(t, service)
	assert.Equal(t, ":memory:", service.ConfigPath())
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(nil))

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, service.GetDefaults(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"storage.data_dir":            "/srv/vault",
		"ingest.pdf_dir":              "/srv/inbox",
		"pipeline.chunker.chunk_size": int64(400),
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "/srv/vault", settings.Storage.DataDir)
	assert.Equal(t, "/srv/inbox", settings.Ingest.PDFDir)

	chunker := settings.Pipeline.GetProcessorConfig("chunker")
	assert.Equal(t, int64(400), chunker["chunk_size"])
	assert.Equal(t, domain.DefaultChunkOverlap, chunker["overlap"])
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore(nil)
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Storage.DataDir = "/tmp/vault"
	settings.Ingest.PDFDir = "/tmp/pdfs"

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "/tmp/vault", store.GetString("storage.data_dir"))
	assert.Equal(t, "/tmp/pdfs", store.GetString("ingest.pdf_dir"))
	assert.Equal(t, []string{"chunker"}, store.GetStringSlice("pipeline.processors"))
	assert.Equal(t, domain.DefaultChunkSize, store.GetInt("pipeline.chunker.chunk_size"))

	reloaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *reloaded)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  any
	}{
		{name: "data dir", key: "storage.data_dir", value: " /data ", want: "/data"},
		{name: "pdf dir", key: "ingest.pdf_dir", value: "./pdfs", want: "./pdfs"},
		{name: "chunk size", key: "pipeline.chunker.chunk_size", value: "500", want: 500},
		{name: "zero overlap", key: "pipeline.chunker.overlap", value: "0", want: 0},
		{name: "processors", key: "pipeline.processors", value: "chunker, , extra", want: []string{"chunker", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore(nil)
			service := NewSettingsService(store)

			require.NoError(t, service.Set(tt.key, tt.value))

			got, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown key", key: "search.mode", value: "text"},
		{name: "empty string", key: "storage.data_dir", value: "  "},
		{name: "non-numeric size", key: "pipeline.chunker.chunk_size", value: "big"},
		{name: "zero size", key: "pipeline.chunker.chunk_size", value: "0"},
		{name: "negative overlap", key: "pipeline.chunker.overlap", value: "-1"},
		{name: "empty list", key: "pipeline.processors", value: " , "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore(nil)
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, ok := store.Get(tt.key)
			assert.False(t, ok)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(nil))

	assert.Equal(t, []string{
		"ingest.pdf_dir",
		"pipeline.chunker.chunk_size",
		"pipeline.chunker.overlap",
		"pipeline.processors",
		"storage.data_dir",
	}, service.Keys())
}

func TestSettingsService_GetPipelineConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(nil))
		assert.Equal(t, domain.DefaultPipelineConfig(), service.GetPipelineConfig())
	})

	t.Run("custom processors list", func(t *testing.T) {
		store := memory.NewConfigStore(map[string]any{
			"pipeline.processors":      []any{"chunker"},
			"pipeline.chunker.overlap": int64(5),
		})
		cfg := NewSettingsService(store).GetPipelineConfig()

		assert.Equal(t, []string{"chunker"}, cfg.Processors)
		assert.Equal(t, int64(5), cfg.GetProcessorConfig("chunker")["overlap"])
		assert.Equal(t, domain.DefaultChunkSize, cfg.GetProcessorConfig("chunker")["chunk_size"])
	})
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docvault/internal/adapters/driving/cli"
)

func TestBootstrap_FlagsOpenArchive(t *testing.T) {
	root := t.TempDir()
	opts := cli.Options{
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
		PDFDir:    filepath.Join(root, "pdfs"),
	}

	svc, cleanup, err := bootstrap(opts)
	require.NoError(t, err)
	defer func() { assert.NoError(t, cleanup()) }()

	assert.Equal(t, opts.DataDir, svc.DataDir)
	assert.Equal(t, opts.PDFDir, svc.PDFDir)
	require.NotNil(t, svc.Archive)
	require.NotNil(t, svc.Settings)
	require.NotNil(t, svc.Watch)
	assert.FileExists(t, filepath.Join(opts.DataDir, "documents.db"))
	assert.Empty(t, svc.Archive.ListAll(context.Background()))
}

func TestBootstrap_ConfigFileUsedWithoutFlags(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	dataDir := filepath.Join(root, "from-config")

	store, err := file.NewConfigStore(configDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("storage.data_dir", dataDir))
	require.NoError(t, store.Set("ingest.pdf_dir", root))

	svc, cleanup, err := bootstrap(cli.Options{ConfigDir: configDir})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, dataDir, svc.DataDir)
	assert.Equal(t, root, svc.PDFDir)
	assert.FileExists(t, filepath.Join(dataDir, "documents.db"))
}

func TestBootstrap_SettingsOnlySkipsArchive(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")

	svc, cleanup, err := bootstrap(cli.Options{
		ConfigDir:    filepath.Join(root, "config"),
		DataDir:      dataDir,
		SettingsOnly: true,
	})
	require.NoError(t, err)
	require.NoError(t, cleanup())

	assert.NotNil(t, svc.Settings)
	assert.Nil(t, svc.Archive)
	assert.NoDirExists(t, dataDir)
}

func TestBootstrap_UnknownProcessor(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	store, err := file.NewConfigStore(configDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("pipeline.processors", []string{"summariser"}))

	_, _, err = bootstrap(cli.Options{ConfigDir: configDir, DataDir: filepath.Join(root, "data")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "building pipeline")
}

func TestBootstrap_BadConfig(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, file.ConfigFile), []byte("not = [toml"), 0o600))

	_, _, err := bootstrap(cli.Options{ConfigDir: configDir})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestBootstrap_WatchStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	svc, cleanup, err := bootstrap(cli.Options{
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
		PDFDir:    root,
	})
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, svc.Watch(ctx, func(context.Context, string) {}))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("", "a", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docvault/internal/core/domain"
	coreservices "github.com/custodia-labs/docvault/internal/core/services"
	"github.com/custodia-labs/docvault/internal/logger"
)

// stubLoader returns canned chunks instead of reading PDFs.
type stubLoader struct {
	chunks []domain.Chunk
}

func (l *stubLoader) LoadDirectory(context.Context, string) ([]domain.Chunk, error) {
	return l.chunks, nil
}

func (l *stubLoader) LoadFile(_ context.Context, path string) ([]domain.Chunk, error) {
	c := testChunk("watched "+filepath.Base(path), "2024-06-01", "1.0", "Public")
	c.Metadata.Source = filepath.Base(path)
	return []domain.Chunk{c}, nil
}

func testChunk(content, date, version, security string) domain.Chunk {
	return domain.Chunk{
		Content: content,
		Metadata: domain.ChunkMetadata{
			Date:        date,
			Version:     version,
			Security:    security,
			Source:      "minutes.pdf",
			ChunkID:     0,
			TotalChunks: 1,
		},
	}
}

// setupTestServices installs archive and settings services backed by
// memory stores. The returned func restores package state.
func setupTestServices() func() {
	loader := &stubLoader{chunks: []domain.Chunk{
		testChunk("Board minutes", "2024-01-01", "1.0", "Public"),
		testChunk("Budget plan", "2024-03-01", "2.0", "Top Secret"),
	}}

	SetServices(&Services{
		Archive:  coreservices.NewArchiveService(memory.NewChunkStore(), loader, "testdata"),
		Settings: coreservices.NewSettingsService(memory.NewConfigStore(nil)),
		PDFDir:   "testdata",
	})

	return func() {
		SetServices(nil)
		SetBootstrap(nil)
		resetFlags()
	}
}

func resetFlags() {
	opts = Options{}
	searchSecurity = ""
	searchJSON = false
	listJSON = false
	clearYes = false
	ingestFile = ""
	watchInitial = false
	shellLine = false
	logger.SetVerbose(false)
}

// execute runs the root command with args, feeding in as stdin.
func execute(in string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(in))
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// seed stores the stub loader's chunks.
func seed(t *testing.T) {
	t.Helper()
	report := services.Archive.StoreInitialBatch(context.Background())
	require.Equal(t, 2, report.Stored)
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docvault", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "Keywords")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	verbose := flags.Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	for _, name := range []string{"data-dir", "pdf-dir", "config-dir"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestRootCmd_HasCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"ingest", "search", "list", "clear", "watch", "settings", "version", "shell"} {
		assert.True(t, names[want], want)
	}
}

func TestRootCmd_DefaultRunsShell(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("6\n")

	require.NoError(t, err)
	assert.Contains(t, out, "Store new documents from PDFs")
	assert.Contains(t, out, "Thank you for using docvault!")
}

func TestRootCmd_NoServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)

	_, err := execute("", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive service not configured")
}

func TestBootstrap_ReceivesFlags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	svc := services
	SetServices(nil)

	var got Options
	closed := false
	SetBootstrap(func(o Options) (*Services, func() error, error) {
		got = o
		return svc, func() error {
			closed = true
			return nil
		}, nil
	})

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--data-dir", "/tmp/dv", "--pdf-dir", "/tmp/pdfs", "--config-dir", "/tmp/cfg", "-v", "list"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, Execute())

	assert.Equal(t, Options{
		Verbose:   true,
		DataDir:   "/tmp/dv",
		PDFDir:    "/tmp/pdfs",
		ConfigDir: "/tmp/cfg",
	}, got)
	assert.True(t, logger.IsVerbose())
	assert.True(t, closed)
	assert.Nil(t, services)
}

func TestBootstrap_SettingsOnly(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"settings"}, true},
		{[]string{"settings", "show"}, true},
		{[]string{"settings", "set", "ingest.pdf_dir", "/tmp"}, true},
		{[]string{"list"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()
			svc := services
			SetServices(nil)

			var got Options
			SetBootstrap(func(o Options) (*Services, func() error, error) {
				got = o
				return svc, func() error { return nil }, nil
			})
			defer releaseServices()

			_, err := execute("", tt.args...)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.SettingsOnly)
		})
	}
}

func TestBootstrap_Error(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)
	SetBootstrap(func(Options) (*Services, func() error, error) {
		return nil, nil, errors.New("opening database: disk full")
	})

	_, err := execute("", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestReleaseServices_LogsCloseError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	var log bytes.Buffer
	prev := logger.SetOutput(&log)
	defer logger.SetOutput(prev)

	release = func() error { return errors.New("busy") }
	releaseServices()

	assert.Contains(t, log.String(), "Closing archive: busy")
	assert.Nil(t, services)
	assert.Nil(t, release)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("", "watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watcher not configured")
}

func TestWatchCmd_StoresEachFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	services.Watch = func(ctx context.Context, handle func(context.Context, string)) error {
		handle(ctx, "testdata/first.pdf")
		handle(ctx, "testdata/second.pdf")
		return nil
	}

	out, err := execute("", "watch")

	require.NoError(t, err)
	assert.Contains(t, out, "Watching testdata for new documents")
	assert.Contains(t, out, "first.pdf: 1 stored, 0 failed (1 loaded)")
	assert.Contains(t, out, "second.pdf: 1 stored, 0 failed (1 loaded)")
	assert.Len(t, services.Archive.ListAll(context.Background()), 2)
}

func TestWatchCmd_Initial(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	services.Watch = func(context.Context, func(context.Context, string)) error { return nil }

	out, err := execute("", "watch", "--initial")

	require.NoError(t, err)
	assert.Contains(t, out, "testdata: 2 stored")
}

func TestWatchCmd_PropagatesError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	services.Watch = func(context.Context, func(context.Context, string)) error {
		return assert.AnError
	}

	_, err := execute("", "watch")

	assert.ErrorIs(t, err, assert.AnError)
}

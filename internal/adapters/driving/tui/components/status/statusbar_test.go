package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	b := NewBar(styles.DefaultStyles())

	require.NotNil(t, b)
	assert.Equal(t, StateReady, b.State())
	assert.Contains(t, b.View(), "Ready")
}

func TestNewBar_NilStyles(t *testing.T) {
	b := NewBar(nil)

	require.NotNil(t, b)
	assert.NotNil(t, b.styles)
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		name  string
		apply func(b *Bar)
		state State
		want  string
	}{
		{"working", func(b *Bar) { b.Working("Processing and storing documents...") }, StateWorking, "Processing and storing documents..."},
		{"notice", func(b *Bar) { b.Notice("Database cleared.") }, StateNotice, "Database cleared."},
		{"error", func(b *Bar) { b.Error(errors.New("boom")) }, StateError, "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar(nil)
			tt.apply(b)

			assert.Equal(t, tt.state, b.State())
			assert.Contains(t, b.View(), tt.want)
		})
	}
}

func TestBar_Hints(t *testing.T) {
	b := NewBar(nil)
	b.SetWidth(120)
	b.SetHints(keymap.DefaultKeyMap().MenuHelp())

	view := b.View()

	assert.Contains(t, view, "1-6: choose")
	assert.Contains(t, view, "q: quit")
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil)
	b.Notice("done")

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
}

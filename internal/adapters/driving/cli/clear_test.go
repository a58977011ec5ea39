package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearCmd_Flags(t *testing.T) {
	flag := clearCmd.Flags().Lookup("yes")
	require.NotNil(t, flag)
	assert.Equal(t, "y", flag.Shorthand)
}

func TestClearCmd_Confirmation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		args      []string
		remaining int
		want      string
	}{
		{"confirmed", "y\n", nil, 0, "Database cleared."},
		{"confirmed upper", "Y\n", nil, 0, "Database cleared."},
		{"declined", "n\n", nil, 2, "Aborted."},
		{"no input", "", nil, 2, "Aborted."},
		{"yes flag", "", []string{"--yes"}, 0, "Database cleared."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()
			seed(t)

			out, err := execute(tt.input, append([]string{"clear"}, tt.args...)...)

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.Len(t, services.Archive.ListAll(context.Background()), tt.remaining)
		})
	}
}

package prompt

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/messages"
)

var errEmpty = errors.New("empty")

func notEmpty(s string) error {
	if s == "" {
		return errEmpty
	}
	return nil
}

func typeText(v *View, s string) {
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func enter(v *View) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestView_EmptyBeforeStart(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, v.View())
}

func TestView_SingleStep(t *testing.T) {
	v := NewView(nil)
	v.Start(messages.ActionSearch, []Step{{Label: "Date: "}})

	typeText(v, "2024-01-01")
	cmd := enter(v)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.PromptCompleted{
		Action: messages.ActionSearch,
		Values: []string{"2024-01-01"},
	}, cmd())
	assert.Equal(t, messages.ActionSearch, v.Action())
}

func TestView_MultipleSteps(t *testing.T) {
	v := NewView(nil)
	v.Start(messages.ActionSearchSecurity, []Step{
		{Label: "Date: "},
		{Label: "Security: "},
	})

	typeText(v, "2024-01-01")
	enter(v)
	assert.Contains(t, v.View(), "Security:")
	assert.Equal(t, "", v.field.Value())

	typeText(v, " top secret ")
	cmd := enter(v)

	require.NotNil(t, cmd)
	done, ok := cmd().(messages.PromptCompleted)
	require.True(t, ok)
	assert.Equal(t, []string{"2024-01-01", "top secret"}, done.Values)
}

func TestView_ValidationErrorKeepsStep(t *testing.T) {
	v := NewView(nil)
	v.Start(messages.ActionSearch, []Step{
		{Label: "Date: ", Hint: "Please enter date in YYYY-MM-DD format", Validate: notEmpty},
	})

	cmd := enter(v)

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), errEmpty)
	out := v.View()
	assert.Contains(t, out, "Error: empty")
	assert.Contains(t, out, "Please enter date in YYYY-MM-DD format")

	typeText(v, "x")
	cmd = enter(v)
	require.NotNil(t, cmd)
	assert.NoError(t, v.Err())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := NewView(nil)
	v.Start(messages.ActionClear, []Step{{Label: "Sure? "}})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
	assert.False(t, v.field.Focused())
}

func TestView_RestartClearsState(t *testing.T) {
	v := NewView(nil)
	v.Start(messages.ActionSearch, []Step{{Label: "Date: ", Validate: notEmpty}})
	enter(v)
	require.Error(t, v.Err())

	v.Start(messages.ActionClear, []Step{{Label: "Sure? "}})

	assert.NoError(t, v.Err())
	assert.Equal(t, messages.ActionClear, v.Action())
}

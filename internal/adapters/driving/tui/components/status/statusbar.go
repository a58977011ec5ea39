// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/styles"
)

// State represents what the status bar is reporting.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateNotice  State = "notice"
	StateError   State = "error"
)

// Bar displays the latest status message and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	state   State
	message string
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Bar{
		styles: s,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateWorking:
		return b.styles.Muted.Render(b.message)
	case StateNotice:
		return b.styles.Success.Render(b.message)
	case StateError:
		return b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message))
	case StateReady:
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, h := range b.hints {
		help := h.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", help.Key, help.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// Working shows message as an in-progress operation.
func (b *Bar) Working(message string) {
	b.state = StateWorking
	b.message = message
}

// Notice shows message as a completed operation.
func (b *Bar) Notice(message string) {
	b.state = StateNotice
	b.message = message
}

// Error shows err.
func (b *Bar) Error(err error) {
	b.state = StateError
	b.message = err.Error()
}

// SetHints sets the keybindings listed on the right.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the status bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}

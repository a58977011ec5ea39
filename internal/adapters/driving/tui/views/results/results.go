// Package results provides the scrollable result view for the TUI.
package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/styles"
)

// Lines reserved for the title, separator and footer.
const reserved = 6

// View shows rendered query output in a viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	title  string
	body   string
	width  int
	height int
}

// NewView creates a new results view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 24-reserved),
		width:    80,
		height:   24,
	}
}

// SetContent replaces the displayed output and scrolls to the top.
func (v *View) SetContent(title, body string) {
	v.title = title
	v.body = strings.TrimLeft(body, "\n")
	v.viewport.SetContent(v.body)
	v.viewport.GotoTop()
}

// Update handles messages for the results view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		k := key.String()
		switch {
		case keymap.Matches(k, v.keymap.Back), keymap.Matches(k, v.keymap.Quit):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(k, v.keymap.Top):
			v.viewport.GotoTop()
			return v, nil
		case keymap.Matches(k, v.keymap.Bottom):
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the title, the visible part of the output and a footer.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 1)))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n\n")

	if v.viewport.TotalLineCount() > v.viewport.Height {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("[%3.f%%] ", v.viewport.ScrollPercent()*100)))
	}
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-reserved, 1)
}

// Title returns the current title.
func (v *View) Title() string {
	return v.title
}

// Body returns the current output.
func (v *View) Body() string {
	return v.body
}

// AtTop reports whether the viewport is scrolled to the top.
func (v *View) AtTop() bool {
	return v.viewport.AtTop()
}

// Package prompt provides the input form that collects the values an
// archive action needs, one labelled field at a time.
package prompt

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/styles"
)

// Step is a single prompt.
type Step struct {
	Label       string
	Placeholder string

	// Hint is shown under a validation error.
	Hint string

	// Validate may be nil.
	Validate func(string) error
}

// View collects one value per step and emits messages.PromptCompleted.
type View struct {
	styles *styles.Styles
	field  *input.Field

	action messages.Action
	steps  []Step
	values []string
	err    error
	width  int
	height int
}

// NewView creates a new prompt view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		field:  input.NewField(s),
		width:  80,
		height: 24,
	}
}

// Start begins collecting values for action.
func (v *View) Start(action messages.Action, steps []Step) tea.Cmd {
	v.action = action
	v.steps = steps
	v.values = make([]string, 0, len(steps))
	v.err = nil
	return v.showStep()
}

func (v *View) showStep() tea.Cmd {
	step := v.steps[len(v.values)]
	v.field.Reset()
	v.field.SetLabel(step.Label)
	v.field.SetPlaceholder(step.Placeholder)
	return v.field.Focus()
}

// Update handles messages for the prompt view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if len(v.steps) == 0 {
		return v, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			v.field.Blur()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case tea.KeyEnter:
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

func (v *View) submit() tea.Cmd {
	value := strings.TrimSpace(v.field.Value())
	step := v.steps[len(v.values)]
	if step.Validate != nil {
		if err := step.Validate(value); err != nil {
			v.err = err
			return nil
		}
	}

	v.err = nil
	v.values = append(v.values, value)
	if len(v.values) < len(v.steps) {
		return v.showStep()
	}

	v.field.Blur()
	done := messages.PromptCompleted{Action: v.action, Values: v.values}
	return func() tea.Msg { return done }
}

// View renders the current step.
func (v *View) View() string {
	if len(v.steps) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.field.View())
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		if hint := v.steps[len(v.values)].Hint; hint != "" {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(hint))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] submit  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.field.SetWidth(width)
}

// Action returns the action being collected for.
func (v *View) Action() messages.Action {
	return v.action
}

// Err returns the last validation error.
func (v *View) Err() error {
	return v.err
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docvault/internal/adapters/driving/format"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/views/prompt"
	"github.com/custodia-labs/docvault/internal/adapters/driving/tui/views/results"
	"github.com/custodia-labs/docvault/internal/core/domain"
)

// errClearFailed is shown when the archive reports a failed clear.
var errClearFailed = errors.New("clearing the database failed, see the log")

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is passed to archive calls.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	promptView  *prompt.View
	resultsView *results.View
	statusBar   *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// busy is set while an archive call is in flight. Keys other than
	// ctrl+c are ignored until it completes.
	busy bool

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, km),
		promptView:  prompt.NewView(s),
		resultsView: results.NewView(s, km),
		statusBar:   status.NewBar(s),
	}
	a.setView(messages.ViewMenu)
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle(format.Title),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.busy {
			return a, nil
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewPrompt:
			a.promptView, cmd = a.promptView.Update(msg)
		case messages.ViewResults:
			a.resultsView, cmd = a.resultsView.Update(msg)
		}
		return a, cmd

	case messages.ActionSelected:
		return a, a.startAction(msg.Action)

	case messages.PromptCompleted:
		return a, a.finishPrompt(msg)

	case messages.ResultReady:
		a.busy = false
		a.statusBar.Clear()
		a.resultsView.SetContent(msg.Title, msg.Body)
		a.setView(messages.ViewResults)
		return a, nil

	case messages.Notice:
		a.busy = false
		a.statusBar.Notice(msg.Text)
		a.setView(messages.ViewMenu)
		return a, nil

	case messages.ViewChanged:
		a.setView(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.busy = false
		a.err = msg.Err
		a.statusBar.Error(msg.Err)
		a.setView(messages.ViewMenu)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blinks and other internal messages.
	switch a.currentView {
	case messages.ViewPrompt:
		a.promptView, cmd = a.promptView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	}
	return a, cmd
}

func (a *App) startAction(action messages.Action) tea.Cmd {
	archive := a.ports.Archive
	ctx := a.ctx

	switch action {
	case messages.ActionStore:
		a.busy = true
		a.statusBar.Working(format.Storing)
		return func() tea.Msg {
			var b strings.Builder
			format.Report(&b, "Ingest", archive.StoreInitialBatch(ctx))
			return messages.ResultReady{Title: format.MenuItems[action], Body: b.String()}
		}

	case messages.ActionList:
		a.busy = true
		return func() tea.Msg {
			return messages.ResultReady{
				Title: format.MenuItems[action],
				Body:  format.ChunksString(archive.ListAll(ctx)),
			}
		}

	case messages.ActionSearch:
		return a.prompt(action, dateStep())

	case messages.ActionSearchSecurity:
		return a.prompt(action, dateStep(), securityStep())

	case messages.ActionClear:
		return a.prompt(action, prompt.Step{Label: format.ConfirmPrompt, Placeholder: "y/n"})

	case messages.ActionExit:
		return tea.Quit
	}
	return nil
}

func (a *App) prompt(action messages.Action, steps ...prompt.Step) tea.Cmd {
	a.statusBar.Clear()
	a.setView(messages.ViewPrompt)
	return a.promptView.Start(action, steps)
}

func (a *App) finishPrompt(msg messages.PromptCompleted) tea.Cmd {
	archive := a.ports.Archive
	ctx := a.ctx

	switch msg.Action {
	case messages.ActionSearch:
		date := msg.Values[0]
		a.busy = true
		return func() tea.Msg {
			return messages.ResultReady{
				Title: fmt.Sprintf("Closest document to %s", date),
				Body:  format.DocumentString(archive.FindClosestDate(ctx, date)),
			}
		}

	case messages.ActionSearchSecurity:
		date := msg.Values[0]
		level := domain.NormaliseSecurity(msg.Values[1])
		a.busy = true
		return func() tea.Msg {
			return messages.ResultReady{
				Title: fmt.Sprintf("Closest %s document to %s", level, date),
				Body:  format.DocumentString(archive.FindClosestDateWithSecurity(ctx, date, level)),
			}
		}

	case messages.ActionClear:
		if !strings.EqualFold(msg.Values[0], "y") {
			a.statusBar.Clear()
			a.setView(messages.ViewMenu)
			return nil
		}
		a.busy = true
		return func() tea.Msg {
			if !archive.Clear(ctx) {
				return messages.ErrorOccurred{Err: errClearFailed}
			}
			return messages.Notice{Text: format.Cleared}
		}

	case messages.ActionStore, messages.ActionList, messages.ActionExit:
	}
	a.setView(messages.ViewMenu)
	return nil
}

func dateStep() prompt.Step {
	return prompt.Step{
		Label:       format.DatePrompt,
		Placeholder: "2024-01-31",
		Hint:        format.DateHint,
		Validate: func(s string) error {
			_, err := domain.ParseDate(s)
			return err
		},
	}
}

func securityStep() prompt.Step {
	return prompt.Step{
		Label:       format.SecurityPrompt,
		Placeholder: "Public",
	}
}

func (a *App) setView(v messages.ViewType) {
	a.currentView = v
	switch v {
	case messages.ViewMenu:
		a.statusBar.SetHints(a.keymap.MenuHelp())
	case messages.ViewPrompt:
		a.statusBar.SetHints(a.keymap.PromptHelp())
	case messages.ViewResults:
		a.statusBar.SetHints(a.keymap.ResultsHelp())
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewPrompt:
		body = a.promptView.View()
	case messages.ViewResults:
		body = a.resultsView.View()
	default:
		body = a.menuView.View()
	}

	return body + "\n\n" + a.statusBar.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Busy reports whether an archive call is in flight.
func (a *App) Busy() bool {
	return a.busy
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.promptView.SetDimensions(width, height)
	a.resultsView.SetDimensions(width, height-2)
	a.statusBar.SetWidth(width)
}

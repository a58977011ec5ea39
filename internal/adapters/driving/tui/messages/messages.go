// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the six-choice archive menu.
	ViewMenu ViewType = iota
	// ViewPrompt collects the inputs an action needs.
	ViewPrompt
	// ViewResults shows a scrollable query result.
	ViewResults
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewPrompt:
		return "prompt"
	case ViewResults:
		return "results"
	default:
		return "unknown"
	}
}

// Action is a menu choice. Values follow menu order.
type Action int

const (
	ActionStore Action = iota
	ActionSearch
	ActionSearchSecurity
	ActionList
	ActionClear
	ActionExit
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionStore:
		return "store"
	case ActionSearch:
		return "search"
	case ActionSearchSecurity:
		return "search_security"
	case ActionList:
		return "list"
	case ActionClear:
		return "clear"
	case ActionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// ActionSelected is sent when a menu item is chosen.
type ActionSelected struct {
	Action Action
}

// PromptCompleted carries the values entered for an action, one per prompt.
type PromptCompleted struct {
	Action Action
	Values []string
}

// ResultReady carries rendered output for the results view.
type ResultReady struct {
	Title string
	Body  string
}

// Notice is a one-line status shown under the menu.
type Notice struct {
	Text string
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

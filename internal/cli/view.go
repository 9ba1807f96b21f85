package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID tells the stacked screens apart.
type ViewID int

const (
	ViewChat ViewID = iota
	ViewMenu
)

// View is a screen on the TUI stack.
type View interface {
	tea.Model
	ID() ViewID
	// ShortHelp feeds the status bar.
	ShortHelp() []key.Binding
	// Title is the breadcrumb for this screen; empty adds none.
	Title() string
}

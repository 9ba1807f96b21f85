package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/ecostats/internal/service"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack.
type popViewMsg struct{}

// sessionMsg carries the session after a turn, or the error that stopped it.
// The appModel broadcasts it to every view on the stack.
type sessionMsg struct {
	view *service.SessionView
	err  error
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

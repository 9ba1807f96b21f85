package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/service"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App       *App
	SessionID string

	// Latest snapshot of the conversation, refreshed after every turn.
	Session *service.SessionView
	Err     error

	// Pending is set while a turn is in flight.
	Pending bool

	// Terminal dimensions
	Width  int
	Height int
}

// Content returns the stage content of the current snapshot.
func (s *SharedState) Content() chatbot.Content {
	if s.Session == nil {
		return chatbot.Content{}
	}
	return s.Session.Content
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}

// loadSession initializes the session and returns its snapshot.
func (s *SharedState) loadSession() tea.Cmd {
	chat, id := s.App.Chat, s.SessionID
	return func() tea.Msg {
		view, err := chat.Initialize(context.Background(), id)
		return sessionMsg{view: view, err: err}
	}
}

// ask sends a free-text turn and returns the refreshed snapshot.
func (s *SharedState) ask(text string) tea.Cmd {
	s.Pending = true
	chat, id := s.App.Chat, s.SessionID
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := chat.Ask(ctx, id, text); err != nil {
			return sessionMsg{err: err}
		}
		view, err := chat.Get(ctx, id)
		return sessionMsg{view: view, err: err}
	}
}

// press sends a button turn and returns the refreshed snapshot.
func (s *SharedState) press(tag string) tea.Cmd {
	s.Pending = true
	chat, id := s.App.Chat, s.SessionID
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := chat.Press(ctx, id, tag); err != nil {
			return sessionMsg{err: err}
		}
		view, err := chat.Get(ctx, id)
		return sessionMsg{view: view, err: err}
	}
}

// apply stores a snapshot message.
func (s *SharedState) apply(msg sessionMsg) {
	s.Pending = false
	s.Err = msg.err
	if msg.view != nil {
		s.Session = msg.view
	}
}

package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/ecostats/internal/cli/formatter"
)

// appModel is the chat TUI root. The bottom of the stack is always the chat;
// menus are pushed over it and pop themselves after a choice.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(app *App, sessionID string) appModel {
	state := &SharedState{App: app, SessionID: sessionID}
	return appModel{state: state, viewStack: []View{newChatView(state)}}
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) pop() {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

func (m appModel) Init() tea.Cmd {
	cmd := m.state.loadSession()
	if v := m.activeView(); v != nil {
		return tea.Batch(cmd, v.Init())
	}
	return cmd
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		return m.broadcast(msg)

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.pop()
		return m, nil

	case sessionMsg:
		// The chat under an open menu renders from the same snapshot.
		m.state.apply(msg)
		return m.broadcast(msg)

	case tea.QuitMsg:
		m.quitting = true
		return m, nil
	}

	v := m.activeView()
	if v == nil {
		return m, nil
	}
	updated, cmd := v.Update(msg)
	m.viewStack[len(m.viewStack)-1] = updated.(View)
	return m, cmd
}

// handleKey takes the keys that act on the whole program.
func (m *appModel) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return true, tea.Quit
	case tea.KeyEsc:
		if len(m.viewStack) > 1 {
			m.pop()
			return true, nil
		}
	}
	return false, nil
}

func (m appModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(m.viewStack))
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	body := ""
	if v := m.activeView(); v != nil {
		body = v.View()
	}
	out := m.header() + "\n" + body + "\n" + m.statusBar()

	// Fill the screen so the alt-screen renderer leaves no stale lines.
	if missing := m.state.Height - (strings.Count(out, "\n") + 1); missing > 0 {
		out += strings.Repeat("\n", missing)
	}
	return out
}

// crumbs lists the titles of the stacked views followed by the stage title.
func (m *appModel) crumbs() []string {
	var out []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			out = append(out, t)
		}
	}
	if t := m.state.Content().Title; t != "" {
		out = append(out, t)
	}
	return out
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

func (m *appModel) header() string {
	line := formatter.StylePurple.Render("ecostats")
	if c := m.crumbs(); len(c) > 0 {
		line += formatter.Dim(" › " + strings.Join(c, " › "))
	}
	if m.state.Pending {
		line += "  " + formatter.StyleYellow.Render("…")
	}
	return line + "\n" + m.rule()
}

func (m *appModel) statusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			h := b.Help()
			hints = append(hints, h.Key+": "+h.Desc)
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, "esc: volver")
	}
	hints = append(hints, "ctrl+c: salir")
	return m.rule() + "\n" + formatter.Dim(strings.Join(hints, "  "))
}

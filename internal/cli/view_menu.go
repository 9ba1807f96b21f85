package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/cli/formatter"
)

// menuView lists the buttons of the current stage. Choosing one presses it
// and returns to the chat.
type menuView struct {
	state  *SharedState
	cursor int
}

func newMenuView(state *SharedState) *menuView {
	return &menuView{state: state}
}

func (v *menuView) ID() ViewID    { return ViewMenu }
func (v *menuView) Title() string { return "Opciones" }

func (v *menuView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "mover")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "elegir")),
		key.NewBinding(key.WithKeys("1-9"), key.WithHelp("1-9", "atajo")),
	}
}

func (v *menuView) Init() tea.Cmd { return nil }

func (v *menuView) buttons() []chatbot.Button {
	return formatter.ContentButtons(v.state.Content())
}

func (v *menuView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		// The stage changed underneath; keep the cursor in range.
		v.cursor = min(v.cursor, max(len(v.buttons())-1, 0))

	case tea.KeyMsg:
		buttons := v.buttons()
		switch msg.String() {
		case "up", "k", "shift+tab":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j", "tab":
			if v.cursor < len(buttons)-1 {
				v.cursor++
			}
		case "enter":
			return v, v.choose(v.cursor)
		default:
			if n, err := strconv.Atoi(msg.String()); err == nil {
				return v, v.choose(n - 1)
			}
		}
	}
	return v, nil
}

func (v *menuView) choose(i int) tea.Cmd {
	buttons := v.buttons()
	if i < 0 || i >= len(buttons) || v.state.Pending {
		return nil
	}
	v.cursor = i
	return tea.Batch(popView(), v.state.press(string(buttons[i].Tag)))
}

func (v *menuView) View() string {
	c := v.state.Content()
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render(strings.ToUpper(c.Title)) + "\n\n")
	b.WriteString(formatter.FormatButtons(c, v.cursor))
	return b.String()
}

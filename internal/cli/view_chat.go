package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/ecostats/internal/cli/formatter"
)

// chatView shows the transcript in a scrollable viewport above a text input.
// Tab opens the buttons of the current stage.
type chatView struct {
	state *SharedState
	input textinput.Model
	vp    viewport.Model
	ready bool
}

func newChatView(state *SharedState) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Placeholder = "Escribe una pregunta, p. ej. temperatura máxima de Halley UIS"

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	return &chatView{state: state, input: ti, vp: vp}
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize()
		return v, nil

	case sessionMsg:
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab:
			if v.state.Session == nil {
				return v, nil
			}
			return v, pushView(newMenuView(v.state))
		case tea.KeyEnter:
			text := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if text == "" || v.state.Pending {
				return v, nil
			}
			if isQuitWord(text) {
				return v, tea.Quit
			}
			return v, v.state.ask(text)
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	var b strings.Builder
	if v.ready {
		b.WriteString(v.vp.View())
	} else {
		b.WriteString(v.transcript())
	}
	b.WriteString("\n")
	if err := v.state.Err; err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+err.Error()) + "\n")
	}
	b.WriteString(formatter.StylePurple.Render("tú") + formatter.Dim("> "))
	b.WriteString(v.input.View())
	return b.String()
}

// ── View interface ───────────────────────────────────────────────────────────

func (v *chatView) ID() ViewID    { return ViewChat }
func (v *chatView) Title() string { return "" }
func (v *chatView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "enviar")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "opciones")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "desplazar")),
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (v *chatView) transcript() string {
	if v.state.Session == nil {
		return formatter.Dim("Conectando…")
	}
	return formatter.FormatTranscript(v.state.Session.State.Transcript)
}

// resize fits the viewport between the header and the input line.
func (v *chatView) resize() {
	if v.state.Width <= 0 || v.state.Height <= 0 {
		return
	}
	v.vp.Width = v.state.Width
	v.vp.Height = max(v.state.ContentHeight()-2, 1)
	v.input.Width = max(v.state.Width-6, 10)
	v.ready = true
	v.refresh()
}

// refresh re-renders the transcript and scrolls to the newest message.
func (v *chatView) refresh() {
	if !v.ready {
		return
	}
	v.vp.SetContent(lipgloss.NewStyle().Width(v.vp.Width).Render(v.transcript()))
	v.vp.GotoBottom()
}

func isQuitWord(s string) bool {
	switch strings.ToLower(s) {
	case "/salir", "/quit", "/exit", "salir":
		return true
	}
	return false
}

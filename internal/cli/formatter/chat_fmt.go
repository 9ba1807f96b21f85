package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/domain"
)

// FormatMessage renders one transcript entry with a role prefix.
func FormatMessage(m domain.Message) string {
	if m.Role == domain.RoleUser {
		return StyleGreen.Bold(true).Render("Tú: ") + m.Text
	}
	return StylePurple.Bold(true).Render("EcoBot: ") + RenderMarkdown(m.Text)
}

// FormatTranscript renders a whole conversation, one blank line between turns.
func FormatTranscript(msgs []domain.Message) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = FormatMessage(m)
	}
	return strings.Join(parts, "\n\n")
}

// FormatButtons renders a stage's options and navigation as numbered choices.
// selected highlights one entry; pass -1 for none.
func FormatButtons(c chatbot.Content, selected int) string {
	var b strings.Builder
	for i, btn := range ContentButtons(c) {
		line := fmt.Sprintf("%2d. %s", i+1, btn.Label)
		if i == selected {
			line = StyleHeader.Render("› " + line)
		} else {
			line = "  " + line
		}
		if i == len(c.Options) && len(c.Options) > 0 {
			b.WriteString(Dim("  ───") + "\n")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// ContentButtons returns the options followed by the navigation buttons.
func ContentButtons(c chatbot.Content) []chatbot.Button {
	out := make([]chatbot.Button, 0, len(c.Options)+len(c.Navigation))
	out = append(out, c.Options...)
	return append(out, c.Navigation...)
}

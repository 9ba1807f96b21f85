package formatter

import (
	"regexp"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*\s][^*]*)\*`)
	urlPattern    = regexp.MustCompile(`https?://\S+`)
)

// RenderMarkdown styles the small markdown subset the assistant writes:
// **bold**, *italic*, "- " bullets and bare links.
func RenderMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			line = StyleDim.Render("•") + " " + rest
		}
		line = boldPattern.ReplaceAllStringFunc(line, func(m string) string {
			return StyleBold.Render(strings.Trim(m, "*"))
		})
		line = italicPattern.ReplaceAllStringFunc(line, func(m string) string {
			return StyleItalic.Render(strings.Trim(m, "*"))
		})
		line = urlPattern.ReplaceAllStringFunc(line, func(m string) string {
			return StyleBlue.Underline(true).Render(m)
		})
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// PlainMarkdown strips the emphasis markers, for outputs without styling.
func PlainMarkdown(text string) string {
	text = boldPattern.ReplaceAllString(text, "$1")
	return italicPattern.ReplaceAllString(text, "$1")
}

package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCoverage renders how many stations report a variable, like
// [████░░░░] 8/11. Full coverage is green, partial yellow and none red.
func RenderCoverage(with, total, width int) string {
	if width < 2 {
		width = 2
	}
	if total <= 0 {
		return fmt.Sprintf("[%s] 0/0", StyleDim.Render(strings.Repeat(emptyBlock, width)))
	}
	with = min(max(with, 0), total)

	filled := with * width / total
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	switch with {
	case total:
		style = StyleGreen
	case 0:
		style = StyleRed
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), with, total)
}

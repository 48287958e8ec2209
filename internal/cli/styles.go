package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorTitle  = "#AB9DF2"
	colorAnchor = "#727072"
	colorSlot   = "#78DCE8"
	colorCount  = "#A9DC76"
	colorBorder = "#5B595C"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	anchorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAnchor))
	slotStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorSlot))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorCount))
	guideStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBorder))
)

// painter renders styled text unless color is disabled.
type painter struct {
	noColor bool
}

func (p painter) paint(style lipgloss.Style, text string) string {
	if p.noColor {
		return text
	}
	return style.Render(text)
}

func (p painter) indent(depth int) string {
	if depth == 0 {
		return ""
	}
	return p.paint(guideStyle, strings.Repeat("│ ", depth))
}

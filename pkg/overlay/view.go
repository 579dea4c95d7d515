package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/mobkc/pkg/settings"
	"github.com/muesli/reflow/truncate"
)

// PanelBackground is the colour translucent text is blended onto,
// terminals having no alpha channel
var PanelBackground = settings.Color{R: 0x1e, G: 0x1e, B: 0x1e, A: 255}

// DefaultWidth keeps the panel fixed so the flash never wraps
const DefaultWidth = 32

var panelStyle = lipgloss.NewStyle().
	Background(lipgloss.Color(PanelBackground.Hex())).
	Padding(0, 1)

// View paints d on a single line of the given width, padding included.
// The left cell is truncated to leave room for the right cell.
func (d Display) View(width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	inner := max(1, width-panelStyle.GetHorizontalPadding())

	rightWidth := lipgloss.Width(d.Right)
	leftMax := inner
	if d.Right != "" {
		leftMax = inner - rightWidth - 1
	}
	left := truncate.StringWithTail(d.Left, uint(max(1, leftMax)), "…")
	gap := max(0, inner-lipgloss.Width(left)-rightWidth)

	var line strings.Builder
	line.WriteString(cellStyle(d.LeftColor).Render(left))
	line.WriteString(cellStyle(PanelBackground).Render(strings.Repeat(" ", gap)))
	if d.Right != "" {
		line.WriteString(cellStyle(d.RightColor).Render(d.Right))
	}
	return panelStyle.Render(line.String())
}

func cellStyle(c settings.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(blend(c))).
		Background(lipgloss.Color(PanelBackground.Hex()))
}

// blend composites c over the panel background by its alpha
func blend(c settings.Color) string {
	if c.A == 255 {
		return c.Colorful().Hex()
	}
	return PanelBackground.Colorful().BlendRgb(c.Colorful(), float64(c.A)/255.0).Hex()
}

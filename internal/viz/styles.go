package viz

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff"))

	ErrorText = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	// PlotInks colour scatter points, the true relation and the OLS fit.
	PlotInks = map[Ink]lipgloss.Style{
		InkPoint: lipgloss.NewStyle().Foreground(lipgloss.Color("#20b2aa")),
		InkTrue:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true),
		InkFit:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true),
	}
)

// Metric renders "label value".
func Metric(label, value string) string {
	return MetricLabel.Render(label) + " " + MetricValue.Render(value)
}

// SliderBar renders a position within [0, 1] as a bar of width cells.
func SliderBar(frac float64, width int) string {
	if width < 1 {
		return ""
	}
	pos := int(frac*float64(width-1) + 0.5)
	if pos < 0 {
		pos = 0
	}
	if pos >= width {
		pos = width - 1
	}
	bar := make([]rune, width)
	for i := range bar {
		bar[i] = '─'
	}
	bar[pos] = '●'
	return string(bar)
}

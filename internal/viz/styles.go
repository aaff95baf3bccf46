package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle      lipgloss.Style
	LabelStyle       lipgloss.Style
	ValueStyle       lipgloss.Style
	ActiveParamStyle lipgloss.Style
	GraphStyle       lipgloss.Style
	HelpStyle        lipgloss.Style
	Subtle           lipgloss.Style
	StatusBoost      lipgloss.Style
	StatusCoast      lipgloss.Style
	StatusDescent    lipgloss.Style
	StatusDown       lipgloss.Style

	barHigh lipgloss.Style
	barMid  lipgloss.Style
	barLow  lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

// applyTheme rebuilds the shared styles from a color scheme.
func applyTheme(t Theme) {
	HeaderStyle = lipgloss.NewStyle().
		Foreground(t.Header).
		Bold(true).
		MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
		Foreground(t.Label).
		Width(12)

	ValueStyle = lipgloss.NewStyle().
		Foreground(t.Value)

	ActiveParamStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	GraphStyle = lipgloss.NewStyle().
		Foreground(t.Track).
		Padding(1, 0)

	HelpStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		MarginTop(1)

	Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	StatusBoost = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Boost)

	StatusCoast = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Coast)

	StatusDescent = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Descent)

	StatusDown = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Down)

	barHigh = lipgloss.NewStyle().Foreground(t.Boost)
	barMid = lipgloss.NewStyle().Foreground(t.Descent)
	barLow = lipgloss.NewStyle().Foreground(t.Down)
}

// ProgressBar renders a filled bar for a ratio in [0, 1], colored by how
// much remains.
func ProgressBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if ratio > 0.6 {
		return barHigh.Render(bar)
	} else if ratio > 0.25 {
		return barMid.Render(bar)
	}
	return barLow.Render(bar)
}

// Sparkline renders values as a one-line mini chart.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var out strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		out.WriteRune(chars[idx])
	}

	return out.String()
}

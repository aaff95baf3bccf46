package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a color scheme for the live flight view.
type Theme struct {
	Name    string
	Header  lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Accent  lipgloss.Color
	Track   lipgloss.Color
	Muted   lipgloss.Color
	Boost   lipgloss.Color
	Coast   lipgloss.Color
	Descent lipgloss.Color
	Down    lipgloss.Color
}

var (
	ThemePad = Theme{
		Name:    "pad",
		Header:  lipgloss.Color("86"),
		Label:   lipgloss.Color("245"),
		Value:   lipgloss.Color("252"),
		Accent:  lipgloss.Color("205"),
		Track:   lipgloss.Color("49"),
		Muted:   lipgloss.Color("240"),
		Boost:   lipgloss.Color("#00ff88"),
		Coast:   lipgloss.Color("#00ccff"),
		Descent: lipgloss.Color("#ffaa00"),
		Down:    lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Header:  lipgloss.Color("#00ff00"),
		Label:   lipgloss.Color("#00aa00"),
		Value:   lipgloss.Color("#88ff88"),
		Accent:  lipgloss.Color("#ffffff"),
		Track:   lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#005500"),
		Boost:   lipgloss.Color("#88ff88"),
		Coast:   lipgloss.Color("#00ff00"),
		Descent: lipgloss.Color("#ffff00"),
		Down:    lipgloss.Color("#ff0000"),
	}

	ThemeDusk = Theme{
		Name:    "dusk",
		Header:  lipgloss.Color("#feca57"),
		Label:   lipgloss.Color("#8b6b8c"),
		Value:   lipgloss.Color("#fff5f5"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Track:   lipgloss.Color("#ff6b6b"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Boost:   lipgloss.Color("#5fd068"),
		Coast:   lipgloss.Color("#48dbfb"),
		Descent: lipgloss.Color("#ffc048"),
		Down:    lipgloss.Color("#ff4757"),
	}

	// CurrentTheme drives the shared styles; change it through SetTheme.
	CurrentTheme = ThemePad

	Themes = []Theme{ThemePad, ThemePhosphor, ThemeDusk}
)

// GetTheme returns the named theme, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePad
}

// SetTheme switches the color scheme and rebuilds the shared styles.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	applyTheme(CurrentTheme)
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the side panel. Particles keep their own colors.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Graph   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeTeal = Theme{
		Name:    "teal",
		Primary: lipgloss.Color("#339999"),
		Text:    lipgloss.Color("#e0f0f0"),
		Muted:   lipgloss.Color("#557777"),
		Graph:   lipgloss.Color("#66cccc"),
		Warning: lipgloss.Color("#ff8c42"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Graph:   lipgloss.Color("#0088ff"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Graph:   lipgloss.Color("#feca57"),
		Warning: lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeTeal, ThemeMinimal, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, c := range Themes {
		if c.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

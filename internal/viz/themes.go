package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the visualizer.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Bar       lipgloss.Color
	Highlight lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#ff00ff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff4444"),
		Bar:       lipgloss.Color("#4f8cff"),
		Highlight: lipgloss.Color("#ff6b6b"),
	}

	ThemeLight = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("#005f87"),
		Secondary: lipgloss.Color("#875f00"),
		Accent:    lipgloss.Color("#af005f"),
		Text:      lipgloss.Color("#1c1c1c"),
		Muted:     lipgloss.Color("#8a8a8a"),
		Success:   lipgloss.Color("#008700"),
		Warning:   lipgloss.Color("#af8700"),
		Error:     lipgloss.Color("#d70000"),
		Bar:       lipgloss.Color("#3a6ea5"),
		Highlight: lipgloss.Color("#e4572e"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
		Bar:       lipgloss.Color("#00aa00"),
		Highlight: lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
		Bar:       lipgloss.Color("#0077be"),
		Highlight: lipgloss.Color("#ffd700"),
	}

	Themes = []Theme{
		ThemeDark,
		ThemeLight,
		ThemeRetro,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to dark.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDark
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

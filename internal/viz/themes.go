package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours legend entries in order.
type Theme struct {
	Name       string
	Palette    []lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name: "default",
		Palette: []lipgloss.Color{
			"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948",
			"#b07aa1", "#ff9da7", "#9c755f", "#bab0ac", "#1f77b4", "#2ca02c",
			"#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22",
		},
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name: "ocean",
		Palette: []lipgloss.Color{
			"#0077be", "#00a8cc", "#ffd700", "#00ff88", "#e0f0ff", "#4488aa",
			"#005f73", "#0a9396", "#94d2bd", "#e9d8a6", "#ee9b00", "#ca6702",
			"#bb3e03", "#ae2012", "#9b2226", "#48cae4", "#90e0ef", "#023e8a",
		},
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name: "retro",
		Palette: []lipgloss.Color{
			"#00ff00", "#00cc00", "#88ff88", "#ffff00", "#009900", "#ccff66",
			"#66ff99", "#33cc33", "#99ff33", "#006600", "#b3ffb3", "#e6ff00",
		},
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Error:      lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeDefault,
		ThemeOcean,
		ThemeRetro,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// Color is the colour of legend index i. Empty and overlapping pixels use
// the background and error colours.
func (t Theme) Color(i int) lipgloss.Color {
	switch i {
	case Empty:
		return t.Background
	case Overlap:
		return t.Error
	}
	return t.Palette[i%len(t.Palette)]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

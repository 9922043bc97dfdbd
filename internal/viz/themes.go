package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for one site mode.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeLight = Theme{
		Name:       "light",
		Primary:    lipgloss.Color("#22A39F"), // Teal
		Secondary:  lipgloss.Color("#434242"),
		Accent:     lipgloss.Color("#F3EFE0"),
		Background: lipgloss.Color("#F3EFE0"),
		Text:       lipgloss.Color("#222222"),
		Muted:      lipgloss.Color("#888888"),
		Success:    lipgloss.Color("#22A39F"),
		Warning:    lipgloss.Color("#f59e0b"),
		Error:      lipgloss.Color("#ef4444"),
	}

	ThemeDark = Theme{
		Name:       "dark",
		Primary:    lipgloss.Color("#22d3ee"), // Cyan
		Secondary:  lipgloss.Color("#94a3b8"),
		Accent:     lipgloss.Color("#38bdf8"),
		Background: lipgloss.Color("#0f172a"),
		Text:       lipgloss.Color("#e2e8f0"),
		Muted:      lipgloss.Color("#64748b"),
		Success:    lipgloss.Color("#4ade80"),
		Warning:    lipgloss.Color("#fbbf24"),
		Error:      lipgloss.Color("#f87171"),
	}

	ThemeDream = Theme{
		Name:       "dream",
		Primary:    lipgloss.Color("#a855f7"), // Purple
		Secondary:  lipgloss.Color("#ec4899"), // Pink
		Accent:     lipgloss.Color("#f0abfc"),
		Background: lipgloss.Color("#1e1030"),
		Text:       lipgloss.Color("#fdf4ff"),
		Muted:      lipgloss.Color("#a78bfa"),
		Success:    lipgloss.Color("#c084fc"),
		Warning:    lipgloss.Color("#f9a8d4"),
		Error:      lipgloss.Color("#fb7185"),
	}

	Themes = []Theme{
		ThemeLight,
		ThemeDark,
		ThemeDream,
	}
)

// GetTheme returns a theme by name, falling back to light.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLight
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
}

func (t Theme) Subtle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

func (t Theme) Panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)
}

func (t Theme) Highlight() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)
}

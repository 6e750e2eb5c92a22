// Package styles holds the colors and lipgloss styles of the menus.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette.
type Theme struct {
	Primary   lipgloss.Color // highlighted row, title start
	Secondary lipgloss.Color // title end

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles are the pre-built styles derived from a Theme.
type Styles struct {
	Item       lipgloss.Style
	Cursor     lipgloss.Style
	Marker     lipgloss.Style // "> " in front of the highlighted row
	Muted      lipgloss.Style
	Subtle     lipgloss.Style
	NowPlaying lipgloss.Style
	Position   lipgloss.Style // "(2/12)"
	Status     lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	return &Styles{
		Item: lipgloss.NewStyle().Foreground(t.FgBase),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.Primary).
			Bold(true),
		Marker:     lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:     lipgloss.NewStyle().Foreground(t.FgSubtle),
		NowPlaying: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Position:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Status:     lipgloss.NewStyle().Foreground(t.Success),
		Error:      lipgloss.NewStyle().Foreground(t.Error),
		Warning:    lipgloss.NewStyle().Foreground(t.Warning),
	}
}

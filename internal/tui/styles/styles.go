package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sst/growingtext/internal/tui/theme"
)

// BaseStyle returns the base style with the current theme's colors.
func BaseStyle() lipgloss.Style {
	t := theme.CurrentTheme()
	return lipgloss.NewStyle().
		Background(t.Background()).
		Foreground(t.Text())
}

// Padded returns the base style with one cell of horizontal padding.
func Padded() lipgloss.Style {
	return BaseStyle().Padding(0, 1)
}

func Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.CurrentTheme().TextMuted())
}

func Bold() lipgloss.Style {
	return BaseStyle().Bold(true)
}

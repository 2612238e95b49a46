package textarea

import "github.com/charmbracelet/lipgloss"

// Styles holds the focused and blurred style sets.
type Styles struct {
	Focused StyleState
	Blurred StyleState
}

// StyleState styles one focus state.
type StyleState struct {
	Base        lipgloss.Style
	Text        lipgloss.Style
	CursorLine  lipgloss.Style
	Placeholder lipgloss.Style
	Prompt      lipgloss.Style
}

func (s StyleState) computedCursorLine() lipgloss.Style {
	return s.CursorLine.Inherit(s.Base).Inline(true)
}

func (s StyleState) computedPlaceholder() lipgloss.Style {
	return s.Placeholder.Inherit(s.Base).Inline(true)
}

func (s StyleState) computedPrompt() lipgloss.Style {
	return s.Prompt.Inherit(s.Base).Inline(true)
}

func (s StyleState) computedText() lipgloss.Style {
	return s.Text.Inherit(s.Base).Inline(true)
}

// DefaultStyles returns styles that adapt to the terminal background.
func DefaultStyles() Styles {
	focused := StyleState{
		Base:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "255", Dark: "0"}),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "7", Dark: "7"}),
		Text:        lipgloss.NewStyle(),
	}
	blurred := StyleState{
		Base:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "7"}),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "238"}),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "7", Dark: "7"}),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "7"}),
	}
	return Styles{Focused: focused, Blurred: blurred}
}

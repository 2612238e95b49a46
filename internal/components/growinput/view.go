package growinput

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sst/growingtext/internal/components/textarea"
	"github.com/sst/growingtext/internal/tui/styles"
	"github.com/sst/growingtext/internal/tui/theme"
)

func themedStyles(t theme.Theme) textarea.Styles {
	if t == nil {
		return textarea.DefaultStyles()
	}
	base := lipgloss.NewStyle().Foreground(t.Text())
	focused := textarea.StyleState{
		Base:        base,
		Text:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(t.Placeholder()).Italic(true),
		Prompt:      lipgloss.NewStyle().Foreground(t.Primary()).Bold(true),
	}
	blurred := textarea.StyleState{
		Base:        base,
		Text:        lipgloss.NewStyle().Foreground(t.TextMuted()),
		CursorLine:  lipgloss.NewStyle().Foreground(t.TextMuted()),
		Placeholder: lipgloss.NewStyle().Foreground(t.Placeholder()).Italic(true),
		Prompt:      lipgloss.NewStyle().Foreground(t.TextMuted()),
	}
	return textarea.Styles{Focused: focused, Blurred: blurred}
}

// fitWidth cuts or pads a rendered line to exactly width cells.
func fitWidth(line string, width int) string {
	line = ansi.Truncate(line, width, "")
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

func (m *Model) accessoryLine() string {
	if !m.view.IsFirstResponder() {
		return ""
	}
	switch a := m.view.InputAccessory().(type) {
	case string:
		return a
	case fmt.Stringer:
		return a.String()
	}
	return ""
}

// content returns every row of the text container, placeholder drawn over
// the text when it is visible.
func (m *Model) content() []string {
	rows := strings.Split(m.textarea.View(), "\n")
	if !m.view.PlaceholderVisible() {
		return rows
	}
	placeholder := m.textarea.PlaceholderView(m.view.Placeholder(), m.view.PlaceholderLayout())
	if placeholder == "" {
		return rows
	}
	for i, l := range strings.Split(placeholder, "\n") {
		if i < len(rows) {
			rows[i] = l
		} else {
			rows = append(rows, l)
		}
	}
	return rows
}

// scrollIndicator returns the indicator cell for each viewport row.
func (m *Model) scrollIndicator(height, top, total int) []string {
	t := theme.CurrentTheme()
	track := lipgloss.NewStyle()
	thumb := lipgloss.NewStyle()
	if t != nil {
		track = track.Foreground(t.ScrollTrack())
		thumb = thumb.Foreground(t.ScrollThumb())
	}

	size := max(1, height*height/max(total, 1))
	pos := 0
	if total > height {
		pos = top * (height - size) / (total - height)
	}
	cells := make([]string, height)
	for i := range cells {
		if i >= pos && i < pos+size {
			cells[i] = thumb.Render(styles.ScrollThumb)
		} else {
			cells[i] = track.Render(styles.ScrollTrack)
		}
	}
	return cells
}

func (m *Model) badge() string {
	if m.textarea.CharLimit <= 0 || !m.view.IsFirstResponder() {
		return ""
	}
	style := lipgloss.NewStyle()
	if t := theme.CurrentTheme(); t != nil {
		style = style.Foreground(t.TextMuted())
		if m.textarea.Length() >= m.textarea.CharLimit {
			style = style.Foreground(t.Warning())
		}
	}
	return style.Render(fmt.Sprintf(" %d/%d", m.textarea.Length(), m.textarea.CharLimit))
}

// View renders the visible window of the content: frame height rows
// starting at the content offset.
func (m *Model) View() string {
	frame := m.view.Frame()
	width, height := int(frame.Width()), m.frameHeight()
	if width <= 0 || height <= 0 || m.textarea.Hidden() {
		return ""
	}

	content := m.content()
	top := int(m.view.ContentOffset().Y)
	top = max(0, min(top, len(content)-height))

	textWidth := width
	var indicator []string
	if m.flashing && m.view.Scrollable() {
		textWidth = width - 1
		indicator = m.scrollIndicator(height, top, int(m.view.ContentSize().Height))
	}

	rows := make([]string, height)
	for i := range rows {
		line := ""
		if idx := top + i; idx < len(content) {
			line = content[idx]
		}
		rows[i] = fitWidth(line, textWidth)
		if indicator != nil {
			rows[i] += indicator[i]
		}
	}

	if badge := m.badge(); badge != "" && m.overlayRow < len(rows) {
		bw := ansi.StringWidth(badge)
		if bw < textWidth {
			row := rows[m.overlayRow]
			rest := ""
			if indicator != nil {
				rest = indicator[m.overlayRow]
			}
			rows[m.overlayRow] = ansi.Truncate(fitWidth(row, textWidth), textWidth-bw, "") + badge + rest
		}
	}

	out := strings.Join(rows, "\n")
	if accessory := m.accessoryLine(); accessory != "" {
		style := lipgloss.NewStyle()
		if t := theme.CurrentTheme(); t != nil {
			style = style.Foreground(t.TextMuted())
		}
		out = style.Render(fitWidth(accessory, width)) + "\n" + out
	}
	if m.zones != nil {
		out = m.zones.Mark(m.zoneID, out)
	}
	return out
}

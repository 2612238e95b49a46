package textarea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/sst/growingtext/pkg/growing"
	"github.com/sst/growingtext/pkg/richtext"
)

func (m *Model) activeStyle() *StyleState {
	if m.focus {
		return &m.Styles.Focused
	}
	return &m.Styles.Blurred
}

// runLayout maps every rune of the value, line by line, to the index of
// the run it came from, and returns the style of each run.
func (m *Model) runLayout() ([][]int, []lipgloss.Style) {
	text := m.AttributedText()
	if len(text.Runs) == 0 {
		return nil, nil
	}
	index := make([][]int, 1, len(m.value))
	styles := make([]lipgloss.Style, len(text.Runs))
	for i, run := range text.Runs {
		styles[i] = attributeStyle(run.Attributes)
		for _, r := range run.Text {
			if r == '\n' {
				index = append(index, nil)
				continue
			}
			index[len(index)-1] = append(index[len(index)-1], i)
		}
	}
	return index, styles
}

func attributeStyle(attrs richtext.Attributes) lipgloss.Style {
	style := attrs.Style
	if attrs.Font != nil {
		if attrs.Font.Bold {
			style = style.Bold(true)
		}
		if attrs.Font.Italic {
			style = style.Italic(true)
		}
	}
	return style
}

// renderRow renders runes[from:to] of a logical line, grouping runes that
// come from the same run.
func renderRow(runes []rune, from, to int, index []int, styles []lipgloss.Style, base lipgloss.Style) string {
	if from >= to {
		return ""
	}
	if len(index) < to {
		return base.Render(string(runes[from:to]))
	}
	var b strings.Builder
	start := from
	for i := from + 1; i <= to; i++ {
		if i == to || index[i] != index[start] {
			b.WriteString(styles[index[start]].Inherit(base).Render(string(runes[start:i])))
			start = i
		}
	}
	return b.String()
}

// View renders every visual row of the content at the frame width, insets
// included. A hidden textarea renders nothing.
func (m *Model) View() string {
	if m.hidden {
		return ""
	}

	var (
		styles      = *m.activeStyle()
		width       = m.textWidth()
		lineInfo    = m.LineInfo()
		runs, table = m.runLayout()
		rows        = m.lineRows()
		left        = strings.Repeat(" ", int(m.inset.Left))
		out         []string
	)
	if m.font.Bold {
		styles.Base = styles.Base.Bold(true)
	}
	if m.font.Italic {
		styles.Base = styles.Base.Italic(true)
	}

	m.Cursor.TextStyle = styles.computedCursorLine()

	for range int(m.inset.Top) {
		out = append(out, "")
	}

	for l, value := range m.value {
		style := styles.computedText()
		if m.row == l {
			style = styles.computedCursorLine()
		}
		var rowRuns []int
		if l < len(runs) {
			rowRuns = runs[l]
		}

		offset := 0
		for wl, wrapped := range m.memoizedWrap(value, width) {
			var s strings.Builder
			s.WriteString(left)
			s.WriteString(styles.computedPrompt().Render(m.Prompt))

			end := offset + len(wrapped)
			cursorCell := 0
			if m.row == l && lineInfo.RowOffset == wl && m.focus {
				at := offset + lineInfo.ColumnOffset
				s.WriteString(renderRow(value, offset, at, rowRuns, table, style))
				if at < end {
					m.Cursor.SetChar(string(value[at]))
					s.WriteString(m.Cursor.View())
					s.WriteString(renderRow(value, at+1, end, rowRuns, table, style))
				} else {
					m.Cursor.SetChar(" ")
					s.WriteString(m.Cursor.View())
					cursorCell = 1
				}
			} else {
				s.WriteString(renderRow(value, offset, end, rowRuns, table, style))
			}

			if pad := width - uniseg.StringWidth(string(wrapped)) - cursorCell; pad > 0 {
				s.WriteString(style.Render(strings.Repeat(" ", pad)))
			}
			out = append(out, s.String())
			for range rows - 1 {
				out = append(out, "")
			}
			offset = end
		}
	}

	for range int(m.inset.Bottom) {
		out = append(out, "")
	}
	return styles.Base.Render(strings.Join(out, "\n"))
}

// PlaceholderView renders content the way the placeholder sits over an
// empty textarea: wrapped to the text width and positioned by layout.
func (m *Model) PlaceholderView(content richtext.String, layout growing.HorizontalLayout) string {
	if content.IsEmpty() {
		return ""
	}

	var (
		styles = *m.activeStyle()
		width  = m.textWidth()
		text   = content.Text()
		left   = strings.Repeat(" ", int(m.inset.Left))
		prompt = styles.computedPrompt().Render(m.Prompt)
		style  = styles.computedPlaceholder()
		out    []string
	)
	if n := len(content.Runs); n > 0 {
		style = attributeStyle(content.Runs[0].Attributes).Inherit(style)
	}
	if width > 0 {
		text = ansi.Hardwrap(ansi.Wordwrap(text, width, ""), width, true)
	}

	for range int(m.inset.Top) {
		out = append(out, "")
	}
	for _, l := range strings.Split(text, "\n") {
		rendered := style.Render(l)
		if width > 0 {
			rendered = lipgloss.PlaceHorizontal(width, placement(layout), rendered)
		}
		out = append(out, left+prompt+rendered)
	}
	return strings.Join(out, "\n")
}

func placement(layout growing.HorizontalLayout) lipgloss.Position {
	switch layout {
	case growing.LayoutCenter:
		return lipgloss.Center
	case growing.LayoutTrailing:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

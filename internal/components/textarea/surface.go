package textarea

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/sst/growingtext/pkg/growing"
	"github.com/sst/growingtext/pkg/richtext"
)

var (
	_ growing.Surface         = (*Model)(nil)
	_ growing.AccessoryHolder = (*Model)(nil)
	_ growing.SelectionHolder = (*Model)(nil)
	_ growing.ChangeFilterer  = (*Model)(nil)
)

// SetActionHandler installs the receiver of surface actions.
func (m *Model) SetActionHandler(handler func(growing.Action)) {
	m.handler = handler
}

func (m *Model) notify(action growing.Action) {
	if m.handler != nil {
		m.handler(action)
	}
}

// textWidthAt is the number of cells available for text in a frame width
// cells wide. 0 means unbounded.
func (m *Model) textWidthAt(width float64) int {
	if width <= 0 {
		return 0
	}
	reserved := int(math.Ceil(m.inset.Horizontal())) + uniseg.StringWidth(m.Prompt)
	return max(int(width)-reserved, 1)
}

func (m *Model) textWidth() int {
	return m.textWidthAt(m.frame.Width())
}

// lineRows is the number of terminal rows one visual line occupies.
func (m *Model) lineRows() int {
	return max(1, int(math.Ceil(m.AttributedText().LineHeight(m.font))))
}

// LineRows is the number of terminal rows each visual line takes.
func (m *Model) LineRows() int { return m.lineRows() }

func (m *Model) visualLines(width int) int {
	n := 0
	for _, l := range m.value {
		n += len(m.memoizedWrap(l, width))
	}
	return max(n, 1)
}

// MeasureNaturalSize returns the size the content needs at width, insets
// included, with no height limit.
func (m *Model) MeasureNaturalSize(width float64) growing.Size {
	rows := m.visualLines(m.textWidthAt(width)) * m.lineRows()
	return growing.Size{Width: width, Height: float64(rows) + m.inset.Vertical()}
}

// Text returns the plain text.
func (m *Model) Text() string { return m.Value() }

// SetText replaces the text with the current typing attributes and moves
// the cursor to the end. Tabs become four spaces and other control
// characters are dropped, as for typed input.
func (m *Model) SetText(text string) {
	m.attributed = m.sanitize(richtext.Styled(text, m.typing))
	m.setValue(m.attributed.Text())
}

// AttributedText returns the rich content. Once the user edits, runs
// collapse to one run carrying the typing attributes.
func (m *Model) AttributedText() richtext.String {
	v := m.Value()
	if m.attributed.Text() == v {
		return m.attributed
	}
	return richtext.Styled(v, m.typing)
}

// SetAttributedText replaces the content. The attributes of the last run
// become the typing attributes. Runs are sanitized one by one, so they keep
// their attributes.
func (m *Model) SetAttributedText(text richtext.String) {
	if n := len(text.Runs); n > 0 {
		m.typing = text.Runs[n-1].Attributes
	}
	m.attributed = m.sanitize(text)
	m.setValue(m.attributed.Text())
}

func (m *Model) sanitize(text richtext.String) richtext.String {
	out := richtext.String{Runs: make([]richtext.Run, 0, len(text.Runs))}
	for _, run := range text.Runs {
		run.Text = string(m.san().Sanitize([]rune(run.Text)))
		if run.Text != "" {
			out.Runs = append(out.Runs, run)
		}
	}
	return out
}

// setValue replaces the content with already sanitized text and puts the
// cursor at the end. CharLimit and the row cap only apply to typing.
func (m *Model) setValue(text string) {
	lines := strings.Split(text, "\n")
	m.value = make([][]rune, len(lines))
	for i, l := range lines {
		m.value[i] = []rune(l)
	}
	m.row = len(m.value) - 1
	m.SetCursorColumn(len(m.value[m.row]))
	m.notify(growing.ActionContentChanged)
}

// Selection returns the caret as a rune offset into Text. The textarea has
// no range selection, so Start and End are equal.
func (m *Model) Selection() growing.Selection {
	offset := m.col
	for _, l := range m.value[:m.row] {
		offset += len(l) + 1
	}
	return growing.Selection{Start: offset, End: offset}
}

// SetSelection moves the caret to sel.End, clamped to the text.
func (m *Model) SetSelection(sel growing.Selection) {
	offset := max(sel.End, 0)
	for row, l := range m.value {
		if offset <= len(l) || row == len(m.value)-1 {
			m.row = row
			m.SetCursorColumn(offset)
			return
		}
		offset -= len(l) + 1
	}
}

// SetChangeFilter installs filter as ShouldChange.
func (m *Model) SetChangeFilter(filter func(before, after string) bool) {
	m.ShouldChange = filter
}

func (m *Model) Font() richtext.Font { return m.font }

func (m *Model) SetFont(font richtext.Font) {
	m.font = font
	m.notify(growing.ActionFontOrInsetChanged)
}

func (m *Model) Inset() growing.Insets { return m.inset }

func (m *Model) SetInset(inset growing.Insets) {
	m.inset = inset
	m.notify(growing.ActionFontOrInsetChanged)
}

func (m *Model) Hidden() bool { return m.hidden }

func (m *Model) SetHidden(hidden bool) { m.hidden = hidden }

func (m *Model) Frame() growing.Rect { return m.frame }

func (m *Model) SetFrame(frame growing.Rect) { m.frame = frame }

func (m *Model) InputAccessory() any { return m.accessory }

func (m *Model) SetInputAccessory(accessory any) { m.accessory = accessory }

// Focus gives the textarea keyboard focus.
func (m *Model) Focus() bool {
	if m.focus {
		return true
	}
	m.focus = true
	m.Cursor.Focus()
	m.notify(growing.ActionBeginEditing)
	return true
}

// Blur removes keyboard focus.
func (m *Model) Blur() bool {
	if !m.focus {
		return true
	}
	m.focus = false
	m.Cursor.Blur()
	m.notify(growing.ActionEndEditing)
	return true
}

func (m *Model) Focused() bool { return m.focus }

// CaretRow returns the row of the cursor in content coordinates, insets
// included.
func (m *Model) CaretRow() int {
	return int(m.inset.Top) + m.cursorLineNumber()*m.lineRows()
}

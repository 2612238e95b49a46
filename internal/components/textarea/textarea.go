// Package textarea is a terminal multi-line text editor that doubles as the
// editable surface of a growing.View. It measures its natural size in cells,
// soft-wraps by word, and reports every content, focus, font and inset change
// to its action handler.
package textarea

import (
	"slices"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/runeutil"
	tea "github.com/charmbracelet/bubbletea"
	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/sst/growingtext/pkg/growing"
	"github.com/sst/growingtext/pkg/richtext"
)

const (
	maxLines       = 10000
	wrapCacheLines = 1024
)

type (
	pasteMsg    string
	pasteErrMsg struct{ error }
)

// LineInfo describes the soft-wrapped row the cursor is on.
type LineInfo struct {
	// Width is the number of runes in the row.
	Width int
	// CharWidth is the number of cells in the row.
	CharWidth int
	// Height is the number of rows the logical line wraps into.
	Height int
	// StartColumn is the rune index the row starts at.
	StartColumn int
	// ColumnOffset is the cursor's rune offset into the row.
	ColumnOffset int
	// RowOffset is the row's index within the logical line.
	RowOffset int
	// CharOffset is the cursor's cell offset into the row.
	CharOffset int
}

// Model is the textarea state. Use New; the zero value is not ready.
type Model struct {
	Err error

	// Prompt is printed at the start of every row.
	Prompt string

	// CharLimit caps the number of cells the user can type. 0 or less means
	// no limit. Programmatic content is not cut.
	CharLimit int

	// ShouldChange, when set, is asked before a user edit is kept. Returning
	// false reverts the edit. Programmatic changes are not filtered. A
	// growing.View installs its observers' filter here.
	ShouldChange func(before, after string) bool

	KeyMap KeyMap
	Styles Styles
	Cursor cursor.Model

	cache *MemoCache[line, [][]rune]

	value          [][]rune
	row            int
	col            int
	lastCharOffset int
	focus          bool
	rsan           runeutil.Sanitizer

	font       richtext.Font
	inset      growing.Insets
	hidden     bool
	frame      growing.Rect
	attributed richtext.String
	typing     richtext.Attributes
	accessory  any
	handler    func(growing.Action)
}

// New returns an empty, blurred textarea.
func New() *Model {
	m := &Model{
		Styles: DefaultStyles(),
		KeyMap: DefaultKeyMap(),
		Cursor: cursor.New(),
		cache:  NewMemoCache[line, [][]rune](wrapCacheLines),
		font:   richtext.DefaultFont,
	}
	m.reset()
	return m
}

// Value returns the text.
func (m *Model) Value() string {
	var v strings.Builder
	for i, l := range m.value {
		if i > 0 {
			v.WriteByte('\n')
		}
		v.WriteString(string(l))
	}
	return v.String()
}

// Length returns the number of cells, counting newlines as one.
func (m *Model) Length() int {
	var l int
	for _, row := range m.value {
		l += uniseg.StringWidth(string(row))
	}
	return l + len(m.value) - 1
}

// LineCount returns the number of logical lines.
func (m *Model) LineCount() int {
	return len(m.value)
}

// Line returns the cursor's logical line.
func (m *Model) Line() int {
	return m.row
}

// CursorColumn returns the cursor's rune index in its line.
func (m *Model) CursorColumn() int {
	return m.col
}

// InsertString inserts s at the cursor as if typed.
func (m *Model) InsertString(s string) {
	m.insertRunes([]rune(s))
}

func (m *Model) reset() {
	m.value = make([][]rune, 1)
	m.row = 0
	m.SetCursorColumn(0)
}

func (m *Model) san() runeutil.Sanitizer {
	if m.rsan == nil {
		m.rsan = runeutil.NewSanitizer()
	}
	return m.rsan
}

func (m *Model) insertRunes(runes []rune) {
	runes = m.san().Sanitize(runes)

	if m.CharLimit > 0 {
		avail := m.CharLimit - m.Length()
		if avail <= 0 {
			return
		}
		if avail < len(runes) {
			runes = runes[:avail]
		}
	}

	var lines [][]rune
	lstart := 0
	for i := range runes {
		if runes[i] == '\n' {
			lines = append(lines, runes[lstart:i:i])
			lstart = i + 1
		}
	}
	lines = append(lines, runes[lstart:])

	if len(m.value)+len(lines)-1 > maxLines {
		lines = lines[:max(0, maxLines-len(m.value)+1)]
	}
	if len(lines) == 0 {
		return
	}

	tail := slices.Clone(m.value[m.row][m.col:])
	m.value[m.row] = append(m.value[m.row][:m.col], lines[0]...)
	m.col += len(lines[0])

	if extra := len(lines) - 1; extra > 0 {
		grid := make([][]rune, len(m.value)+extra, max(cap(m.value), len(m.value)+extra))
		copy(grid, m.value[:m.row+1])
		copy(grid[m.row+1+extra:], m.value[m.row+1:])
		m.value = grid
		for _, l := range lines[1:] {
			m.row++
			m.value[m.row] = slices.Clone(l)
			m.col = len(l)
		}
	}

	m.value[m.row] = append(m.value[m.row], tail...)
	m.SetCursorColumn(m.col)
}

// SetCursorColumn moves the cursor within its line, clamped to the line.
func (m *Model) SetCursorColumn(col int) {
	m.col = clamp(col, 0, len(m.value[m.row]))
	m.lastCharOffset = 0
}

// CursorStart moves the cursor to the start of its line.
func (m *Model) CursorStart() {
	m.SetCursorColumn(0)
}

// CursorEnd moves the cursor to the end of its line.
func (m *Model) CursorEnd() {
	m.SetCursorColumn(len(m.value[m.row]))
}

// CursorDown moves the cursor one visual row down.
func (m *Model) CursorDown() {
	li := m.LineInfo()
	charOffset := max(m.lastCharOffset, li.CharOffset)
	m.lastCharOffset = charOffset

	switch {
	case li.RowOffset+1 < li.Height:
		m.col = li.StartColumn + li.Width + m.visualOffsetToIndex(m.wrappedRow(m.row, li.RowOffset+1), charOffset)
	case m.row < len(m.value)-1:
		m.row++
		m.col = m.visualOffsetToIndex(m.wrappedRow(m.row, 0), charOffset)
	}
	m.col = clamp(m.col, 0, len(m.value[m.row]))
}

// CursorUp moves the cursor one visual row up.
func (m *Model) CursorUp() {
	li := m.LineInfo()
	charOffset := max(m.lastCharOffset, li.CharOffset)
	m.lastCharOffset = charOffset

	switch {
	case li.RowOffset > 0:
		prev := m.wrappedRow(m.row, li.RowOffset-1)
		m.col = li.StartColumn - len(prev) + m.visualOffsetToIndex(prev, charOffset)
	case m.row > 0:
		m.row--
		rows := m.memoizedWrap(m.value[m.row], m.textWidth())
		start := len(m.value[m.row]) - len(rows[len(rows)-1])
		m.col = start + m.visualOffsetToIndex(rows[len(rows)-1], charOffset)
	}
	m.col = clamp(m.col, 0, len(m.value[m.row]))
}

func (m *Model) wrappedRow(row, index int) []rune {
	rows := m.memoizedWrap(m.value[row], m.textWidth())
	if index < 0 || index >= len(rows) {
		return nil
	}
	return rows[index]
}

// visualOffsetToIndex maps a cell offset into a rune index within row,
// picking the nearer edge of a wide rune.
func (m *Model) visualOffsetToIndex(row []rune, charOffset int) int {
	offset := 0
	for i, r := range row {
		w := rw.RuneWidth(r)
		if offset+w > charOffset {
			if charOffset-offset > offset+w-charOffset {
				return i + 1
			}
			return i
		}
		offset += w
	}
	return len(row)
}

// LineInfo reports where the cursor sits within its soft-wrapped line.
func (m *Model) LineInfo() LineInfo {
	grid := m.memoizedWrap(m.value[m.row], m.textWidth())

	var counter int
	for i, row := range grid {
		start := counter
		end := counter + len(row)

		if m.col >= start && m.col <= end {
			if m.col == end && i < len(grid)-1 {
				next := grid[i+1]
				return LineInfo{
					Height:      len(grid),
					RowOffset:   i + 1,
					StartColumn: end,
					Width:       len(next),
					CharWidth:   uniseg.StringWidth(string(next)),
				}
			}
			return LineInfo{
				CharOffset:   uniseg.StringWidth(string(row[:m.col-start])),
				ColumnOffset: m.col - start,
				Height:       len(grid),
				RowOffset:    i,
				StartColumn:  start,
				Width:        len(row),
				CharWidth:    uniseg.StringWidth(string(row)),
			}
		}
		counter = end
	}
	return LineInfo{}
}

// cursorLineNumber returns the visual row of the cursor, soft wraps
// included.
func (m *Model) cursorLineNumber() int {
	n := 0
	for i := range m.row {
		n += len(m.memoizedWrap(m.value[i], m.textWidth()))
	}
	return n + m.LineInfo().RowOffset
}

func (m *Model) newline() {
	m.col = clamp(m.col, 0, len(m.value[m.row]))
	if len(m.value) >= maxLines {
		return
	}
	head, tail := m.value[m.row][:m.col:m.col], slices.Clone(m.value[m.row][m.col:])
	m.value = slices.Insert(m.value, m.row+1, tail)
	m.value[m.row] = head
	m.row++
	m.SetCursorColumn(0)
}

func (m *Model) mergeLineBelow(row int) {
	if row >= len(m.value)-1 {
		return
	}
	m.value[row] = append(m.value[row], m.value[row+1]...)
	m.value = slices.Delete(m.value, row+1, row+2)
}

func (m *Model) mergeLineAbove(row int) {
	if row <= 0 {
		return
	}
	m.col = len(m.value[row-1])
	m.row--
	m.value[row-1] = append(m.value[row-1], m.value[row]...)
	m.value = slices.Delete(m.value, row, row+1)
}

func (m *Model) deleteBeforeCursor() {
	m.value[m.row] = m.value[m.row][m.col:]
	m.SetCursorColumn(0)
}

func (m *Model) deleteAfterCursor() {
	m.value[m.row] = m.value[m.row][:m.col]
	m.SetCursorColumn(len(m.value[m.row]))
}

func (m *Model) deleteWordLeft() {
	if m.col == 0 || len(m.value[m.row]) == 0 {
		return
	}
	row := m.value[m.row]
	end := m.col
	start := end
	for start > 0 && unicode.IsSpace(row[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(row[start-1]) {
		start--
	}
	m.value[m.row] = slices.Delete(row, start, end)
	m.SetCursorColumn(start)
}

func (m *Model) deleteWordRight() {
	row := m.value[m.row]
	if m.col >= len(row) {
		return
	}
	end := m.col
	for end < len(row) && unicode.IsSpace(row[end]) {
		end++
	}
	for end < len(row) && !unicode.IsSpace(row[end]) {
		end++
	}
	m.value[m.row] = slices.Delete(row, m.col, end)
	m.SetCursorColumn(m.col)
}

func (m *Model) characterRight() {
	if m.col < len(m.value[m.row]) {
		m.SetCursorColumn(m.col + 1)
	} else if m.row < len(m.value)-1 {
		m.row++
		m.CursorStart()
	}
}

func (m *Model) characterLeft() {
	if m.col == 0 && m.row != 0 {
		m.row--
		m.CursorEnd()
		return
	}
	if m.col > 0 {
		m.SetCursorColumn(m.col - 1)
	}
}

func (m *Model) wordLeft() {
	for {
		if m.col == 0 && m.row == 0 {
			return
		}
		m.characterLeft()
		if m.col < len(m.value[m.row]) && !unicode.IsSpace(m.value[m.row][m.col]) {
			break
		}
	}
	for m.col > 0 && !unicode.IsSpace(m.value[m.row][m.col-1]) {
		m.SetCursorColumn(m.col - 1)
	}
}

func (m *Model) wordRight() {
	for m.col >= len(m.value[m.row]) || unicode.IsSpace(m.value[m.row][m.col]) {
		if m.row == len(m.value)-1 && m.col == len(m.value[m.row]) {
			return
		}
		m.characterRight()
	}
	for m.col < len(m.value[m.row]) && !unicode.IsSpace(m.value[m.row][m.col]) {
		m.SetCursorColumn(m.col + 1)
	}
}

func (m *Model) moveToBegin() {
	m.row = 0
	m.SetCursorColumn(0)
}

func (m *Model) moveToEnd() {
	m.row = len(m.value) - 1
	m.SetCursorColumn(len(m.value[m.row]))
}

type snapshot struct {
	value    [][]rune
	row, col int
	text     string
}

func (m *Model) snapshot() snapshot {
	value := make([][]rune, len(m.value), cap(m.value))
	for i, l := range m.value {
		value[i] = slices.Clone(l)
	}
	return snapshot{value: value, row: m.row, col: m.col, text: m.Value()}
}

// commit keeps or reverts a user edit made since before and notifies the
// action handler when the text changed.
func (m *Model) commit(before snapshot) {
	after := m.Value()
	if after == before.text {
		return
	}
	if m.ShouldChange != nil && !m.ShouldChange(before.text, after) {
		m.value, m.row, m.col = before.value, before.row, before.col
		return
	}
	m.notify(growing.ActionContentChanged)
}

// Update handles key presses and paste results. Edits run through
// ShouldChange and notify the action handler once per message.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.focus {
		m.Cursor.Blur()
		return nil
	}

	oldRow, oldCol := m.cursorLineNumber(), m.col
	before := m.snapshot()
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.KeyMap.DeleteAfterCursor):
			if m.col >= len(m.value[m.row]) {
				m.mergeLineBelow(m.row)
				break
			}
			m.deleteAfterCursor()
		case key.Matches(msg, m.KeyMap.DeleteBeforeCursor):
			if m.col <= 0 {
				m.mergeLineAbove(m.row)
				break
			}
			m.deleteBeforeCursor()
		case key.Matches(msg, m.KeyMap.DeleteCharacterBackward):
			if m.col <= 0 {
				m.mergeLineAbove(m.row)
				break
			}
			m.value[m.row] = slices.Delete(m.value[m.row], m.col-1, m.col)
			m.SetCursorColumn(m.col - 1)
		case key.Matches(msg, m.KeyMap.DeleteCharacterForward):
			if m.col >= len(m.value[m.row]) {
				m.mergeLineBelow(m.row)
				break
			}
			m.value[m.row] = slices.Delete(m.value[m.row], m.col, m.col+1)
		case key.Matches(msg, m.KeyMap.DeleteWordBackward):
			if m.col <= 0 {
				m.mergeLineAbove(m.row)
				break
			}
			m.deleteWordLeft()
		case key.Matches(msg, m.KeyMap.DeleteWordForward):
			if m.col >= len(m.value[m.row]) {
				m.mergeLineBelow(m.row)
				break
			}
			m.deleteWordRight()
		case key.Matches(msg, m.KeyMap.InsertNewline):
			m.newline()
		case key.Matches(msg, m.KeyMap.LineEnd):
			m.CursorEnd()
		case key.Matches(msg, m.KeyMap.LineStart):
			m.CursorStart()
		case key.Matches(msg, m.KeyMap.CharacterForward):
			m.characterRight()
		case key.Matches(msg, m.KeyMap.CharacterBackward):
			m.characterLeft()
		case key.Matches(msg, m.KeyMap.LineNext):
			m.CursorDown()
		case key.Matches(msg, m.KeyMap.LinePrevious):
			m.CursorUp()
		case key.Matches(msg, m.KeyMap.WordForward):
			m.wordRight()
		case key.Matches(msg, m.KeyMap.WordBackward):
			m.wordLeft()
		case key.Matches(msg, m.KeyMap.InputBegin):
			m.moveToBegin()
		case key.Matches(msg, m.KeyMap.InputEnd):
			m.moveToEnd()
		case key.Matches(msg, m.KeyMap.Paste):
			return Paste
		default:
			switch msg.Type {
			case tea.KeyRunes:
				m.insertRunes(msg.Runes)
			case tea.KeySpace:
				m.insertRunes([]rune{' '})
			}
		}

	case pasteMsg:
		m.insertRunes([]rune(msg))

	case pasteErrMsg:
		m.Err = msg
	}

	m.commit(before)

	var cmd tea.Cmd
	m.Cursor, cmd = m.Cursor.Update(msg)
	if (m.cursorLineNumber() != oldRow || m.col != oldCol) && m.Cursor.Mode() == cursor.CursorBlink {
		m.Cursor.Blink = false
		cmd = m.Cursor.BlinkCmd()
	}
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// Blink starts the cursor blinking.
func Blink() tea.Msg {
	return cursor.Blink()
}

// Paste reads the clipboard and inserts its text at the cursor.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return pasteErrMsg{err}
	}
	return pasteMsg(str)
}

func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}

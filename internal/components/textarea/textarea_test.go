package textarea

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/growingtext/pkg/growing"
	"github.com/sst/growingtext/pkg/richtext"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func recordActions(m *Model) *[]growing.Action {
	var actions []growing.Action
	m.SetActionHandler(func(a growing.Action) { actions = append(actions, a) })
	return &actions
}

func TestModel_MeasureNaturalSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width float64
		inset growing.Insets
		font  richtext.Font
		want  float64
	}{
		{name: "empty is one row", text: "", width: 10, want: 1},
		{name: "hard lines", text: "a\nb\nc", width: 10, want: 3},
		{name: "soft wrap", text: "hello world", width: 8, want: 2},
		{name: "unbounded width", text: "hello world", width: 0, want: 1},
		{
			name:  "insets",
			text:  "hello world",
			width: 7,
			inset: growing.Insets{Top: 1, Bottom: 1, Left: 1, Right: 1},
			want:  4,
		},
		{
			name:  "tall font",
			text:  "a\nb",
			width: 10,
			font:  richtext.Font{Family: "tall", LineHeight: 2},
			want:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := New()
			if tt.font != (richtext.Font{}) {
				m.SetFont(tt.font)
			}
			m.SetInset(tt.inset)
			m.SetText(tt.text)
			size := m.MeasureNaturalSize(tt.width)
			assert.Equal(t, tt.want, size.Height)
			assert.Equal(t, tt.width, size.Width)
		})
	}
}

func TestModel_Actions(t *testing.T) {
	t.Parallel()

	m := New()
	actions := recordActions(m)

	m.SetText("a")
	m.SetAttributedText(richtext.Plain("b"))
	m.SetFont(richtext.DefaultFont)
	m.SetInset(growing.Insets{})
	m.Focus()
	m.Focus()
	m.Blur()
	m.Blur()
	m.SetHidden(true)
	m.SetFrame(growing.Rect{Size: growing.Size{Width: 10, Height: 1}})

	assert.Equal(t, []growing.Action{
		growing.ActionContentChanged,
		growing.ActionContentChanged,
		growing.ActionFontOrInsetChanged,
		growing.ActionFontOrInsetChanged,
		growing.ActionBeginEditing,
		growing.ActionEndEditing,
	}, *actions)
}

func TestModel_Typing(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetFrame(growing.Rect{Size: growing.Size{Width: 20}})
	actions := recordActions(m)

	m.Update(runes("ignored"))
	assert.Empty(t, m.Value(), "blurred textarea ignores keys")

	m.Focus()
	*actions = nil

	m.Update(runes("hi"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(runes("there"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("x"))
	assert.Equal(t, "hi there\nx", m.Value())
	assert.Len(t, *actions, 5, "one content change per edit")

	*actions = nil
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Empty(t, *actions, "cursor motion is not a content change")

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "hi therx", m.Value(), "merge then delete before the cursor")
	assert.Equal(t, 7, m.CursorColumn())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, "hi x", m.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.Equal(t, "hi \n\nx", m.Value())
	assert.Equal(t, 3, m.LineCount())
}

func TestModel_PasteMessage(t *testing.T) {
	t.Parallel()

	m := New()
	m.Focus()
	m.Update(pasteMsg("one\ntwo\tthree"))
	assert.Equal(t, "one\ntwo    three", m.Value())
	assert.Equal(t, 1, m.Line())
}

func TestModel_ShouldChange(t *testing.T) {
	t.Parallel()

	m := New()
	m.ShouldChange = func(_, after string) bool { return len(after) <= 3 }
	actions := recordActions(m)
	m.Focus()
	*actions = nil

	m.Update(runes("abc"))
	m.Update(runes("d"))
	assert.Equal(t, "abc", m.Value())
	assert.Equal(t, 3, m.CursorColumn())
	assert.Len(t, *actions, 1, "vetoed edits do not notify")

	m.SetText("programmatic")
	assert.Equal(t, "programmatic", m.Value(), "programmatic changes bypass the filter")
}

func TestModel_CharLimit(t *testing.T) {
	t.Parallel()

	m := New()
	m.CharLimit = 4
	m.Focus()
	m.Update(runes("abcdef"))
	assert.Equal(t, "abcd", m.Value())
}

func TestModel_AttributedText(t *testing.T) {
	t.Parallel()

	m := New()
	bold := richtext.Font{Family: "monospace", LineHeight: 1, Bold: true}
	text := richtext.Plain("plain ").Append(richtext.Styled("bold", richtext.Attributes{Font: &bold}))

	m.SetAttributedText(text)
	assert.True(t, m.AttributedText().Equal(text))
	assert.Equal(t, "plain bold", m.Text())

	m.Focus()
	m.Update(runes("!"))
	got := m.AttributedText()
	require.Len(t, got.Runs, 1)
	assert.Equal(t, "plain bold!", got.Text())
	assert.Equal(t, &bold, got.Runs[0].Attributes.Font, "edits keep the typing attributes")
}

func TestModel_SimulateRestoresThroughSurface(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetFrame(growing.Rect{Size: growing.Size{Width: 20}})
	m.SetText("keep\nme")
	sim := growing.NewHeightSimulator(m)

	assert.Equal(t, 1.0, sim.Simulate(1))
	assert.Equal(t, 3.0, sim.Simulate(3))
	assert.Equal(t, "keep\nme", m.Text())
	assert.False(t, m.Hidden())
}

func TestModel_GrowingView(t *testing.T) {
	t.Parallel()

	m := New()
	var heights []float64
	v := growing.New(m, growing.WithObserver(growing.Handlers{
		OnDidChangeHeight: func(h float64) { heights = append(heights, h) },
	}))
	v.Layout(10)
	assert.Equal(t, growing.ResolvedBounds{MinHeight: 1, MaxHeight: 3}, v.Bounds())

	v.BecomeFirstResponder()
	heights = nil
	for _, r := range "abc" {
		m.Update(runes(string(r)))
		m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	}
	m.Update(runes("d"))

	assert.Equal(t, "a\nb\nc\nd", v.Text())
	assert.Equal(t, 3.0, v.Frame().Height())
	assert.Equal(t, 4.0, v.ContentSize().Height)
	assert.Equal(t, 1.0, v.ContentOffset().Y)
	assert.Equal(t, []float64{1, 2, 2, 3, 3, 3, 3}, heights)

	v.SetInset(growing.Insets{Top: 1})
	assert.Equal(t, growing.ResolvedBounds{MinHeight: 2, MaxHeight: 4}, v.Bounds())
	assert.Equal(t, "a\nb\nc\nd", v.Text())
}

func TestModel_CursorMovesAcrossSoftWraps(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetFrame(growing.Rect{Size: growing.Size{Width: 6}})
	m.SetText("hello world")
	m.Focus()

	li := m.LineInfo()
	assert.Equal(t, 1, li.RowOffset)
	assert.Equal(t, 1, m.cursorLineNumber())

	m.CursorUp()
	assert.Equal(t, 0, m.LineInfo().RowOffset)
	assert.Equal(t, 5, m.CursorColumn())

	m.CursorDown()
	assert.Equal(t, 1, m.LineInfo().RowOffset)
	assert.Equal(t, 11, m.CursorColumn())
	assert.Equal(t, 1, m.CaretRow())
}

func TestModel_View(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetFrame(growing.Rect{Size: growing.Size{Width: 8}})
	m.SetText("hello world")
	m.SetInset(growing.Insets{Top: 1, Left: 2})

	view := ansi.Strip(m.View())
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 3)
	assert.Empty(t, strings.TrimSpace(lines[0]))
	assert.Equal(t, "  hello ", lines[1])
	assert.Equal(t, "  world ", lines[2])

	m.SetHidden(true)
	assert.Empty(t, m.View())
}

func TestModel_PlaceholderView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layout growing.HorizontalLayout
		want   string
	}{
		{name: "leading", layout: growing.LayoutLeading, want: "hi        "},
		{name: "center", layout: growing.LayoutCenter, want: "    hi    "},
		{name: "trailing", layout: growing.LayoutTrailing, want: "        hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := New()
			m.SetFrame(growing.Rect{Size: growing.Size{Width: 10}})
			got := ansi.Strip(m.PlaceholderView(richtext.Plain("hi"), tt.layout))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 10, lipgloss.Width(got))
		})
	}

	m := New()
	m.SetFrame(growing.Rect{Size: growing.Size{Width: 5}})
	got := ansi.Strip(m.PlaceholderView(richtext.Plain("say something"), growing.LayoutLeading))
	assert.Equal(t, []string{"say  ", "somet", "hing "}, strings.Split(got, "\n"))
	assert.Empty(t, m.PlaceholderView(richtext.String{}, growing.LayoutLeading))
}

func TestModel_CharLimitOnlyAppliesToTyping(t *testing.T) {
	t.Parallel()

	m := New()
	m.CharLimit = 4
	config := growing.DefaultConfiguration()
	config.MinLines, config.MaxLines = 1, 3
	v := growing.New(m, growing.WithConfiguration(config))
	v.Layout(40)
	assert.Equal(t, growing.ResolvedBounds{MinHeight: 1, MaxHeight: 3}, v.Bounds())

	v.SetText("\n\n\n")
	assert.Equal(t, 3.0, v.Frame().Height())
	assert.Equal(t, 4.0, v.ContentSize().Height)

	m.Focus()
	m.Update(runes("xyz"))
	assert.Equal(t, "\n\n\nx", m.Value())
}

func TestModel_BoundsChangeKeepsCaret(t *testing.T) {
	t.Parallel()

	m := New()
	v := growing.New(m)
	v.Layout(40)
	v.SetText("hello world")
	m.SetCursorColumn(3)

	v.SetMaxLines(5)
	v.SetInset(growing.Insets{Top: 1})
	assert.Equal(t, "hello world", m.Value())
	assert.Equal(t, 0, m.Line())
	assert.Equal(t, 3, m.CursorColumn())
}

func TestModel_Selection(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetText("ab\ncdef")
	assert.Equal(t, growing.Selection{Start: 7, End: 7}, m.Selection())

	m.SetSelection(growing.Selection{Start: 4, End: 4})
	assert.Equal(t, 1, m.Line())
	assert.Equal(t, 1, m.CursorColumn())
	assert.Equal(t, growing.Selection{Start: 4, End: 4}, m.Selection())

	m.SetSelection(growing.Selection{Start: 2, End: 2})
	assert.Equal(t, 0, m.Line())
	assert.Equal(t, 2, m.CursorColumn())

	m.SetSelection(growing.Selection{Start: 99, End: 99})
	assert.Equal(t, 1, m.Line())
	assert.Equal(t, 4, m.CursorColumn())
}

func TestModel_ChangeFilterFromHandlers(t *testing.T) {
	t.Parallel()

	m := New()
	growing.New(m, growing.WithObserver(growing.Handlers{
		OnShouldChange: func(_, after string) bool { return !strings.Contains(after, "x") },
	}))
	m.Focus()

	m.Update(runes("a"))
	m.Update(runes("x"))
	m.Update(runes("b"))
	assert.Equal(t, "ab", m.Value())
}

func TestModel_AttributedTextKeepsRunsThroughSanitizing(t *testing.T) {
	t.Parallel()

	m := New()
	bold := richtext.Font{Family: "monospace", LineHeight: 1, Bold: true}
	m.SetAttributedText(richtext.Plain("a\tb").Append(richtext.Styled("c\x07", richtext.Attributes{Font: &bold})))

	got := m.AttributedText()
	require.Len(t, got.Runs, 2)
	assert.Equal(t, "a    b", got.Runs[0].Text)
	assert.Equal(t, "c", got.Runs[1].Text)
	assert.Equal(t, &bold, got.Runs[1].Attributes.Font)
	assert.Equal(t, "a    bc", m.Text())
}

func TestModel_SetTextDoesNotReserveRows(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetText("a\nb")
	assert.Less(t, cap(m.value), 16)
}

func TestDefaultKeyMap_LeavesScreenKeysFree(t *testing.T) {
	t.Parallel()

	keys := DefaultKeyMap()
	all := []key.Binding{
		keys.CharacterBackward, keys.CharacterForward, keys.WordBackward, keys.WordForward,
		keys.LinePrevious, keys.LineNext, keys.LineStart, keys.LineEnd, keys.InputBegin, keys.InputEnd,
		keys.DeleteCharacterBackward, keys.DeleteCharacterForward, keys.DeleteWordBackward,
		keys.DeleteWordForward, keys.DeleteBeforeCursor, keys.DeleteAfterCursor,
		keys.InsertNewline, keys.Paste,
	}
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlP}, {Type: tea.KeyCtrlN}, {Type: tea.KeyCtrlT}} {
		assert.False(t, key.Matches(msg, all...), msg.String())
	}
	for _, b := range all {
		assert.NotEmpty(t, b.Help().Desc)
	}
}

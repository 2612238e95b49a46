package growing

import (
	"strings"

	"github.com/sst/growingtext/pkg/richtext"
)

const testLineHeight = 20

// fakeSurface lays out one line per newline at testLineHeight px per line,
// scaled by the font's LineHeight.
type fakeSurface struct {
	text      richtext.String
	font      richtext.Font
	inset     Insets
	hidden    bool
	frame     Rect
	focused   bool
	handler   func(Action)
	accessory any
	selection Selection
	filter    func(before, after string) bool

	// degenerate makes visible measurements report this height.
	degenerate *float64
	// panicOnMeasure panics inside MeasureNaturalSize while hidden.
	panicOnMeasure bool

	measures int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{font: richtext.DefaultFont}
}

func (s *fakeSurface) notify(a Action) {
	if s.handler != nil {
		s.handler(a)
	}
}

func (s *fakeSurface) MeasureNaturalSize(width float64) Size {
	s.measures++
	if s.hidden && s.panicOnMeasure {
		panic("measure failed")
	}
	if !s.hidden && s.degenerate != nil {
		return Size{Width: width, Height: *s.degenerate}
	}
	lines := strings.Count(s.text.Text(), "\n") + 1
	lineHeight := s.text.LineHeight(s.font) * testLineHeight
	return Size{Width: width, Height: float64(lines)*lineHeight + s.inset.Vertical()}
}

func (s *fakeSurface) Text() string { return s.text.Text() }

// SetText and SetAttributedText put the caret at the end, like a real
// editor.
func (s *fakeSurface) SetText(text string) {
	s.text = richtext.Plain(text)
	s.caretToEnd()
	s.notify(ActionContentChanged)
}

func (s *fakeSurface) caretToEnd() {
	n := s.text.Len()
	s.selection = Selection{Start: n, End: n}
}

// edit applies a user edit through the change filter.
func (s *fakeSurface) edit(text string) {
	if s.filter != nil && !s.filter(s.Text(), text) {
		return
	}
	s.SetText(text)
}

func (s *fakeSurface) Selection() Selection                              { return s.selection }
func (s *fakeSurface) SetSelection(sel Selection)                        { s.selection = sel }
func (s *fakeSurface) SetChangeFilter(f func(before, after string) bool) { s.filter = f }

func (s *fakeSurface) AttributedText() richtext.String { return s.text }

func (s *fakeSurface) SetAttributedText(text richtext.String) {
	s.text = text
	s.caretToEnd()
	s.notify(ActionContentChanged)
}

func (s *fakeSurface) Font() richtext.Font { return s.font }

func (s *fakeSurface) SetFont(font richtext.Font) {
	s.font = font
	s.notify(ActionFontOrInsetChanged)
}

func (s *fakeSurface) Inset() Insets { return s.inset }

func (s *fakeSurface) SetInset(inset Insets) {
	s.inset = inset
	s.notify(ActionFontOrInsetChanged)
}

func (s *fakeSurface) Hidden() bool            { return s.hidden }
func (s *fakeSurface) SetHidden(hidden bool)   { s.hidden = hidden }
func (s *fakeSurface) Frame() Rect             { return s.frame }
func (s *fakeSurface) SetFrame(frame Rect)     { s.frame = frame }
func (s *fakeSurface) Focused() bool           { return s.focused }
func (s *fakeSurface) InputAccessory() any     { return s.accessory }
func (s *fakeSurface) SetInputAccessory(a any) { s.accessory = a }

func (s *fakeSurface) SetActionHandler(handler func(Action)) { s.handler = handler }

func (s *fakeSurface) Focus() bool {
	if !s.focused {
		s.focused = true
		s.notify(ActionBeginEditing)
	}
	return true
}

func (s *fakeSurface) Blur() bool {
	if s.focused {
		s.focused = false
		s.notify(ActionEndEditing)
	}
	return true
}

type fakeHost struct {
	flashes      int
	invalidates  int
	repositions  int
	onReposition func()
}

func (h *fakeHost) FlashScrollIndicators()          { h.flashes++ }
func (h *fakeHost) InvalidateIntrinsicContentSize() { h.invalidates++ }
func (h *fakeHost) RepositionOverlay() {
	h.repositions++
	if h.onReposition != nil {
		h.onReposition()
	}
}

type recordedEvent struct {
	kind        EventKind
	height      float64
	frameHeight float64
	state       State
}

// recorder captures notifications together with the container height seen
// at the time each one fired.
type recorder struct {
	view   *View
	events []recordedEvent
}

func (r *recorder) frameHeight() float64 {
	if r.view == nil {
		return 0
	}
	return r.view.Frame().Height()
}

func (r *recorder) WillChangeHeight(height float64) {
	r.events = append(r.events, recordedEvent{kind: EventWillChangeHeight, height: height, frameHeight: r.frameHeight()})
}

func (r *recorder) DidChangeHeight(height float64) {
	r.events = append(r.events, recordedEvent{kind: EventDidChangeHeight, height: height, frameHeight: r.frameHeight()})
}

func (r *recorder) DidChangeState(state State) {
	r.events = append(r.events, recordedEvent{kind: EventDidChangeState, state: state})
}

func (r *recorder) reset() { r.events = nil }

func (r *recorder) kinds() []EventKind {
	var kinds []EventKind
	for _, e := range r.events {
		kinds = append(kinds, e.kind)
	}
	return kinds
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// newTestView builds a view at width 100 with a recorder attached and
// cleared.
func newTestView(opts ...Option) (*View, *fakeSurface, *fakeHost, *recorder) {
	surface := newFakeSurface()
	host := &fakeHost{}
	rec := &recorder{}
	opts = append([]Option{WithHost(host), WithObserver(rec)}, opts...)
	v := New(surface, opts...)
	rec.view = v
	v.Layout(100)
	rec.reset()
	*host = fakeHost{}
	return v, surface, host, rec
}

func lines(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "line"
	}
	return strings.Join(parts, "\n")
}

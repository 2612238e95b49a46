package growing

import "github.com/sst/growingtext/pkg/richtext"

// Action is a notification from the editable surface.
type Action int

const (
	ActionBeginEditing Action = iota
	ActionEndEditing
	ActionContentChanged
	ActionFontOrInsetChanged
)

func (a Action) String() string {
	switch a {
	case ActionBeginEditing:
		return "beginEditing"
	case ActionEndEditing:
		return "endEditing"
	case ActionContentChanged:
		return "contentChanged"
	case ActionFontOrInsetChanged:
		return "fontOrInsetChanged"
	}
	return "unknown"
}

// Surface is the editable text component a View grows around. It doubles as
// the measurement oracle.
//
// Implementations deliver each Action synchronously, once per logical
// mutation, on the goroutine that performed it. Programmatic mutations
// (SetText, SetAttributedText, SetFont, SetInset, Focus, Blur) notify the same
// way user edits do.
type Surface interface {
	// MeasureNaturalSize returns the size the content needs at width with no
	// height limit, insets included.
	MeasureNaturalSize(width float64) Size

	Text() string
	SetText(text string)
	AttributedText() richtext.String
	SetAttributedText(text richtext.String)

	Font() richtext.Font
	SetFont(font richtext.Font)
	Inset() Insets
	SetInset(inset Insets)

	Hidden() bool
	SetHidden(hidden bool)
	Frame() Rect
	SetFrame(frame Rect)

	SetActionHandler(handler func(Action))

	// Focus makes the surface the first responder. It reports whether the
	// surface accepted focus.
	Focus() bool
	// Blur resigns first responder.
	Blur() bool
	Focused() bool
}

// AccessoryHolder is implemented by surfaces that can carry an input
// accessory (a toolbar shown alongside the keyboard or input line).
type AccessoryHolder interface {
	InputAccessory() any
	SetInputAccessory(accessory any)
}

// Selection is a caret or selected range as rune offsets into the plain
// text. A caret has Start == End.
type Selection struct {
	Start, End int
}

// SelectionHolder is implemented by surfaces with a caret. The height
// simulator saves and restores the selection around its content swap.
type SelectionHolder interface {
	Selection() Selection
	SetSelection(sel Selection)
}

// ChangeFilterer is implemented by surfaces that can veto user edits. The
// filter gets the text before and after an edit; false drops the edit.
type ChangeFilterer interface {
	SetChangeFilter(filter func(before, after string) bool)
}

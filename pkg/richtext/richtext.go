// Package richtext holds the attributed-string model shared by the growing
// view and its editable surfaces.
package richtext

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Font describes the text metrics a surface lays out with. LineHeight is in
// layout units (rows for terminal surfaces).
type Font struct {
	Family     string
	Size       float64
	LineHeight float64
	Bold       bool
	Italic     bool
}

// DefaultFont is a single-row terminal font.
var DefaultFont = Font{Family: "monospace", Size: 1, LineHeight: 1}

// Attributes apply to a run of text. A nil Font means the surface font.
type Attributes struct {
	Font  *Font
	Style lipgloss.Style
}

// Run is a contiguous span sharing one set of attributes.
type Run struct {
	Text       string
	Attributes Attributes
}

// String is an attributed string.
type String struct {
	Runs []Run
}

// Plain wraps s into a String with default attributes.
func Plain(s string) String {
	if s == "" {
		return String{}
	}
	return String{Runs: []Run{{Text: s}}}
}

// Styled wraps s into a single run with the given attributes.
func Styled(s string, attrs Attributes) String {
	if s == "" {
		return String{}
	}
	return String{Runs: []Run{{Text: s, Attributes: attrs}}}
}

// Text returns the plain projection.
func (s String) Text() string {
	if len(s.Runs) == 1 {
		return s.Runs[0].Text
	}
	var b strings.Builder
	for _, r := range s.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the length in runes.
func (s String) Len() int {
	n := 0
	for _, r := range s.Runs {
		n += len([]rune(r.Text))
	}
	return n
}

// IsEmpty reports whether the string has no text.
func (s String) IsEmpty() bool {
	for _, r := range s.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Append returns s followed by other, merging nothing.
func (s String) Append(other String) String {
	runs := make([]Run, 0, len(s.Runs)+len(other.Runs))
	runs = append(runs, s.Runs...)
	runs = append(runs, other.Runs...)
	return String{Runs: runs}
}

// Clone returns a copy that does not share the run slice.
func (s String) Clone() String {
	if s.Runs == nil {
		return String{}
	}
	runs := make([]Run, len(s.Runs))
	copy(runs, s.Runs)
	return String{Runs: runs}
}

// Equal compares text and fonts run by run. Render styles are not compared.
func (s String) Equal(other String) bool {
	a, b := s.compact(), other.compact()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
		fa, fb := a[i].Attributes.Font, b[i].Attributes.Font
		if (fa == nil) != (fb == nil) || (fa != nil && *fa != *fb) {
			return false
		}
	}
	return true
}

func (s String) compact() []Run {
	out := make([]Run, 0, len(s.Runs))
	for _, r := range s.Runs {
		if r.Text != "" {
			out = append(out, r)
		}
	}
	return out
}

// LineHeight returns the tallest line box among fonts used by the runs,
// falling back to base.
func (s String) LineHeight(base Font) float64 {
	h := base.LineHeight
	for _, r := range s.Runs {
		if r.Attributes.Font != nil && r.Attributes.Font.LineHeight > h {
			h = r.Attributes.Font.LineHeight
		}
	}
	return h
}

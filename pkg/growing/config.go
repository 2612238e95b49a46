package growing

import (
	"errors"
	"fmt"
	"strings"
)

// PlaceholderHidingMode decides when the placeholder disappears.
type PlaceholderHidingMode int

const (
	// HideOnTypedText shows the placeholder while the text is empty.
	HideOnTypedText PlaceholderHidingMode = iota
	// HideOnFocus shows the placeholder while the view is not editing.
	HideOnFocus
)

func (m PlaceholderHidingMode) String() string {
	switch m {
	case HideOnFocus:
		return "onFocus"
	default:
		return "onTypedText"
	}
}

// ParsePlaceholderHidingMode accepts "onFocus" and "onTypedText", case
// insensitively.
func ParsePlaceholderHidingMode(s string) (PlaceholderHidingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "onfocus", "focus":
		return HideOnFocus, nil
	case "ontypedtext", "typedtext", "":
		return HideOnTypedText, nil
	}
	return HideOnTypedText, fmt.Errorf("unknown placeholder hiding mode %q", s)
}

// HorizontalLayout positions the placeholder inside the text container.
type HorizontalLayout int

const (
	LayoutLeading HorizontalLayout = iota
	LayoutCenter
	LayoutTrailing
)

func (l HorizontalLayout) String() string {
	switch l {
	case LayoutCenter:
		return "center"
	case LayoutTrailing:
		return "trailing"
	default:
		return "leading"
	}
}

// ParseHorizontalLayout accepts "leading", "center" and "trailing".
func ParseHorizontalLayout(s string) (HorizontalLayout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leading", "left", "":
		return LayoutLeading, nil
	case "center", "centre":
		return LayoutCenter, nil
	case "trailing", "right":
		return LayoutTrailing, nil
	}
	return LayoutLeading, fmt.Errorf("unknown placeholder layout %q", s)
}

// Configuration is an immutable snapshot of the view settings. Replace it
// wholesale with View.SetConfiguration or one of the per-field setters.
type Configuration struct {
	MinLines              int
	MaxLines              int
	AutoScrollToBottom    bool
	FlashScrollIndicators bool
	PlaceholderHiding     PlaceholderHidingMode
	PlaceholderLayout     HorizontalLayout
}

// DefaultConfiguration returns one to three lines, pinned scrolling, flashing
// indicators and a placeholder that hides on typed text.
func DefaultConfiguration() Configuration {
	return Configuration{
		MinLines:              1,
		MaxLines:              3,
		AutoScrollToBottom:    true,
		FlashScrollIndicators: true,
		PlaceholderHiding:     HideOnTypedText,
		PlaceholderLayout:     LayoutLeading,
	}
}

// Validate reports every problem with the line counts.
func (c Configuration) Validate() error {
	var errs []error
	if c.MinLines < 1 {
		errs = append(errs, fmt.Errorf("minLines must be at least 1, got %d", c.MinLines))
	}
	if c.MaxLines < 1 {
		errs = append(errs, fmt.Errorf("maxLines must be at least 1, got %d", c.MaxLines))
	}
	if c.MaxLines < c.MinLines {
		errs = append(errs, fmt.Errorf("maxLines (%d) must not be less than minLines (%d)", c.MaxLines, c.MinLines))
	}
	return errors.Join(errs...)
}

// Normalized coerces line counts below 1 to 1 and raises MaxLines to MinLines
// when it is smaller.
func (c Configuration) Normalized() Configuration {
	c.MinLines = max(c.MinLines, 1)
	c.MaxLines = max(c.MaxLines, 1)
	if c.MaxLines < c.MinLines {
		c.MaxLines = c.MinLines
	}
	return c
}

func (c Configuration) affectsMeasurement(other Configuration) bool {
	return c.MinLines != other.MinLines || c.MaxLines != other.MaxLines
}

package growing

import "strings"

const (
	simulatedFirstLine = "-"
	// A tall, wide glyph between bars so the line box is never shorter than a
	// real line in the same font.
	simulatedLine = "\n|W|"
)

// HeightSimulator measures how tall N lines would be under the surface's
// current font and inset, without leaving any trace on the surface.
type HeightSimulator struct {
	surface Surface
	// simulating is set for the duration of Simulate so the owner can ignore
	// actions fired by the temporary content swap.
	simulating bool
}

// NewHeightSimulator returns a simulator over surface.
func NewHeightSimulator(surface Surface) *HeightSimulator {
	return &HeightSimulator{surface: surface}
}

// Simulating reports whether a simulation is in progress.
func (s *HeightSimulator) Simulating() bool {
	return s.simulating
}

// SyntheticText returns the placeholder content used to simulate lines.
func SyntheticText(lines int) string {
	lines = max(lines, 1)
	return simulatedFirstLine + strings.Repeat(simulatedLine, lines-1)
}

// Simulate returns the natural height of lines lines of synthetic content at
// the surface's current width. Lines below 1 count as 1. Content, selection
// and visibility are restored on every exit path.
func (s *HeightSimulator) Simulate(lines int) (height float64) {
	surface := s.surface
	saved := surface.AttributedText().Clone()
	wasHidden := surface.Hidden()
	holder, hasSelection := surface.(SelectionHolder)
	var selection Selection
	if hasSelection {
		selection = holder.Selection()
	}

	s.simulating = true
	defer func() {
		surface.SetAttributedText(saved)
		if hasSelection {
			holder.SetSelection(selection)
		}
		surface.SetHidden(wasHidden)
		s.simulating = false
	}()

	surface.SetHidden(true)
	surface.SetText(SyntheticText(lines))

	return surface.MeasureNaturalSize(surface.Frame().Width()).Height
}

package growing

import "math"

// Point is a position in layout units.
type Point struct {
	X, Y float64
}

// Size is an extent in layout units.
type Size struct {
	Width, Height float64
}

// Rect is an origin plus a size.
type Rect struct {
	Origin Point
	Size   Size
}

// Insets pad the text container inside a surface.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Vertical returns Top+Bottom.
func (i Insets) Vertical() float64 { return i.Top + i.Bottom }

// Horizontal returns Left+Right.
func (i Insets) Horizontal() float64 { return i.Left + i.Right }

// Width is shorthand for r.Size.Width.
func (r Rect) Width() float64 { return r.Size.Width }

// Height is shorthand for r.Size.Height.
func (r Rect) Height() float64 { return r.Size.Height }

const epsilon = 1e-6

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

package growing

import (
	"testing"

	"github.com/sst/growingtext/pkg/richtext"
	"github.com/stretchr/testify/assert"
)

func TestResolvedBounds_Clamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bounds ResolvedBounds
		in     float64
		want   float64
	}{
		{name: "below min", bounds: ResolvedBounds{20, 60}, in: 5, want: 20},
		{name: "at min", bounds: ResolvedBounds{20, 60}, in: 20, want: 20},
		{name: "inside", bounds: ResolvedBounds{20, 60}, in: 40, want: 40},
		{name: "at max", bounds: ResolvedBounds{20, 60}, in: 60, want: 60},
		{name: "above max clamps to max", bounds: ResolvedBounds{20, 60}, in: 100, want: 60},
		{name: "inverted bounds below min", bounds: ResolvedBounds{60, 20}, in: 10, want: 60},
		{name: "inverted bounds above max", bounds: ResolvedBounds{60, 20}, in: 80, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.bounds.Clamp(tt.in))
		})
	}
}

func TestBoundsResolver_Ordering(t *testing.T) {
	t.Parallel()

	for lo := 1; lo <= 4; lo++ {
		for hi := lo; hi <= 6; hi++ {
			surface := newFakeSurface()
			r := NewBoundsResolver(NewHeightSimulator(surface), Configuration{MinLines: lo, MaxLines: hi})
			b := r.Resolve()
			assert.LessOrEqual(t, b.MinHeight, b.MaxHeight, "min=%d max=%d", lo, hi)
			assert.Equal(t, float64(lo*testLineHeight), b.MinHeight)
			assert.Equal(t, float64(hi*testLineHeight), b.MaxHeight)
		}
	}
}

func TestBoundsResolver_Invalidation(t *testing.T) {
	t.Parallel()

	surface := newFakeSurface()
	r := NewBoundsResolver(NewHeightSimulator(surface), DefaultConfiguration())
	assert.False(t, r.Valid())
	assert.Equal(t, ResolvedBounds{20, 60}, r.Bounds())
	assert.True(t, r.Valid())

	cfg := r.Configuration()
	cfg.AutoScrollToBottom = false
	assert.False(t, r.SetConfiguration(cfg), "non-measuring fields keep the bounds")
	assert.True(t, r.Valid())

	cfg.MaxLines = 5
	assert.True(t, r.SetConfiguration(cfg))
	assert.False(t, r.Valid())
	assert.Equal(t, ResolvedBounds{20, 100}, r.Bounds())

	surface.font = richtext.Font{Family: "big", Size: 2, LineHeight: 2}
	r.Invalidate()
	assert.Equal(t, ResolvedBounds{40, 200}, r.Bounds())
}

func TestBoundsResolver_CoercesConfiguration(t *testing.T) {
	t.Parallel()

	r := NewBoundsResolver(NewHeightSimulator(newFakeSurface()), Configuration{MinLines: 0, MaxLines: -2})
	assert.Equal(t, 1, r.Configuration().MinLines)
	assert.Equal(t, 1, r.Configuration().MaxLines)
	assert.Equal(t, ResolvedBounds{20, 20}, r.Bounds())
}

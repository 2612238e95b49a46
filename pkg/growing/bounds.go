package growing

// ResolvedBounds is the cached height range derived from the configured line
// counts under the current font and inset.
type ResolvedBounds struct {
	MinHeight float64
	MaxHeight float64
}

// Clamp maps a natural height to a container height. Each bound is checked on
// its own rather than assuming MinHeight <= MaxHeight: heights below MinHeight
// become MinHeight, heights above MaxHeight become MaxHeight.
func (b ResolvedBounds) Clamp(h float64) float64 {
	switch {
	case h < b.MinHeight:
		return b.MinHeight
	case h > b.MaxHeight:
		return b.MaxHeight
	}
	return h
}

// BoundsResolver owns the configuration and the bounds derived from it.
type BoundsResolver struct {
	simulator *HeightSimulator
	config    Configuration
	bounds    ResolvedBounds
	valid     bool
}

// NewBoundsResolver returns a resolver holding config.Normalized().
func NewBoundsResolver(simulator *HeightSimulator, config Configuration) *BoundsResolver {
	return &BoundsResolver{simulator: simulator, config: config.Normalized()}
}

// Configuration returns the current snapshot.
func (r *BoundsResolver) Configuration() Configuration {
	return r.config
}

// SetConfiguration replaces the snapshot. It reports whether the bounds were
// invalidated.
func (r *BoundsResolver) SetConfiguration(config Configuration) bool {
	config = config.Normalized()
	old := r.config
	r.config = config
	if old.affectsMeasurement(config) {
		r.valid = false
		return true
	}
	return false
}

// Invalidate drops the cached bounds; call it after a font or inset change.
func (r *BoundsResolver) Invalidate() {
	r.valid = false
}

// Valid reports whether the cached bounds are current.
func (r *BoundsResolver) Valid() bool {
	return r.valid
}

// Resolve simulates MinLines and MaxLines and caches the result.
func (r *BoundsResolver) Resolve() ResolvedBounds {
	r.bounds = ResolvedBounds{
		MinHeight: max(r.simulator.Simulate(r.config.MinLines), 0),
		MaxHeight: max(r.simulator.Simulate(r.config.MaxLines), 0),
	}
	r.valid = true
	return r.bounds
}

// Bounds returns the cached bounds, resolving first when they are stale.
func (r *BoundsResolver) Bounds() ResolvedBounds {
	if !r.valid {
		return r.Resolve()
	}
	return r.bounds
}

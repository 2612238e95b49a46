package growing

import "log/slog"

// Trigger names the event that started a fit pass.
type Trigger int

const (
	TriggerContentChanged Trigger = iota
	TriggerWidthChanged
	TriggerFontOrInsetChanged
	TriggerConfigurationChanged
)

func (t Trigger) String() string {
	switch t {
	case TriggerContentChanged:
		return "contentChanged"
	case TriggerWidthChanged:
		return "widthChanged"
	case TriggerFontOrInsetChanged:
		return "fontOrInsetChanged"
	case TriggerConfigurationChanged:
		return "configurationChanged"
	}
	return "unknown"
}

type fitState struct {
	previousFrameWidth         float64
	isAdjustingOverlayPosition bool
	currentContainerHeight     float64
}

type heightEmitter interface {
	willChangeHeight(height float64)
	didChangeHeight(height float64)
}

// FitEngine reconciles content changes into a container height, a content
// size and a scroll offset. It owns the scroll container geometry.
type FitEngine struct {
	surface  Surface
	resolver *BoundsResolver
	host     Host
	emit     heightEmitter
	logger   *slog.Logger

	frame         Rect
	contentSize   Size
	contentOffset Point

	state fitState
}

func newFitEngine(surface Surface, resolver *BoundsResolver, host Host, emit heightEmitter, logger *slog.Logger) *FitEngine {
	return &FitEngine{
		surface:  surface,
		resolver: resolver,
		host:     host,
		emit:     emit,
		logger:   logger,
	}
}

// Layout is the layout-pass entry point. It fits only when width differs
// from the width of the previous layout, and reports whether it did.
func (e *FitEngine) Layout(width float64) bool {
	if nearlyEqual(width, e.state.previousFrameWidth) {
		return false
	}
	e.state.previousFrameWidth = width
	e.frame.Size.Width = width
	e.Fit(TriggerWidthChanged)
	return true
}

// Fit runs one fit pass.
func (e *FitEngine) Fit(trigger Trigger) {
	width := e.frame.Width()
	e.syncSurfaceWidth(width)

	config := e.resolver.Configuration()
	bounds := e.resolver.Bounds()

	shouldStickToBottom := nearlyEqual(e.contentOffset.Y, e.contentSize.Height-e.frame.Height())

	natural := e.surface.MeasureNaturalSize(width).Height
	empty := e.surface.AttributedText().IsEmpty()

	contentHeight := natural
	if contentHeight <= 0 || contentHeight < bounds.MinHeight {
		contentHeight = bounds.MinHeight
	}
	e.surface.SetFrame(Rect{Size: Size{Width: width, Height: contentHeight}})
	e.contentSize = Size{Width: width, Height: contentHeight}

	height := containerHeight(natural, empty, bounds)
	previous := e.frame.Height()
	changed := !nearlyEqual(previous, height)
	if changed {
		e.emit.willChangeHeight(height)
		if config.FlashScrollIndicators && height <= bounds.MaxHeight {
			e.host.FlashScrollIndicators()
		}
	}

	e.frame.Size.Height = height
	e.state.currentContainerHeight = height

	if shouldStickToBottom && config.AutoScrollToBottom {
		e.contentOffset.Y = max(0, e.contentSize.Height-height)
	} else {
		e.contentOffset.Y = clampOffset(e.contentOffset.Y, e.contentSize.Height, height)
	}

	e.host.InvalidateIntrinsicContentSize()
	e.emit.didChangeHeight(height)

	e.logger.Debug("fit pass",
		"trigger", trigger.String(),
		"natural", natural,
		"height", height,
		"previous", previous,
		"stick", shouldStickToBottom,
		"offset", e.contentOffset.Y,
	)

	if e.surface.Focused() && !e.state.isAdjustingOverlayPosition {
		e.adjustOverlayPosition()
	}
}

func (e *FitEngine) adjustOverlayPosition() {
	e.state.isAdjustingOverlayPosition = true
	defer func() { e.state.isAdjustingOverlayPosition = false }()
	e.host.RepositionOverlay()
}

func (e *FitEngine) syncSurfaceWidth(width float64) {
	frame := e.surface.Frame()
	if nearlyEqual(frame.Width(), width) {
		return
	}
	frame.Size.Width = width
	e.surface.SetFrame(frame)
}

// IntrinsicContentSize is the size the view asks its parent for: the current
// width and the clamped natural height.
func (e *FitEngine) IntrinsicContentSize() Size {
	width := e.frame.Width()
	natural := e.surface.MeasureNaturalSize(width).Height
	return Size{
		Width:  width,
		Height: containerHeight(natural, e.surface.AttributedText().IsEmpty(), e.resolver.Bounds()),
	}
}

// SetContentOffset scrolls the container, clamped to the scrollable range.
func (e *FitEngine) SetContentOffset(offset Point) {
	offset.Y = clampOffset(offset.Y, e.contentSize.Height, e.frame.Height())
	e.contentOffset = offset
}

// ScrollToBottom pins the offset to the end of the content.
func (e *FitEngine) ScrollToBottom() {
	e.contentOffset.Y = max(0, e.contentSize.Height-e.frame.Height())
}

// IsAtBottom reports whether the offset is at the end of the content.
func (e *FitEngine) IsAtBottom() bool {
	return nearlyEqual(e.contentOffset.Y, max(0, e.contentSize.Height-e.frame.Height()))
}

// Scrollable reports whether the content is taller than the container.
func (e *FitEngine) Scrollable() bool {
	return e.contentSize.Height > e.frame.Height()+epsilon
}

func containerHeight(natural float64, empty bool, bounds ResolvedBounds) float64 {
	if empty || natural <= 0 {
		return bounds.MinHeight
	}
	return bounds.Clamp(natural)
}

func clampOffset(y, contentHeight, viewportHeight float64) float64 {
	return min(max(y, 0), max(0, contentHeight-viewportHeight))
}

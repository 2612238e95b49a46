// Package growing implements a multi-line text input that grows and shrinks
// its height with its content, between a minimum and a maximum number of
// lines, and scrolls internally beyond the maximum.
//
// A View wraps an editable Surface. Every content, font, inset, width or
// configuration change runs a fit pass: the surface is measured, the natural
// height is clamped to the resolved bounds, the container height and scroll
// offset are updated, and WillChangeHeight/DidChangeHeight are emitted around
// the frame change.
package growing

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sst/growingtext/pkg/pubsub"
	"github.com/sst/growingtext/pkg/richtext"
)

type options struct {
	config    Configuration
	observers []Observer
	host      Host
	logger    *slog.Logger
}

// Option configures a View at construction.
type Option func(*options)

// WithConfiguration sets the initial configuration.
func WithConfiguration(config Configuration) Option {
	return func(o *options) { o.config = config }
}

// WithObserver registers an observer before the initial fit pass.
func WithObserver(observer Observer) Option {
	return func(o *options) { o.observers = append(o.observers, observer) }
}

// WithHost sets the container the view reports layout side effects to.
func WithHost(host Host) Option {
	return func(o *options) { o.host = host }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// View is the self-resizing text input. It is not safe for concurrent use;
// drive it from the UI goroutine.
type View struct {
	id          string
	surface     Surface
	simulator   *HeightSimulator
	resolver    *BoundsResolver
	engine      *FitEngine
	placeholder *PlaceholderPresenter
	observers   []Observer
	broker      *pubsub.Broker[Event]
	logger      *slog.Logger

	editing bool
	state   State
	closed  bool
}

// New wraps surface, resolves the initial bounds and runs the first fit pass.
func New(surface Surface, opts ...Option) *View {
	o := options{
		config: DefaultConfiguration(),
		host:   nopHost{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	config := o.config.Normalized()

	v := &View{
		id:        uuid.NewString(),
		surface:   surface,
		observers: o.observers,
		broker:    pubsub.NewBroker[Event](),
	}
	v.logger = o.logger.With("view", v.id)
	v.simulator = NewHeightSimulator(surface)
	v.resolver = NewBoundsResolver(v.simulator, config)
	v.placeholder = NewPlaceholderPresenter(config.PlaceholderHiding, config.PlaceholderLayout)
	v.engine = newFitEngine(surface, v.resolver, o.host, v, v.logger)

	v.editing = surface.Focused()
	v.state = State{IsEditing: v.editing, Text: surface.Text()}
	v.placeholder.Update(v.state)

	surface.SetActionHandler(v.handleAction)
	if f, ok := surface.(ChangeFilterer); ok {
		f.SetChangeFilter(v.shouldChange)
	}
	v.resolver.Resolve()
	v.engine.Fit(TriggerConfigurationChanged)
	return v
}

func (v *View) handleAction(action Action) {
	if v.simulator.Simulating() {
		return
	}
	text := v.surface.Text()
	for _, o := range v.observers {
		if so, ok := o.(surfaceObserver); ok {
			so.surfaceAction(action, text)
		}
	}

	switch action {
	case ActionBeginEditing:
		v.editing = true
	case ActionEndEditing:
		v.editing = false
	case ActionContentChanged:
		v.engine.Fit(TriggerContentChanged)
	case ActionFontOrInsetChanged:
		v.resolver.Invalidate()
		v.resolver.Resolve()
		v.engine.Fit(TriggerFontOrInsetChanged)
	}
	v.syncState()
}

// shouldChange lets every observer with a change filter veto a user edit.
func (v *View) shouldChange(before, after string) bool {
	for _, o := range v.observers {
		if f, ok := o.(changeFilter); ok && !f.shouldChange(before, after) {
			return false
		}
	}
	return true
}

func (v *View) syncState() {
	next := State{IsEditing: v.editing, Text: v.surface.Text()}
	v.placeholder.Update(next)
	if next == v.state {
		return
	}
	v.state = next
	for _, o := range v.observers {
		o.DidChangeState(next)
	}
	v.publish(Event{Kind: EventDidChangeState, State: &next})
}

func (v *View) willChangeHeight(height float64) {
	for _, o := range v.observers {
		o.WillChangeHeight(height)
	}
	v.publish(Event{Kind: EventWillChangeHeight, Height: height})
}

func (v *View) didChangeHeight(height float64) {
	for _, o := range v.observers {
		o.DidChangeHeight(height)
	}
	v.publish(Event{Kind: EventDidChangeHeight, Height: height})
}

func (v *View) publish(e Event) {
	if v.closed {
		return
	}
	e.Source = v.id
	v.broker.Publish(eventPublished, e)
}

// ID identifies the view in logs and stream events.
func (v *View) ID() string { return v.id }

// Surface returns the wrapped editable surface.
func (v *View) Surface() Surface { return v.surface }

// AddObserver registers an observer for subsequent events.
func (v *View) AddObserver(observer Observer) {
	v.observers = append(v.observers, observer)
}

// Subscribe streams events in emission order until ctx is done or the view is
// closed.
func (v *View) Subscribe(ctx context.Context) <-chan pubsub.Event[Event] {
	return v.broker.Subscribe(ctx)
}

// Close ends all subscriptions.
func (v *View) Close() {
	v.closed = true
	v.broker.Shutdown()
}

// Text returns the plain projection of the content.
func (v *View) Text() string { return v.surface.Text() }

// SetText replaces the content and runs a fit pass.
func (v *View) SetText(text string) { v.surface.SetText(text) }

// AttributedText returns the rich content.
func (v *View) AttributedText() richtext.String { return v.surface.AttributedText() }

// SetAttributedText replaces the rich content and runs a fit pass.
func (v *View) SetAttributedText(text richtext.String) { v.surface.SetAttributedText(text) }

// Font returns the surface font.
func (v *View) Font() richtext.Font { return v.surface.Font() }

// SetFont changes the font, recomputes the bounds and runs a fit pass.
func (v *View) SetFont(font richtext.Font) { v.surface.SetFont(font) }

// Inset returns the text container inset.
func (v *View) Inset() Insets { return v.surface.Inset() }

// SetInset changes the text container inset, recomputes the bounds and runs a
// fit pass.
func (v *View) SetInset(inset Insets) { v.surface.SetInset(inset) }

// Configuration returns the current snapshot.
func (v *View) Configuration() Configuration { return v.resolver.Configuration() }

// SetConfiguration replaces the configuration. Invalid line counts are
// coerced, see Configuration.Normalized. Line count changes recompute the
// bounds; any change runs a fit pass.
func (v *View) SetConfiguration(config Configuration) {
	config = config.Normalized()
	if config == v.resolver.Configuration() {
		return
	}
	if v.resolver.SetConfiguration(config) {
		v.resolver.Resolve()
	}
	v.placeholder.configure(config.PlaceholderHiding, config.PlaceholderLayout)
	v.placeholder.Update(v.state)
	v.engine.Fit(TriggerConfigurationChanged)
}

func (v *View) update(fn func(*Configuration)) {
	config := v.Configuration()
	fn(&config)
	v.SetConfiguration(config)
}

func (v *View) SetMinLines(n int) { v.update(func(c *Configuration) { c.MinLines = n }) }

func (v *View) SetMaxLines(n int) { v.update(func(c *Configuration) { c.MaxLines = n }) }

func (v *View) SetAutoScrollToBottom(enabled bool) {
	v.update(func(c *Configuration) { c.AutoScrollToBottom = enabled })
}

func (v *View) SetFlashScrollIndicators(enabled bool) {
	v.update(func(c *Configuration) { c.FlashScrollIndicators = enabled })
}

func (v *View) SetPlaceholderHidingMode(mode PlaceholderHidingMode) {
	v.update(func(c *Configuration) { c.PlaceholderHiding = mode })
}

func (v *View) SetPlaceholderLayout(layout HorizontalLayout) {
	v.update(func(c *Configuration) { c.PlaceholderLayout = layout })
}

// Placeholder returns the placeholder content.
func (v *View) Placeholder() richtext.String { return v.placeholder.Content() }

// SetPlaceholder replaces the placeholder content.
func (v *View) SetPlaceholder(content richtext.String) { v.placeholder.setContent(content) }

// PlaceholderVisible reports whether the placeholder should be drawn.
func (v *View) PlaceholderVisible() bool { return v.placeholder.Visible() }

// PlaceholderLayout returns the placeholder's horizontal position.
func (v *View) PlaceholderLayout() HorizontalLayout { return v.placeholder.Layout() }

// BecomeFirstResponder focuses the surface.
func (v *View) BecomeFirstResponder() bool { return v.surface.Focus() }

// ResignFirstResponder blurs the surface.
func (v *View) ResignFirstResponder() bool { return v.surface.Blur() }

// IsFirstResponder reports whether the surface has focus.
func (v *View) IsFirstResponder() bool { return v.surface.Focused() }

// InputAccessory returns the surface's input accessory, if it has one.
func (v *View) InputAccessory() any {
	if h, ok := v.surface.(AccessoryHolder); ok {
		return h.InputAccessory()
	}
	return nil
}

// SetInputAccessory passes accessory through to the surface. It is a no-op
// for surfaces without accessory support.
func (v *View) SetInputAccessory(accessory any) {
	if h, ok := v.surface.(AccessoryHolder); ok {
		h.SetInputAccessory(accessory)
	}
}

// Layout tells the view its width. A fit pass runs only when the width
// changed since the previous layout.
func (v *View) Layout(width float64) bool { return v.engine.Layout(width) }

// Frame returns the container frame.
func (v *View) Frame() Rect { return v.engine.frame }

// ContentSize returns the scrollable content size.
func (v *View) ContentSize() Size { return v.engine.contentSize }

// ContentOffset returns the scroll offset.
func (v *View) ContentOffset() Point { return v.engine.contentOffset }

// SetContentOffset scrolls the container within the content.
func (v *View) SetContentOffset(offset Point) { v.engine.SetContentOffset(offset) }

// ScrollToBottom pins the offset to the end of the content.
func (v *View) ScrollToBottom() { v.engine.ScrollToBottom() }

// Scrollable reports whether the content overflows the container.
func (v *View) Scrollable() bool { return v.engine.Scrollable() }

// Bounds returns the resolved min/max heights.
func (v *View) Bounds() ResolvedBounds { return v.resolver.Bounds() }

// State returns the last published interaction state.
func (v *View) State() State { return v.state }

// IntrinsicContentSize returns the size the view would like to be.
func (v *View) IntrinsicContentSize() Size { return v.engine.IntrinsicContentSize() }

package growing

import "github.com/sst/growingtext/pkg/pubsub"

// EventKind names the three notifications a View emits.
type EventKind string

const (
	EventWillChangeHeight EventKind = "willChangeHeight"
	EventDidChangeHeight  EventKind = "didChangeHeight"
	EventDidChangeState   EventKind = "didChangeState"
)

// State is the observable interaction state.
type State struct {
	IsEditing bool   `json:"isEditing" yaml:"isEditing"`
	Text      string `json:"text" yaml:"text"`
}

// Event is the payload published to stream subscribers.
type Event struct {
	Source string    `json:"source" yaml:"source"`
	Kind   EventKind `json:"kind" yaml:"kind"`
	Height float64   `json:"height,omitempty" yaml:"height,omitempty"`
	State  *State    `json:"state,omitempty" yaml:"state,omitempty"`
}

const eventPublished pubsub.EventType = "growing_event"

// Observer receives notifications synchronously, in emission order.
type Observer interface {
	WillChangeHeight(height float64)
	DidChangeHeight(height float64)
	DidChangeState(state State)
}

// Handlers is an Observer built from optional funcs. The editing and change
// hooks mirror the surface actions and fire before the View reacts to them.
type Handlers struct {
	OnWillChangeHeight func(height float64)
	OnDidChangeHeight  func(height float64)
	OnDidChangeState   func(state State)

	OnBeginEditing func()
	OnEndEditing   func()
	OnChange       func(text string)

	// OnShouldChange vetoes a user edit by returning false. It is only
	// consulted on surfaces that implement ChangeFilterer.
	OnShouldChange func(before, after string) bool
}

func (h Handlers) WillChangeHeight(height float64) {
	if h.OnWillChangeHeight != nil {
		h.OnWillChangeHeight(height)
	}
}

func (h Handlers) DidChangeHeight(height float64) {
	if h.OnDidChangeHeight != nil {
		h.OnDidChangeHeight(height)
	}
}

func (h Handlers) DidChangeState(state State) {
	if h.OnDidChangeState != nil {
		h.OnDidChangeState(state)
	}
}

// changeFilter is implemented by observers that can veto user edits.
type changeFilter interface {
	shouldChange(before, after string) bool
}

func (h Handlers) shouldChange(before, after string) bool {
	return h.OnShouldChange == nil || h.OnShouldChange(before, after)
}

// surfaceObserver is implemented by observers that also want raw surface
// actions.
type surfaceObserver interface {
	surfaceAction(action Action, text string)
}

func (h Handlers) surfaceAction(action Action, text string) {
	switch action {
	case ActionBeginEditing:
		if h.OnBeginEditing != nil {
			h.OnBeginEditing()
		}
	case ActionEndEditing:
		if h.OnEndEditing != nil {
			h.OnEndEditing()
		}
	case ActionContentChanged:
		if h.OnChange != nil {
			h.OnChange(text)
		}
	}
}

// Host is the container a View is laid out in.
type Host interface {
	// FlashScrollIndicators briefly shows the scroll indicators.
	FlashScrollIndicators()
	// InvalidateIntrinsicContentSize asks the parent layout to re-measure the
	// view.
	InvalidateIntrinsicContentSize()
	// RepositionOverlay moves any overlay anchored to the caret (edit menu,
	// completion popup) after the view changed size.
	RepositionOverlay()
}

type nopHost struct{}

func (nopHost) FlashScrollIndicators()          {}
func (nopHost) InvalidateIntrinsicContentSize() {}
func (nopHost) RepositionOverlay()              {}

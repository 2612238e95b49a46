package growing

import "github.com/sst/growingtext/pkg/richtext"

// PlaceholderVisible is the pure visibility rule.
func PlaceholderVisible(mode PlaceholderHidingMode, isEditing bool, text string) bool {
	if mode == HideOnFocus {
		return !isEditing
	}
	return text == ""
}

// PlaceholderPresenter derives placeholder visibility from interaction state.
// Toggling visibility is render state only; it never starts a fit pass.
type PlaceholderPresenter struct {
	content richtext.String
	mode    PlaceholderHidingMode
	layout  HorizontalLayout
	visible bool
}

// NewPlaceholderPresenter starts visible, matching an empty, unfocused view.
func NewPlaceholderPresenter(mode PlaceholderHidingMode, layout HorizontalLayout) *PlaceholderPresenter {
	return &PlaceholderPresenter{mode: mode, layout: layout, visible: true}
}

// Update recomputes visibility and reports whether it changed.
func (p *PlaceholderPresenter) Update(state State) bool {
	visible := PlaceholderVisible(p.mode, state.IsEditing, state.Text)
	if visible == p.visible {
		return false
	}
	p.visible = visible
	return true
}

func (p *PlaceholderPresenter) Visible() bool               { return p.visible }
func (p *PlaceholderPresenter) Content() richtext.String    { return p.content }
func (p *PlaceholderPresenter) Layout() HorizontalLayout    { return p.layout }
func (p *PlaceholderPresenter) Mode() PlaceholderHidingMode { return p.mode }

func (p *PlaceholderPresenter) setContent(content richtext.String) { p.content = content }

func (p *PlaceholderPresenter) configure(mode PlaceholderHidingMode, layout HorizontalLayout) {
	p.mode = mode
	p.layout = layout
}

// Package growinput is a bubbletea component that shows a growing.View over
// the textarea surface: the box grows with its content up to the configured
// line count and scrolls past it.
package growinput

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/sst/growingtext/internal/components/textarea"
	"github.com/sst/growingtext/internal/tui/styles"
	"github.com/sst/growingtext/internal/tui/theme"
	"github.com/sst/growingtext/internal/tui/util"
	"github.com/sst/growingtext/pkg/growing"
	"github.com/sst/growingtext/pkg/richtext"
)

// SubmitMsg carries the text the user sent. The input is cleared.
type SubmitMsg struct {
	Text string
}

// LayoutMsg asks the parent to lay the input out again after its height
// changed.
type LayoutMsg struct {
	ID     string
	Height int
}

// ErrorMsg reports a failure the user should see, such as an unreadable
// clipboard.
type ErrorMsg struct {
	Err error
}

type flashEndMsg struct {
	id int
}

const flashDuration = 800 * time.Millisecond

type KeyMap struct {
	Submit  key.Binding
	Newline key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("ctrl+j", "alt+enter"),
			key.WithHelp("ctrl+j", "newline"),
		),
	}
}

type options struct {
	config      growing.Configuration
	placeholder string
	zones       *zone.Manager
	observer    growing.Observer
	logger      *slog.Logger
	inset       growing.Insets
}

type Option func(*options)

func WithConfiguration(config growing.Configuration) Option {
	return func(o *options) { o.config = config }
}

func WithPlaceholder(placeholder string) Option {
	return func(o *options) { o.placeholder = placeholder }
}

// WithZones enables click to focus and wheel scrolling through a bubblezone
// manager. The outermost model must Scan its view with the same manager.
func WithZones(zones *zone.Manager) Option {
	return func(o *options) { o.zones = zones }
}

func WithObserver(observer growing.Observer) Option {
	return func(o *options) { o.observer = observer }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithInset(inset growing.Insets) Option {
	return func(o *options) { o.inset = inset }
}

// Model implements tea.Model and growing.Host. Use it through a pointer.
type Model struct {
	textarea *textarea.Model
	view     *growing.View
	keys     KeyMap
	zones    *zone.Manager
	zoneID   string
	logger   *slog.Logger

	flashing   bool
	flashSeq   int
	flashFor   time.Duration
	overlayRow int

	// Host callbacks arrive mid fit pass; drain turns them into commands.
	flashRequested      bool
	invalidated         bool
	repositionRequested bool
}

var (
	_ tea.Model    = (*Model)(nil)
	_ growing.Host = (*Model)(nil)
)

func New(opts ...Option) *Model {
	o := options{
		config: growing.DefaultConfiguration(),
		logger: slog.Default(),
		inset:  growing.Insets{Left: 1, Right: 1},
	}
	for _, opt := range opts {
		opt(&o)
	}

	ta := textarea.New()
	ta.Prompt = styles.PromptIcon + " "
	ta.Styles = themedStyles(theme.CurrentTheme())
	ta.SetInset(o.inset)

	m := &Model{
		textarea: ta,
		keys:     DefaultKeyMap(),
		zones:    o.zones,
		logger:   o.logger,
		flashFor: flashDuration,
	}
	ta.KeyMap.InsertNewline = m.keys.Newline

	gopts := []growing.Option{
		growing.WithConfiguration(o.config),
		growing.WithHost(m),
		growing.WithLogger(o.logger),
	}
	if o.observer != nil {
		gopts = append(gopts, growing.WithObserver(o.observer))
	}
	m.view = growing.New(ta, gopts...)
	m.view.SetPlaceholder(richtext.Plain(o.placeholder))
	m.zoneID = "growinput-" + m.view.ID()

	m.flashRequested, m.invalidated, m.repositionRequested = false, false, false
	return m
}

// FlashScrollIndicators shows the scroll indicator for a moment.
func (m *Model) FlashScrollIndicators() { m.flashRequested = true }

// InvalidateIntrinsicContentSize schedules a LayoutMsg for the parent.
func (m *Model) InvalidateIntrinsicContentSize() { m.invalidated = true }

// RepositionOverlay re-anchors the counter badge to the caret.
func (m *Model) RepositionOverlay() { m.repositionRequested = true }

func (m *Model) drain() tea.Cmd {
	var cmds []tea.Cmd
	if m.repositionRequested {
		m.repositionRequested = false
		m.overlayRow = m.caretViewportRow()
	}
	if m.flashRequested {
		m.flashRequested = false
		m.flashSeq++
		m.flashing = true
		id := m.flashSeq
		cmds = append(cmds, tea.Tick(m.flashFor, func(time.Time) tea.Msg {
			return flashEndMsg{id: id}
		}))
	}
	if m.invalidated {
		m.invalidated = false
		cmds = append(cmds, util.CmdHandler(LayoutMsg{ID: m.view.ID(), Height: m.Height()}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Init() tea.Cmd {
	if m.view.IsFirstResponder() {
		return textarea.Blink
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case flashEndMsg:
		if msg.id == m.flashSeq {
			m.flashing = false
		}
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if !m.view.IsFirstResponder() {
			return m, nil
		}
		if key.Matches(msg, m.keys.Submit) {
			return m, m.submit()
		}
	}

	cmds := []tea.Cmd{m.textarea.Update(msg)}
	if err := m.textarea.Err; err != nil {
		m.textarea.Err = nil
		m.logger.Warn("paste failed", "view", m.view.ID(), "error", err)
		cmds = append(cmds, util.CmdHandler(ErrorMsg{Err: fmt.Errorf("paste: %w", err)}))
	}
	m.keepCaretVisible()
	cmds = append(cmds, m.drain())
	return m, tea.Batch(cmds...)
}

func (m *Model) submit() tea.Cmd {
	value := strings.TrimSpace(m.view.Text())
	if value == "" {
		return nil
	}
	if strings.HasSuffix(value, "\\") {
		// A trailing backslash continues the message on a new line.
		m.view.SetText(strings.TrimSuffix(value, "\\") + "\n")
		m.keepCaretVisible()
		return m.drain()
	}
	m.view.SetText("")
	return tea.Batch(util.CmdHandler(SubmitMsg{Text: value}), m.drain())
}

// InBounds reports whether a mouse event landed on the input. It is always
// false without a zone manager.
func (m *Model) InBounds(msg tea.MouseMsg) bool {
	return m.zones != nil && m.zones.Get(m.zoneID).InBounds(msg)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.InBounds(msg) {
		return nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll(1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		return m.Focus()
	}
	return m.drain()
}

func (m *Model) scroll(delta int) {
	offset := m.view.ContentOffset()
	offset.Y += float64(delta * m.textarea.LineRows())
	m.view.SetContentOffset(offset)
}

// keepCaretVisible scrolls the least amount that shows the caret line.
func (m *Model) keepCaretVisible() {
	if !m.view.IsFirstResponder() || !m.view.Scrollable() {
		return
	}
	height := m.frameHeight()
	top := int(m.view.ContentOffset().Y)
	caret := m.textarea.CaretRow()
	rows := m.textarea.LineRows()
	switch {
	case caret < top:
		m.view.SetContentOffset(growing.Point{Y: float64(caret)})
	case caret+rows > top+height:
		m.view.SetContentOffset(growing.Point{Y: float64(caret + rows - height)})
	}
}

func (m *Model) caretViewportRow() int {
	row := m.textarea.CaretRow() - int(m.view.ContentOffset().Y)
	return util.Clamp(row, 0, max(m.frameHeight()-1, 0))
}

func (m *Model) frameHeight() int {
	return int(math.Ceil(m.view.Frame().Height()))
}

// ID identifies the underlying growing.View.
func (m *Model) ID() string { return m.view.ID() }

// Growing exposes the underlying view for configuration and inspection.
func (m *Model) Growing() *growing.View { return m.view }

// Textarea exposes the editing surface.
func (m *Model) Textarea() *textarea.Model { return m.textarea }

func (m *Model) KeyMap() KeyMap { return m.keys }

// Height is the number of rows View renders.
func (m *Model) Height() int {
	h := m.frameHeight()
	if m.accessoryLine() != "" {
		h++
	}
	return h
}

// SetWidth lays the input out at width cells.
func (m *Model) SetWidth(width int) tea.Cmd {
	m.view.Layout(float64(width))
	return m.drain()
}

func (m *Model) Focus() tea.Cmd {
	m.toggleFocus(m.view.BecomeFirstResponder)
	return tea.Batch(textarea.Blink, m.drain())
}

func (m *Model) Blur() tea.Cmd {
	m.toggleFocus(m.view.ResignFirstResponder)
	return m.drain()
}

// toggleFocus runs fn and asks for a relayout when the accessory line
// appeared or went away.
func (m *Model) toggleFocus(fn func() bool) {
	before := m.Height()
	fn()
	if m.Height() != before {
		m.invalidated = true
	}
}

func (m *Model) Focused() bool { return m.view.IsFirstResponder() }

func (m *Model) Value() string { return m.view.Text() }

func (m *Model) SetValue(value string) tea.Cmd {
	m.view.SetText(value)
	m.keepCaretVisible()
	return m.drain()
}

func (m *Model) SetConfiguration(config growing.Configuration) tea.Cmd {
	m.view.SetConfiguration(config)
	return m.drain()
}

func (m *Model) SetPlaceholder(placeholder string) {
	m.view.SetPlaceholder(richtext.Plain(placeholder))
}

// SetCharLimit caps the text length; the input then shows a counter badge.
func (m *Model) SetCharLimit(limit int) { m.textarea.CharLimit = limit }

// SetInputAccessory shows accessory above the input while it is focused.
// Strings and fmt.Stringers render; anything else is kept but not drawn.
func (m *Model) SetInputAccessory(accessory any) tea.Cmd {
	m.view.SetInputAccessory(accessory)
	return util.CmdHandler(LayoutMsg{ID: m.view.ID(), Height: m.Height()})
}

// Restyle picks up the current theme.
func (m *Model) Restyle() {
	m.textarea.Styles = themedStyles(theme.CurrentTheme())
}

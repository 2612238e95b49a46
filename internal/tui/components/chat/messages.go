package chat

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/sst/growingtext/internal/tui/styles"
	"github.com/sst/growingtext/internal/tui/theme"
	"github.com/sst/growingtext/internal/tui/util"
)

// Entry is one submitted message.
type Entry struct {
	ID   string
	Text string
	Time time.Time
}

type cacheItem struct {
	width   int
	content string
}

type MessagesCmp interface {
	tea.Model
	SetSize(width, height int) tea.Cmd
	GetSize() (int, int)
	BindingKeys() []key.Binding
	Append(text string) tea.Cmd
	// Load puts earlier entries ahead of the current ones.
	Load(entries []Entry) tea.Cmd
	Entries() []Entry
}

type messagesCmp struct {
	width, height int
	viewport      viewport.Model
	entries       []Entry
	cachedContent map[string]cacheItem
}

type MessageKeys struct {
	PageDown key.Binding
	PageUp   key.Binding
}

var messageKeys = MessageKeys{
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
}

func (m *messagesCmp) Init() tea.Cmd {
	return m.viewport.Init()
}

func (m *messagesCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case util.ThemeChangedMsg:
		m.rerender()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, messageKeys.PageUp) || key.Matches(msg, messageKeys.PageDown) {
			u, cmd := m.viewport.Update(msg)
			m.viewport = u
			return m, cmd
		}
	case tea.MouseMsg:
		u, cmd := m.viewport.Update(msg)
		m.viewport = u
		return m, cmd
	}
	return m, nil
}

// Append adds text to the transcript and scrolls to it.
func (m *messagesCmp) Append(text string) tea.Cmd {
	m.entries = append(m.entries, Entry{
		ID:   uuid.NewString(),
		Text: text,
		Time: time.Now(),
	})
	m.renderView()
	m.viewport.GotoBottom()
	return nil
}

func (m *messagesCmp) Load(entries []Entry) tea.Cmd {
	if len(entries) == 0 {
		return nil
	}
	m.entries = append(slices.Clone(entries), m.entries...)
	m.renderView()
	m.viewport.GotoBottom()
	return nil
}

func (m *messagesCmp) Entries() []Entry {
	return m.entries
}

func (m *messagesCmp) renderEntry(e Entry) string {
	t := theme.CurrentTheme()
	header := lipgloss.NewStyle().
		Foreground(t.Primary()).
		Bold(true).
		Render(styles.PromptIcon+" you") +
		styles.Muted().Render(" "+e.Time.Local().Format(time.Kitchen))

	body := e.Text
	r, err := styles.MarkdownRenderer(max(1, m.width-2))
	if err == nil {
		body, err = r.Render(e.Text)
	}
	if err != nil {
		slog.Warn("markdown render failed", "id", e.ID, "error", err)
		body = lipgloss.NewStyle().Width(max(1, m.width-2)).Render(e.Text)
	}
	body = trimBlankLines(body)

	// The border sits outside Width.
	return lipgloss.NewStyle().
		Width(m.width - 1).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(t.Border()).
		PaddingLeft(1).
		Render(header + "\n" + body)
}

// trimBlankLines drops the padding rows glamour puts around a document.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	blank := func(line string) bool { return strings.TrimSpace(ansi.Strip(line)) == "" }
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func (m *messagesCmp) renderView() {
	if m.width == 0 {
		return
	}
	defer util.Measure("chat.renderView")("entries", len(m.entries))

	blocks := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if cache, ok := m.cachedContent[e.ID]; ok && cache.width == m.width {
			blocks = append(blocks, cache.content)
			continue
		}
		content := m.renderEntry(e)
		m.cachedContent[e.ID] = cacheItem{width: m.width, content: content}
		blocks = append(blocks, content)
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

func (m *messagesCmp) View() string {
	if len(m.entries) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Render(m.initialScreen())
	}
	return m.viewport.View()
}

func (m *messagesCmp) initialScreen() string {
	t := theme.CurrentTheme()
	title := lipgloss.NewStyle().Foreground(t.Primary()).Bold(true).Render("growtext")
	hint := styles.Muted().Render("enter sends · ctrl+j inserts a newline · the input grows with its text")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", hint)
}

func (m *messagesCmp) rerender() {
	clear(m.cachedContent)
	m.renderView()
}

func (m *messagesCmp) SetSize(width, height int) tea.Cmd {
	if m.width == width && m.height == height {
		return nil
	}
	atBottom := m.viewport.AtBottom()
	m.height = height
	m.viewport.Height = height
	if m.width != width {
		m.width = width
		m.viewport.Width = width
		m.rerender()
	}
	if atBottom {
		m.viewport.GotoBottom()
	}
	return nil
}

func (m *messagesCmp) GetSize() (int, int) {
	return m.width, m.height
}

func (m *messagesCmp) BindingKeys() []key.Binding {
	return []key.Binding{messageKeys.PageUp, messageKeys.PageDown}
}

func NewMessagesCmp() MessagesCmp {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.KeyMap.PageUp = messageKeys.PageUp
	vp.KeyMap.PageDown = messageKeys.PageDown
	return &messagesCmp{
		viewport:      vp,
		cachedContent: make(map[string]cacheItem),
	}
}

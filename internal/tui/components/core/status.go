package core

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/sst/growingtext/internal/status"
	"github.com/sst/growingtext/internal/tui/styles"
	"github.com/sst/growingtext/internal/tui/theme"
	"github.com/sst/growingtext/pkg/growing"
	"github.com/sst/growingtext/pkg/pubsub"
)

type StatusCmp interface {
	tea.Model
	SetHelpWidgetMsg(string)
}

type statusCmp struct {
	statusMessages []statusMessage
	width          int
	messageTTL     time.Duration
	helpText       string

	height  float64
	editing bool
	lines   int
}

type statusMessage struct {
	Level     status.Level
	Message   string
	Timestamp time.Time
	// Zero for messages that stay until replaced.
	ExpiresAt time.Time
}

// clearMessageCmd ticks the expiry check.
func (m statusCmp) clearMessageCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statusCleanupMsg{time: t}
	})
}

type statusCleanupMsg struct {
	time time.Time
}

func (m *statusCmp) Init() tea.Cmd {
	return m.clearMessageCmd()
}

func (m *statusCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case pubsub.Event[status.StatusMessage]:
		if msg.Type == pubsub.EventTypeCreated {
			m.push(msg.Payload)
		}
	case pubsub.Event[growing.Event]:
		switch msg.Payload.Kind {
		case growing.EventDidChangeHeight:
			m.height = msg.Payload.Height
		case growing.EventDidChangeState:
			if s := msg.Payload.State; s != nil {
				m.editing = s.IsEditing
				m.lines = countLines(s.Text)
			}
		}
	case statusCleanupMsg:
		var active []statusMessage
		for _, sm := range m.statusMessages {
			if sm.ExpiresAt.IsZero() || sm.ExpiresAt.After(msg.time) {
				active = append(active, sm)
			}
		}
		m.statusMessages = active
		return m, m.clearMessageCmd()
	}
	return m, nil
}

// push replaces any sticky message, then queues sm.
func (m *statusCmp) push(sm status.StatusMessage) {
	var kept []statusMessage
	for _, existing := range m.statusMessages {
		if !existing.ExpiresAt.IsZero() {
			kept = append(kept, existing)
		}
	}
	entry := statusMessage{
		Level:     sm.Level,
		Message:   sm.Message,
		Timestamp: sm.Timestamp,
	}
	if !sm.Critical {
		ttl := sm.Duration
		if ttl <= 0 {
			ttl = m.messageTTL
		}
		entry.ExpiresAt = sm.Timestamp.Add(ttl)
	}
	m.statusMessages = append(kept, entry)
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}

func (m *statusCmp) helpWidget() string {
	t := theme.CurrentTheme()
	text := m.helpText
	if text == "" {
		text = "ctrl+? help"
	}
	return styles.Padded().
		Background(t.TextMuted()).
		Foreground(t.BackgroundPanel()).
		Bold(true).
		Render(text)
}

func (m *statusCmp) metrics() string {
	t := theme.CurrentTheme()
	mode := "idle"
	if m.editing {
		mode = "editing"
	}
	return styles.Padded().
		Background(t.BackgroundElement()).
		Foreground(t.Text()).
		Render(fmt.Sprintf("%s %d lines  h%g", mode, m.lines, m.height))
}

func (m *statusCmp) themeName() string {
	t := theme.CurrentTheme()
	return styles.Padded().
		Background(t.Secondary()).
		Foreground(t.Background()).
		Render(theme.CurrentThemeName())
}

func (m *statusCmp) View() string {
	t := theme.CurrentTheme()
	help := m.helpWidget()
	metrics := m.metrics()
	name := m.themeName()

	statusWidth := max(0, m.width-lipgloss.Width(help)-lipgloss.Width(metrics)-lipgloss.Width(name))

	line := help
	if len(m.statusMessages) > 0 {
		sm := m.statusMessages[len(m.statusMessages)-1]
		infoStyle := styles.Padded().
			Foreground(t.Background()).
			Width(statusWidth)

		icon := styles.InfoIcon
		switch sm.Level {
		case status.LevelInfo:
			infoStyle = infoStyle.Background(t.Info())
		case status.LevelWarn:
			infoStyle = infoStyle.Background(t.Warning())
			icon = styles.WarningIcon
		case status.LevelError:
			infoStyle = infoStyle.Background(t.Error())
			icon = styles.ErrorIcon
		case status.LevelDebug:
			infoStyle = infoStyle.Background(t.TextMuted())
			icon = styles.DebugIcon
		}

		msg := icon + " " + sm.Message
		if avail := statusWidth - infoStyle.GetHorizontalPadding(); avail > 0 {
			msg = truncate.StringWithTail(msg, uint(avail), "…")
		}
		line += infoStyle.Render(msg)
	} else {
		line += styles.Padded().
			Background(t.BackgroundPanel()).
			Width(statusWidth).
			Render("")
	}

	line += metrics
	line += name
	return line
}

func (m *statusCmp) SetHelpWidgetMsg(s string) {
	m.helpText = s
}

func NewStatusCmp() StatusCmp {
	return &statusCmp{
		messageTTL: 4 * time.Second,
	}
}

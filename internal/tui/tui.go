package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/sst/growingtext/internal/components/growinput"
	"github.com/sst/growingtext/internal/config"
	"github.com/sst/growingtext/internal/history"
	"github.com/sst/growingtext/internal/logging"
	"github.com/sst/growingtext/internal/status"
	"github.com/sst/growingtext/internal/tui/components/chat"
	"github.com/sst/growingtext/internal/tui/components/core"
	"github.com/sst/growingtext/internal/tui/components/logs"
	"github.com/sst/growingtext/internal/tui/styles"
	"github.com/sst/growingtext/internal/tui/theme"
	"github.com/sst/growingtext/internal/tui/util"
	"github.com/sst/growingtext/pkg/growing"
	"github.com/sst/growingtext/pkg/pubsub"
)

type keyMap struct {
	Logs        key.Binding
	Quit        key.Binding
	Help        key.Binding
	SwitchTheme key.Binding
	Focus       key.Binding
	Blur        key.Binding
	Previous    key.Binding
	Next        key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	input := growinput.DefaultKeyMap()
	return [][]key.Binding{
		{input.Submit, input.Newline, k.Previous, k.Next},
		{k.Focus, k.Blur},
		{k.Logs, k.SwitchTheme, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Logs: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+_"),
		key.WithHelp("ctrl+?", "toggle help"),
	),
	SwitchTheme: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "switch theme"),
	),
	Focus: key.NewBinding(
		key.WithKeys("i", "tab"),
		key.WithHelp("i/tab", "focus input"),
	),
	Blur: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "blur input"),
	),
	Previous: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "previous message"),
	),
	Next: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "next message"),
	),
}

var logsKeyReturnKey = key.NewBinding(
	key.WithKeys("esc", "backspace", "q"),
	key.WithHelp("esc/q", "go back"),
)

// Options wires the screen to the services cmd sets up. Every field is
// optional.
type Options struct {
	Config  *config.Config
	Logs    logging.Service
	History history.Service
	Zones   *zone.Manager
	Logger  *slog.Logger
}

type historyLoadedMsg struct {
	entries []history.Entry
}

type historyErrMsg struct {
	err error
}

type appModel struct {
	width, height int

	messages chat.MessagesCmp
	input    *growinput.Model
	status   core.StatusCmp
	logs     logs.TableComponent
	help     help.Model
	history  history.Service
	limit    int
	recall   *recall
	zones    *zone.Manager
	logger   *slog.Logger

	showLogs bool
	showHelp bool

	viewEvents <-chan pubsub.Event[growing.Event]
	cancel     context.CancelFunc
}

// New builds the chat screen: a transcript above a growing input and a
// status line.
func New(opts Options) tea.Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := growinput.New(
		growinput.WithConfiguration(cfg.Growing()),
		growinput.WithPlaceholder(cfg.View.Placeholder),
		growinput.WithZones(opts.Zones),
		growinput.WithLogger(logger),
	)
	input.SetInputAccessory(styles.Muted().Render("enter send · ctrl+j newline · esc blur"))

	ctx, cancel := context.WithCancel(context.Background())
	statusCmp := core.NewStatusCmp()
	statusCmp.SetHelpWidgetMsg("ctrl+? help")

	return appModel{
		messages:   chat.NewMessagesCmp(),
		input:      input,
		status:     statusCmp,
		logs:       logs.NewLogsTable(opts.Logs),
		help:       help.New(),
		history:    opts.History,
		limit:      cfg.History.Limit,
		recall:     newRecall(),
		zones:      opts.Zones,
		logger:     logger,
		viewEvents: input.Growing().Subscribe(ctx),
		cancel:     cancel,
	}
}

// listen delivers the next event on ch as a message.
func listen[T any](ch <-chan pubsub.Event[T]) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return e
	}
}

func (a appModel) Init() tea.Cmd {
	return tea.Batch(
		a.messages.Init(),
		a.status.Init(),
		a.logs.Init(),
		a.input.Focus(),
		listen(a.viewEvents),
		a.loadHistory(),
	)
}

func (a appModel) loadHistory() tea.Cmd {
	if a.history == nil {
		return nil
	}
	svc, limit := a.history, a.limit
	return func() tea.Msg {
		entries, err := svc.List(context.Background(), limit)
		if err != nil {
			return historyErrMsg{err: err}
		}
		return historyLoadedMsg{entries: entries}
	}
}

func (a appModel) saveHistory(text string) tea.Cmd {
	if a.history == nil {
		return nil
	}
	svc := a.history
	return func() tea.Msg {
		if _, err := svc.Add(context.Background(), text); err != nil {
			return historyErrMsg{err: err}
		}
		return nil
	}
}

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		s, _ := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		cmds = append(cmds, a.input.SetWidth(msg.Width), a.logs.SetSize(msg.Width, max(0, msg.Height-2)))
		a.layout()
		return a, tea.Batch(cmds...)

	case growinput.LayoutMsg:
		a.layout()
		return a, nil

	case growinput.SubmitMsg:
		cmds = append(cmds, a.messages.Append(msg.Text), a.saveHistory(msg.Text))
		a.recall.push(msg.Text)
		a.layout()
		return a, tea.Batch(cmds...)

	case historyLoadedMsg:
		entries := make([]chat.Entry, len(msg.entries))
		past := make([]string, len(msg.entries))
		for i, e := range msg.entries {
			entries[i] = chat.Entry{ID: e.ID, Text: e.Text, Time: e.CreatedAt}
			past[i] = e.Text
		}
		a.recall.load(past)
		cmd := a.messages.Load(entries)
		a.layout()
		return a, cmd

	case historyErrMsg:
		a.logger.Debug("history unavailable", "error", msg.err)
		a.report(status.LevelWarn, "history: "+msg.err.Error())
		return a, nil

	case growinput.ErrorMsg:
		a.report(status.LevelError, msg.Err.Error())
		return a, nil

	case pubsub.Event[growing.Event]:
		s, _ := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		return a, listen(a.viewEvents)

	case pubsub.Event[status.StatusMessage]:
		s, cmd := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		return a, cmd

	case pubsub.Event[logging.Log]:
		l, cmd := a.logs.Update(msg)
		a.logs = l.(logs.TableComponent)
		if lvl := strings.ToLower(msg.Payload.Level); lvl == "warn" || lvl == "error" {
			a.report(status.LevelWarn, msg.Payload.Message)
		}
		return a, cmd

	case tea.MouseMsg:
		if a.showLogs {
			return a, nil
		}
		if a.input.InBounds(msg) {
			_, cmd := a.input.Update(msg)
			return a, cmd
		}
		m, cmd := a.messages.Update(msg)
		a.messages = m.(chat.MessagesCmp)
		return a, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			a.cancel()
			a.input.Growing().Close()
			return a, tea.Quit
		case key.Matches(msg, keys.Logs):
			return a, a.toggleLogs()
		case key.Matches(msg, keys.SwitchTheme):
			return a, a.switchTheme()
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.layout()
			return a, nil
		}

		if a.showLogs {
			if key.Matches(msg, logsKeyReturnKey) {
				return a, a.toggleLogs()
			}
			l, cmd := a.logs.Update(msg)
			a.logs = l.(logs.TableComponent)
			return a, cmd
		}

		if !a.input.Focused() {
			if key.Matches(msg, keys.Focus) {
				return a, a.input.Focus()
			}
			m, cmd := a.messages.Update(msg)
			a.messages = m.(chat.MessagesCmp)
			return a, cmd
		}
		switch {
		case key.Matches(msg, keys.Blur):
			return a, a.input.Blur()
		case key.Matches(msg, keys.Previous):
			if text, ok := a.recall.prev(a.input.Value()); ok {
				return a, a.input.SetValue(text)
			}
			return a, nil
		case key.Matches(msg, keys.Next):
			if text, ok := a.recall.next(); ok {
				return a, a.input.SetValue(text)
			}
			return a, nil
		}
		m, cmd := a.messages.Update(msg)
		a.messages = m.(chat.MessagesCmp)
		cmds = append(cmds, cmd)
	}

	s, cmd := a.status.Update(msg)
	a.status = s.(core.StatusCmp)
	cmds = append(cmds, cmd)

	_, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// layout gives the transcript whatever the input, help and status line
// leave over.
func (a *appModel) layout() {
	h := a.height - a.input.Height() - 1
	if a.showHelp {
		h -= lipgloss.Height(a.helpView())
	}
	a.messages.SetSize(a.width, max(0, h))
}

func (a *appModel) toggleLogs() tea.Cmd {
	a.showLogs = !a.showLogs
	if a.showLogs {
		a.logs.Focus()
		a.status.SetHelpWidgetMsg("esc back")
		return a.input.Blur()
	}
	a.logs.Blur()
	a.status.SetHelpWidgetMsg("ctrl+? help")
	return a.input.Focus()
}

func (a *appModel) switchTheme() tea.Cmd {
	name := theme.NextTheme()
	if err := theme.SetTheme(name); err != nil {
		a.report(status.LevelError, err.Error())
		return nil
	}
	if err := config.UpdateTheme(name); err != nil {
		a.logger.Debug("theme not saved", "theme", name, "error", err)
		a.report(status.LevelWarn, fmt.Sprintf("theme %s not saved: %v", name, err))
	} else {
		a.report(status.LevelInfo, "theme "+name)
	}
	a.input.Restyle()
	m, cmd := a.messages.Update(util.ThemeChangedMsg{Name: name})
	a.messages = m.(chat.MessagesCmp)
	return cmd
}

// report shows a message on the status line directly, without a round trip
// through the status service.
func (a *appModel) report(level status.Level, message string) {
	now := time.Now()
	s, _ := a.status.Update(pubsub.Event[status.StatusMessage]{
		Type: pubsub.EventTypeCreated,
		Payload: status.StatusMessage{
			Level:     level,
			Message:   message,
			Timestamp: now,
			Critical:  level == status.LevelError,
		},
	})
	a.status = s.(core.StatusCmp)
}

func (a appModel) helpView() string {
	return a.help.FullHelpView(keys.FullHelp())
}

func (a appModel) View() string {
	var main string
	if a.showLogs {
		main = lipgloss.NewStyle().
			Width(a.width).
			Height(max(0, a.height-1)).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					styles.Bold().Render("Logs"),
					a.logs.View(),
				),
			)
	} else {
		parts := []string{a.messages.View()}
		if a.showHelp {
			parts = append(parts, a.helpView())
		}
		parts = append(parts, a.input.View())
		main = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	out := lipgloss.JoinVertical(lipgloss.Left, main, a.status.View())
	if a.zones != nil {
		return a.zones.Scan(out)
	}
	return out
}

package logs

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sst/growingtext/internal/logging"
	"github.com/sst/growingtext/internal/tui/theme"
	"github.com/sst/growingtext/pkg/pubsub"
)

const logLimit = 100

type TableComponent interface {
	tea.Model
	SetSize(width, height int) tea.Cmd
	GetSize() (int, int)
	BindingKeys() []key.Binding
	Focus()
	Blur()
}

type tableCmp struct {
	table   table.Model
	focused bool
	logs    []logging.Log
	service logging.Service
}

type logsLoadedMsg struct {
	logs []logging.Log
}

func (i *tableCmp) Init() tea.Cmd {
	return i.fetchLogs()
}

func (i *tableCmp) fetchLogs() tea.Cmd {
	service := i.service
	return func() tea.Msg {
		if service == nil {
			return nil
		}
		logs, err := service.ListAll(context.Background(), logLimit)
		if err != nil {
			return nil
		}
		return logsLoadedMsg{logs: logs}
	}
}

func (i *tableCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logsLoadedMsg:
		// Newest first.
		i.logs = slices.Clone(msg.logs)
		slices.Reverse(i.logs)
		i.updateRows()
		return i, nil

	case pubsub.Event[logging.Log]:
		if msg.Type == logging.EventLogCreated {
			i.logs = append([]logging.Log{msg.Payload}, i.logs...)
			if len(i.logs) > logLimit {
				i.logs = i.logs[:logLimit]
			}
			i.updateRows()
		}
		return i, nil
	}

	if _, ok := msg.(tea.KeyMsg); ok && !i.focused {
		return i, nil
	}

	t, cmd := i.table.Update(msg)
	i.table = t
	return i, cmd
}

func (i *tableCmp) View() string {
	t := theme.CurrentTheme()
	defaultStyles := table.DefaultStyles()
	defaultStyles.Header = defaultStyles.Header.Foreground(t.TextMuted())
	defaultStyles.Selected = defaultStyles.Selected.Foreground(t.Primary())
	i.table.SetStyles(defaultStyles)
	return i.table.View()
}

func (i *tableCmp) GetSize() (int, int) {
	return i.table.Width(), i.table.Height()
}

func (i *tableCmp) SetSize(width int, height int) tea.Cmd {
	i.table.SetWidth(width)
	i.table.SetHeight(height)
	columns := i.table.Columns()

	timeWidth := 8
	levelWidth := 5
	// 8 for cell padding.
	rest := max(0, width-timeWidth-levelWidth-8)
	messageWidth := rest * 3 / 5

	columns[0].Width = 0 // ID column (hidden)
	columns[1].Width = timeWidth
	columns[2].Width = levelWidth
	columns[3].Width = messageWidth
	columns[4].Width = rest - messageWidth

	i.table.SetColumns(columns)
	return nil
}

func (i *tableCmp) BindingKeys() []key.Binding {
	km := i.table.KeyMap
	return []key.Binding{km.LineUp, km.LineDown, km.PageUp, km.PageDown, km.GotoTop, km.GotoBottom}
}

func (i *tableCmp) updateRows() {
	rows := make([]table.Row, 0, len(i.logs))
	for _, log := range i.logs {
		rows = append(rows, table.Row{
			log.ID,
			log.Timestamp.Local().Format("15:04:05"),
			log.Level,
			log.Message,
			formatAttributes(log.Attributes),
		})
	}
	i.table.SetRows(rows)
}

func formatAttributes(attrs map[string]string) string {
	keys := slices.Sorted(maps.Keys(attrs))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+attrs[k])
	}
	return strings.Join(parts, " ")
}

// NewLogsTable lists the newest records of service, newest first, and
// follows the feed for new ones.
func NewLogsTable(service logging.Service) TableComponent {
	columns := []table.Column{
		{Title: "ID", Width: 0},
		{Title: "Time", Width: 8},
		{Title: "Level", Width: 5},
		{Title: "Message", Width: 30},
		{Title: "Fields", Width: 20},
	}

	return &tableCmp{
		table:   table.New(table.WithColumns(columns)),
		service: service,
	}
}

func (i *tableCmp) Focus() {
	i.focused = true
	i.table.Focus()
}

func (i *tableCmp) Blur() {
	i.focused = false
	i.table.Blur()
}

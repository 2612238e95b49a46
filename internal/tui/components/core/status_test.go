package core

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/growingtext/internal/status"
	"github.com/sst/growingtext/pkg/growing"
	"github.com/sst/growingtext/pkg/pubsub"
)

func newTestStatus(t *testing.T) *statusCmp {
	t.Helper()
	s, ok := NewStatusCmp().(*statusCmp)
	require.True(t, ok)
	s.Update(tea.WindowSizeMsg{Width: 120, Height: 10})
	return s
}

func statusEvent(level status.Level, message string, at time.Time) pubsub.Event[status.StatusMessage] {
	return pubsub.Event[status.StatusMessage]{
		Type: pubsub.EventTypeCreated,
		Payload: status.StatusMessage{
			Level:     level,
			Message:   message,
			Timestamp: at,
			Critical:  level == status.LevelError,
			Duration:  3 * time.Second,
		},
	}
}

func TestStatus_MessagesExpire(t *testing.T) {
	t.Parallel()

	s := newTestStatus(t)
	now := time.Now()
	s.Update(statusEvent(status.LevelInfo, "saved", now))
	assert.Contains(t, ansi.Strip(s.View()), "saved")

	s.Update(statusCleanupMsg{time: now.Add(time.Second)})
	assert.Contains(t, ansi.Strip(s.View()), "saved")

	s.Update(statusCleanupMsg{time: now.Add(4 * time.Second)})
	assert.NotContains(t, ansi.Strip(s.View()), "saved")
}

func TestStatus_ErrorsStayUntilReplaced(t *testing.T) {
	t.Parallel()

	s := newTestStatus(t)
	now := time.Now()
	s.Update(statusEvent(status.LevelError, "paste failed", now))
	s.Update(statusCleanupMsg{time: now.Add(time.Hour)})
	assert.Contains(t, ansi.Strip(s.View()), "paste failed")

	s.Update(statusEvent(status.LevelInfo, "theme latte", now))
	view := ansi.Strip(s.View())
	assert.Contains(t, view, "theme latte")
	assert.NotContains(t, view, "paste failed")
	assert.Len(t, s.statusMessages, 1)
}

func TestStatus_TracksViewEvents(t *testing.T) {
	t.Parallel()

	s := newTestStatus(t)
	s.Update(pubsub.Event[growing.Event]{Payload: growing.Event{Kind: growing.EventDidChangeHeight, Height: 3}})
	s.Update(pubsub.Event[growing.Event]{Payload: growing.Event{
		Kind:  growing.EventDidChangeState,
		State: &growing.State{IsEditing: true, Text: "a\nb"},
	}})

	view := ansi.Strip(s.View())
	assert.Contains(t, view, "editing 2 lines")
	assert.Contains(t, view, "h3")
}

func TestStatus_HelpWidget(t *testing.T) {
	t.Parallel()

	s := newTestStatus(t)
	assert.Contains(t, ansi.Strip(s.View()), "ctrl+? help")
	s.SetHelpWidgetMsg("esc back")
	assert.Contains(t, ansi.Strip(s.View()), "esc back")
}

func TestCountLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("a"))
	assert.Equal(t, 3, countLines("a\n\nb"))
}

package util

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func Clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}

// Measure logs the time since it was called when the returned func runs.
func Measure(tag string) func(...any) {
	startTime := time.Now()
	return func(tags ...any) {
		args := append([]any{"timeTakenMs", time.Since(startTime).Milliseconds()}, tags...)
		slog.Debug(tag, args...)
	}
}

// ThemeChangedMsg is broadcast after the active theme changes.
type ThemeChangedMsg struct {
	Name string
}

// Package status carries short, leveled messages to the TUI status line.
package status

import (
	"context"
	"time"

	"github.com/sst/growingtext/pkg/pubsub"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelDebug Level = "debug"
)

// StatusMessage is one update for the status line.
type StatusMessage struct {
	Level     Level         `json:"level"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Critical  bool          `json:"critical"`
	Duration  time.Duration `json:"duration"`
}

// Service publishes status messages to subscribers.
type Service interface {
	pubsub.Subscriber[StatusMessage]
	Info(message string)
	Warn(message string)
	Error(message string)
	Debug(message string)
	Shutdown()
}

const defaultDuration = 3 * time.Second

type service struct {
	broker *pubsub.Broker[StatusMessage]
}

func (s *service) Info(message string) {
	s.publish(LevelInfo, message)
}

func (s *service) Warn(message string) {
	s.publish(LevelWarn, message)
}

// Error messages stay until replaced.
func (s *service) Error(message string) {
	s.publish(LevelError, message)
}

func (s *service) Debug(message string) {
	s.publish(LevelDebug, message)
}

func (s *service) publish(level Level, message string) {
	msg := StatusMessage{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
		Critical:  level == LevelError,
		Duration:  defaultDuration,
	}
	s.broker.Publish(pubsub.EventTypeCreated, msg)
}

func (s *service) Subscribe(ctx context.Context) <-chan pubsub.Event[StatusMessage] {
	return s.broker.Subscribe(ctx)
}

func (s *service) Shutdown() {
	s.broker.Shutdown()
}

func NewService() Service {
	return &service{broker: pubsub.NewBroker[StatusMessage]()}
}

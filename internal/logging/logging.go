// Package logging wires log/slog for the two ways growtext runs: the TUI,
// where records go to an in-memory feed the interface subscribes to, and
// the headless commands, where records go to stderr.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-logfmt/logfmt"
	"github.com/google/uuid"
	"github.com/sst/growingtext/pkg/pubsub"
)

// Log is one decoded slog record.
type Log struct {
	ID         string
	Timestamp  time.Time
	Level      string
	Message    string
	Attributes map[string]string
}

const (
	EventLogCreated pubsub.EventType = "log_created"

	defaultCapacity = 500
)

// Service keeps the most recent records and publishes each new one.
type Service interface {
	pubsub.Subscriber[Log]

	Create(ctx context.Context, log Log) error
	ListAll(ctx context.Context, limit int) ([]Log, error)
	Shutdown()
}

type service struct {
	broker   *pubsub.Broker[Log]
	mu       sync.RWMutex
	logs     []Log
	capacity int
}

// NewService returns a feed that retains up to capacity records. A capacity
// of 0 or less uses the default.
func NewService(capacity int) Service {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &service{
		broker:   pubsub.NewBroker[Log](),
		capacity: capacity,
	}
}

func (s *service) Create(ctx context.Context, l Log) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now()
	}

	s.mu.Lock()
	s.logs = append(s.logs, l)
	if over := len(s.logs) - s.capacity; over > 0 {
		s.logs = append(s.logs[:0:0], s.logs[over:]...)
	}
	s.mu.Unlock()

	s.broker.Publish(EventLogCreated, l)
	return nil
}

// ListAll returns up to limit of the newest records, oldest first. A limit
// of 0 or less returns everything retained.
func (s *service) ListAll(ctx context.Context, limit int) ([]Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := s.logs
	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	out := make([]Log, len(logs))
	copy(out, logs)
	return out, nil
}

func (s *service) Subscribe(ctx context.Context) <-chan pubsub.Event[Log] {
	return s.broker.Subscribe(ctx)
}

func (s *service) Shutdown() {
	s.broker.Shutdown()
}

type slogWriter struct {
	service Service
}

// Write decodes logfmt records, as written by slog.TextHandler, into the
// service.
func (sw *slogWriter) Write(p []byte) (n int, err error) {
	// time=2024-05-09T12:34:56.789-05:00 level=INFO msg="fit pass" view=abc height=3
	d := logfmt.NewDecoder(bytes.NewReader(p))
	for d.ScanRecord() {
		entry := Log{Attributes: make(map[string]string)}
		for d.ScanKeyval() {
			key, value := string(d.Key()), string(d.Value())
			switch key {
			case "time":
				parsed, err := time.Parse(time.RFC3339Nano, value)
				if err != nil {
					parsed = time.Now()
				}
				entry.Timestamp = parsed
			case "level":
				entry.Level = strings.ToLower(value)
			case "msg":
				entry.Message = value
			default:
				entry.Attributes[key] = value
			}
		}
		if err := sw.service.Create(context.Background(), entry); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR [logging.slogWriter]: %v\n", err)
		}
	}
	if d.Err() != nil {
		return len(p), fmt.Errorf("logfmt.ScanRecord: %w", d.Err())
	}
	return len(p), nil
}

// NewSlogWriter returns a writer that feeds s.
func NewSlogWriter(s Service) io.Writer {
	return &slogWriter{service: s}
}

// NewTUILogger returns a logger whose records go to s only, leaving the
// terminal to the interface.
func NewTUILogger(s Service, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(NewSlogWriter(s), &slog.HandlerOptions{Level: level}))
}

// NewCLILogger returns a logger that pretty-prints to w.
func NewCLILogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "growtext",
	})
	return slog.New(handler)
}

// RecoverPanic logs a panic, writes its stack trace to a file in the working
// directory and runs cleanup. Defer it at the top of goroutines.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		slog.Error("panic recovered", "in", name, "value", fmt.Sprint(r))

		filename := fmt.Sprintf("growtext-panic-%s-%s.log", name, time.Now().Format("20060102-150405"))
		file, err := os.Create(filename)
		if err != nil {
			slog.Error("failed to create panic log", "path", filename, "error", err)
		} else {
			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
			file.Close()
			slog.Info("panic details written", "path", filename)
		}

		if cleanup != nil {
			cleanup()
		}
	}
}

// Package history keeps submitted messages in a blob bucket so the
// transcript and message recall survive restarts.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	"github.com/sst/growingtext/pkg/pubsub"
)

// Entry is one submitted message.
type Entry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	EventEntryCreated pubsub.EventType = "history_entry_created"

	entryPrefix     = "entries/"
	defaultCapacity = 200
)

type Service interface {
	pubsub.Subscriber[Entry]

	Add(ctx context.Context, text string) (Entry, error)
	// List returns up to limit of the newest entries, oldest first. A limit
	// of 0 or less returns all of them.
	List(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

type service struct {
	bucket   *blob.Bucket
	broker   *pubsub.Broker[Entry]
	capacity int
	last     time.Time
	mu       sync.Mutex
}

// NewService stores entries in bucket, keeping at most capacity of them. It
// takes ownership of bucket.
func NewService(bucket *blob.Bucket, capacity int) Service {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &service{
		bucket:   bucket,
		broker:   pubsub.NewBroker[Entry](),
		capacity: capacity,
	}
}

// DefaultDir is the history directory under the user cache directory.
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(cache, "growtext", "history"), nil
}

// OpenDir opens a file-backed bucket rooted at dir, creating it if needed.
func OpenDir(dir string) (*blob.Bucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{NoTempDir: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open history bucket: %w", err)
	}
	return bucket, nil
}

// entryKey sorts lexically in creation order.
func entryKey(e Entry) string {
	return fmt.Sprintf("%s%020d-%s.json", entryPrefix, e.CreatedAt.UnixNano(), e.ID)
}

func (s *service) Add(ctx context.Context, text string) (Entry, error) {
	if strings.TrimSpace(text) == "" {
		return Entry{}, errors.New("empty history entry")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := Entry{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now(),
	}
	// Keys order by creation time, so keep it strictly increasing.
	if !e.CreatedAt.After(s.last) {
		e.CreatedAt = s.last.Add(time.Nanosecond)
	}
	s.last = e.CreatedAt

	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to encode history entry: %w", err)
	}
	if err := s.bucket.WriteAll(ctx, entryKey(e), data, &blob.WriterOptions{ContentType: "application/json"}); err != nil {
		return Entry{}, fmt.Errorf("failed to write history entry: %w", err)
	}
	if err := s.prune(ctx); err != nil {
		slog.Warn("failed to prune history", "error", err)
	}

	s.broker.Publish(EventEntryCreated, e)
	return e, nil
}

func (s *service) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.bucket.List(&blob.ListOptions{Prefix: entryPrefix})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list history: %w", err)
		}
		if !obj.IsDir && strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// prune drops the oldest entries past capacity. Callers hold s.mu.
func (s *service) prune(ctx context.Context) error {
	keys, err := s.keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys[:max(0, len(keys)-s.capacity)] {
		if err := s.bucket.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	return s.read(ctx, keys)
}

// read loads the entries stored under keys, skipping any that cannot be
// read or decoded. It only fails when ctx is done.
func (s *service) read(ctx context.Context, keys []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.bucket.ReadAll(ctx, key)
		if err != nil {
			slog.Warn("skipping unreadable history entry", "key", key, "error", err)
			continue
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			slog.Warn("skipping undecodable history entry", "key", key, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *service) Subscribe(ctx context.Context) <-chan pubsub.Event[Entry] {
	return s.broker.Subscribe(ctx)
}

func (s *service) Close() error {
	s.broker.Shutdown()
	return s.bucket.Close()
}

package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultChannelBufferSize = 100
	defaultSendTimeout       = 2 * time.Second
)

type subscription[T any] struct {
	ch     chan Event[T]
	ctx    context.Context
	cancel context.CancelFunc
}

// Broker fans events out to subscribers. Each subscriber sees events in
// publish order; a subscriber whose buffer stays full past the send timeout
// loses that event.
type Broker[T any] struct {
	subs        map[chan Event[T]]*subscription[T]
	mu          sync.RWMutex
	isClosed    bool
	sendTimeout time.Duration
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs:        make(map[chan Event[T]]*subscription[T]),
		sendTimeout: defaultSendTimeout,
	}
}

func (b *Broker[T]) Shutdown() {
	b.mu.Lock()
	if b.isClosed {
		b.mu.Unlock()
		return
	}
	b.isClosed = true

	for ch, sub := range b.subs {
		sub.cancel()
		close(ch)
		delete(b.subs, ch)
	}
	b.mu.Unlock()
	slog.Debug("PubSub broker shut down", "type", fmt.Sprintf("%T", *new(T)))
}

func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed {
		closedCh := make(chan Event[T])
		close(closedCh)
		return closedCh
	}

	subCtx, subCancel := context.WithCancel(ctx)
	subscriberChannel := make(chan Event[T], defaultChannelBufferSize)
	b.subs[subscriberChannel] = &subscription[T]{ch: subscriberChannel, ctx: subCtx, cancel: subCancel}

	go func() {
		<-subCtx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[subscriberChannel]; ok {
			close(subscriberChannel)
			delete(b.subs, subscriberChannel)
		}
	}()

	return subscriberChannel
}

func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.isClosed {
		slog.Warn("Attempted to publish on a closed pubsub broker", "type", eventType, "payload_type", fmt.Sprintf("%T", payload))
		return
	}

	event := Event[T]{Type: eventType, Payload: payload}

	for ch, sub := range b.subs {
		select {
		case ch <- event:
			continue
		default:
		}
		// Send inline so a slow subscriber never sees events out of order.
		timer := time.NewTimer(b.sendTimeout)
		select {
		case ch <- event:
		case <-sub.ctx.Done():
		case <-timer.C:
			slog.Warn("PubSub: Dropped event for slow subscriber after timeout", "type", event.Type)
		}
		timer.Stop()
	}
}

func (b *Broker[T]) GetSubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

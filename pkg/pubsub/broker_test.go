package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_DeliversInPublishOrder(t *testing.T) {
	t.Parallel()

	b := NewBroker[int]()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx)

	// Past the buffer so later sends take the blocking path.
	const n = defaultChannelBufferSize + 50
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			b.Publish(EventTypeUpdated, i)
		}
	}()

	for i := 0; i < n; i++ {
		select {
		case event := <-ch:
			require.Equal(t, i, event.Payload)
			require.Equal(t, EventTypeUpdated, event.Type)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
	<-done
}

func TestBroker_FansOut(t *testing.T) {
	t.Parallel()

	b := NewBroker[string]()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	first := b.Subscribe(ctx)
	second := b.Subscribe(ctx)
	assert.Equal(t, 2, b.GetSubscriberCount())

	b.Publish(EventTypeCreated, "hello")

	for _, ch := range []<-chan Event[string]{first, second} {
		select {
		case event := <-ch:
			assert.Equal(t, "hello", event.Payload)
		case <-time.After(time.Second):
			t.Fatal("subscriber missed the event")
		}
	}
}

func TestBroker_UnsubscribeOnCancel(t *testing.T) {
	t.Parallel()

	b := NewBroker[int]()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
	assert.Eventually(t, func() bool { return b.GetSubscriberCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestBroker_SubscribeAfterShutdown(t *testing.T) {
	t.Parallel()

	b := NewBroker[int]()
	b.Shutdown()
	b.Shutdown()

	_, ok := <-b.Subscribe(context.Background())
	assert.False(t, ok)

	// No subscribers and closed: must not panic.
	b.Publish(EventTypeCreated, 1)
}

func TestBroker_DropsForStalledSubscriber(t *testing.T) {
	t.Parallel()

	b := NewBroker[int]()
	b.sendTimeout = 10 * time.Millisecond
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx)

	for i := 0; i < defaultChannelBufferSize+1; i++ {
		b.Publish(EventTypeCreated, i)
	}
	assert.Len(t, ch, defaultChannelBufferSize)
}

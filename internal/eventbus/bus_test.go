package eventbus_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/eventbus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(opts ...eventbus.Option) *eventbus.Bus {
	return eventbus.New(slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestBus_PublishReachesSubscriber(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	received := make(chan ports.Event, 1)
	unsubscribe := bus.Subscribe(ports.ChannelOrders, func(ev ports.Event) {
		received <- ev
	})
	defer unsubscribe()

	bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{
		Type:       ports.EventOrderCreated,
		Payload:    "snapshot",
		OccurredAt: time.Now(),
	})

	select {
	case ev := <-received:
		assert.Equal(t, ports.EventOrderCreated, ev.Type)
		assert.Equal(t, "snapshot", ev.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_ChannelsAreIsolated(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var ordersSeen, partnersSeen atomic.Int64
	defer bus.Subscribe(ports.ChannelOrders, func(ports.Event) { ordersSeen.Add(1) })()
	defer bus.Subscribe(ports.ChannelPartners, func(ports.Event) { partnersSeen.Add(1) })()

	bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderCreated})

	waitFor(t, func() bool { return ordersSeen.Load() == 1 })
	assert.Equal(t, int64(0), partnersSeen.Load())
}

func TestBus_NoReplayForLateSubscriber(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderCreated})

	var seen atomic.Int64
	defer bus.Subscribe(ports.ChannelOrders, func(ports.Event) { seen.Add(1) })()

	bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderAssigned})

	waitFor(t, func() bool { return seen.Load() == 1 })
	// The pre-subscription event is never delivered.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), seen.Load())
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var seen atomic.Int64
	unsubscribe := bus.Subscribe(ports.ChannelOrders, func(ports.Event) { seen.Add(1) })

	bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderCreated})
	waitFor(t, func() bool { return seen.Load() == 1 })

	unsubscribe()
	unsubscribe() // idempotent

	bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderAssigned})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), seen.Load())
}

func TestBus_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := newTestBus(eventbus.WithSubscriberBuffer(1))
	defer bus.Close()

	block := make(chan struct{})
	defer bus.Subscribe(ports.ChannelOrders, func(ports.Event) { <-block })()

	// The first event occupies the handler, the second the buffer; the
	// rest must be dropped without blocking this goroutine.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
	close(block)
}

func TestBus_ConcurrentPublishAndSubscribe(t *testing.T) {
	bus := newTestBus()
	defer bus.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsubscribe := bus.Subscribe(ports.ChannelOrders, func(ports.Event) {})
			for j := 0; j < 50; j++ {
				bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderCreated})
			}
			unsubscribe()
		}()
	}
	wg.Wait()
}

func TestBus_MultipleIndependentInstances(t *testing.T) {
	first := newTestBus()
	second := newTestBus()
	defer first.Close()
	defer second.Close()

	var firstSeen, secondSeen atomic.Int64
	defer first.Subscribe(ports.ChannelOrders, func(ports.Event) { firstSeen.Add(1) })()
	defer second.Subscribe(ports.ChannelOrders, func(ports.Event) { secondSeen.Add(1) })()

	first.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderCreated})

	waitFor(t, func() bool { return firstSeen.Load() == 1 })
	assert.Equal(t, int64(0), secondSeen.Load())
}

func TestBus_Close(t *testing.T) {
	bus := newTestBus()

	var seen atomic.Int64
	bus.Subscribe(ports.ChannelOrders, func(ports.Event) { seen.Add(1) })

	bus.Close()
	bus.Close() // idempotent

	bus.Publish(context.Background(), ports.ChannelOrders, ports.Event{Type: ports.EventOrderCreated})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), seen.Load())

	// Subscriptions after Close are inert.
	unsubscribe := bus.Subscribe(ports.ChannelOrders, func(ports.Event) { seen.Add(1) })
	unsubscribe()
	require.Equal(t, int64(0), seen.Load())
}

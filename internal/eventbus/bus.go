package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/ports"
)

// defaultSubscriberBuffer bounds how far a subscriber may fall behind
// before events are dropped for it.
const defaultSubscriberBuffer = 64

// Handler receives events published on a subscribed channel. Handlers run
// on the subscriber's own goroutine, one event at a time.
type Handler func(ports.Event)

type subscriber struct {
	events chan ports.Event
	quit   chan struct{}
}

// Bus is an in-process topic-based event distributor.
// It implements ports.EventPublisher.
type Bus struct {
	logger *slog.Logger
	buffer int

	mu     sync.RWMutex
	subs   map[string]map[uint64]*subscriber
	nextID uint64
	closed bool
}

// Option configures a Bus.
type Option func(*Bus)

// WithSubscriberBuffer overrides the per-subscriber buffer size.
func WithSubscriberBuffer(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// New creates an empty bus. Close releases all subscribers.
func New(logger *slog.Logger, opts ...Option) *Bus {
	b := &Bus{
		logger: logger.With("component", "eventbus"),
		buffer: defaultSubscriberBuffer,
		subs:   make(map[string]map[uint64]*subscriber),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Subscribe registers a handler for every subsequent publish on the
// channel and returns the capability to deregister it. Unsubscribe is
// idempotent and safe to call concurrently with in-flight publishes; an
// event already buffered at unsubscribe time may or may not reach the
// handler. The only delivery guarantee is at most one invocation per
// still-registered handler per event.
func (b *Bus) Subscribe(channel string, handler Handler) (unsubscribe func()) {
	sub := &subscriber{
		events: make(chan ports.Event, b.buffer),
		quit:   make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.quit)
		return func() {}
	}

	b.nextID++
	id := b.nextID
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[uint64]*subscriber)
	}
	b.subs[channel][id] = sub
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-sub.quit:
				return
			case ev := <-sub.events:
				handler(ev)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			if chans, ok := b.subs[channel]; ok {
				delete(chans, id)
				if len(chans) == 0 {
					delete(b.subs, channel)
				}
			}
			b.mu.Unlock()
			close(sub.quit)
		})
	}
}

// Publish broadcasts the event to all subscribers currently registered on
// the channel. It never blocks on subscriber processing: a subscriber
// whose buffer is full is skipped for this event.
func (b *Bus) Publish(_ context.Context, channel string, event ports.Event) {
	b.mu.RLock()
	targets := make([]*subscriber, 0, len(b.subs[channel]))
	for _, sub := range b.subs[channel] {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		select {
		case sub.events <- event:
		default:
			b.logger.Debug("dropping event for slow subscriber",
				"channel", channel, "type", string(event.Type))
		}
	}
}

// Close deregisters every subscriber and rejects further subscriptions.
// Publishes after Close are silently ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, chans := range b.subs {
		for _, sub := range chans {
			close(sub.quit)
		}
	}
	b.subs = make(map[string]map[uint64]*subscriber)
}

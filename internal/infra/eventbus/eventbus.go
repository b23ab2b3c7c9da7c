// Package eventbus is an in-memory publish/subscribe bus.
// The inference recorder publishes one event per generate call and the
// request log consumes them.
//
// Design:
//   - Buffered Go channel per subscriber (buffer=100 unless configured).
//   - Publish is non-blocking: drops the event if a buffer is full and
//     counts the drop.
//   - Subscribe returns a read-only channel; the caller owns the consumption loop.
//   - No persistence: events live only in the subscriber buffers.
package eventbus

import (
	"sync"
	"sync/atomic"
)

// Event is a single published message.
type Event struct {
	Topic   string
	Payload any
}

// EventBus is the interface for publishing and subscribing to topics.
type EventBus interface {
	Publish(topic string, payload any)
	Subscribe(topic string) <-chan Event
}

const defaultBufferSize = 100

// Bus is the in-memory implementation of EventBus.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
	bufferSize  int
	dropped     atomic.Int64
}

// New returns a new in-memory Bus with the default buffer size.
func New() *Bus {
	return NewWithBuffer(defaultBufferSize)
}

// NewWithBuffer returns a Bus whose subscriber channels hold size events.
// Batch runs that must not lose events size this to the batch length.
func NewWithBuffer(size int) *Bus {
	if size < 1 {
		size = defaultBufferSize
	}
	return &Bus{
		subscribers: make(map[string][]chan Event),
		bufferSize:  size,
	}
}

// Subscribe registers a new subscriber for topic and returns a read-only channel.
// The caller must consume the channel or later events will be dropped.
func (b *Bus) Subscribe(topic string) <-chan Event {
	ch := make(chan Event, b.bufferSize)
	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()
	return ch
}

// Publish sends an Event to all subscribers of topic.
// If a subscriber's buffer is full the event is dropped for that subscriber.
func (b *Bus) Publish(topic string, payload any) {
	evt := Event{Topic: topic, Payload: payload}
	b.mu.RLock()
	subs := b.subscribers[topic]
	b.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- evt:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped returns how many deliveries were discarded because a subscriber
// buffer was full.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

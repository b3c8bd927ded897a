package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultBufferSize = 64

// Broker fans each published event out to every live subscription. A
// subscription whose buffer is full misses the event; the publisher never
// waits. Missed deliveries are counted in Dropped.
type Broker[T any] struct {
	mu      sync.RWMutex
	subs    map[*subscription[T]]struct{}
	closed  bool
	bufSize int
	dropped atomic.Uint64
}

type subscription[T any] struct {
	ch   chan Event[T]
	once sync.Once
}

func (s *subscription[T]) close() {
	s.once.Do(func() { close(s.ch) })
}

// NewBroker returns a broker with the default per-subscription buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer returns a broker whose subscriptions buffer size events.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:    map[*subscription[T]]struct{}{},
		bufSize: max(size, 1),
	}
}

// Subscribe registers a subscription that lives until ctx is done or the
// broker closes. Subscribing to a closed broker yields a closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	sub := &subscription[T]{ch: make(chan Event[T], b.bufSize)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.close()
		return sub.ch
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	context.AfterFunc(ctx, func() { b.remove(sub) })
	return sub.ch
}

func (b *Broker[T]) remove(sub *subscription[T]) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
	sub.close()
}

// Publish stamps and delivers an event, returning how many subscriptions
// accepted it.
func (b *Broker[T]) Publish(eventType EventType, payload T) int {
	ev := Event[T]{Type: eventType, Payload: payload, Timestamp: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return 0
	}

	n := 0
	for sub := range b.subs {
		select {
		case sub.ch <- ev:
			n++
		default:
			b.dropped.Add(1)
		}
	}
	return n
}

// Close ends every subscription. It is idempotent.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.close()
	}
	clear(b.subs)
}

// SubscriberCount reports the live subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped reports deliveries missed because a subscription was full.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}

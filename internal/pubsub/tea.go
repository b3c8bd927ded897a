package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and returns it as the message.
// The message is nil once ctx is done or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		ev, ok := next(ctx, ch)
		if !ok {
			return nil
		}
		return ev
	}
}

func next[T any](ctx context.Context, ch <-chan Event[T]) (Event[T], bool) {
	select {
	case <-ctx.Done():
		return Event[T]{}, false
	case ev, ok := <-ch:
		return ev, ok
	}
}

// ContinuousListener holds one subscription across Update calls. Only one
// of its commands may be outstanding at a time; re-arm it after each event.
type ContinuousListener[T any] struct {
	ctx     context.Context
	ch      <-chan Event[T]
	pending *Event[T]
}

// NewContinuousListener subscribes to src until ctx is done.
func NewContinuousListener[T any](ctx context.Context, src Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, ch: src.Subscribe(ctx)}
}

// Listen delivers every event in order.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	if ev := l.takePending(); ev != nil {
		return func() tea.Msg { return *ev }
	}
	return ListenCmd(l.ctx, l.ch)
}

// ListenLatest waits for an event, then folds any already queued events of
// the same type into the newest one, so a burst of writes is one message.
func (l *ContinuousListener[T]) ListenLatest() tea.Cmd {
	return func() tea.Msg {
		var ev Event[T]
		ok := true
		if p := l.takePending(); p != nil {
			ev = *p
		} else {
			ev, ok = next(l.ctx, l.ch)
		}
		if !ok {
			return nil
		}
		for {
			select {
			case queued, open := <-l.ch:
				if !open {
					return ev
				}
				if queued.Type != ev.Type {
					l.pending = &queued
					return ev
				}
				ev = queued
			default:
				return ev
			}
		}
	}
}

func (l *ContinuousListener[T]) takePending() *Event[T] {
	p := l.pending
	l.pending = nil
	return p
}

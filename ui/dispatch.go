package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// EventKind is the type of a page event.
type EventKind string

const (
	EventSubmit EventKind = "submit"
	EventClick  EventKind = "click"
)

// ErrNoHandler completes a Task dispatched to an element/event pair nobody
// listens on.
var ErrNoHandler = errors.New("ui: no handler registered")

// Handler is a command handler bound to an element event.
type Handler func(ctx context.Context) error

type listenerKey struct {
	target ElementID
	kind   EventKind
}

// Dispatcher routes page events to registered command handlers.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[listenerKey][]Handler
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[listenerKey][]Handler)}
}

// On registers h for events of kind on target. Handlers run in
// registration order.
func (d *Dispatcher) On(target ElementID, kind EventKind, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	k := listenerKey{target, kind}
	d.handlers[k] = append(d.handlers[k], h)
}

// Dispatch fires an event and returns immediately. The handlers run on
// their own goroutine; the returned Task completes when they have all
// returned, carrying the first error.
func (d *Dispatcher) Dispatch(ctx context.Context, target ElementID, kind EventKind) *Task {
	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[listenerKey{target, kind}]...)
	d.mu.RUnlock()

	t := &Task{done: make(chan struct{})}
	if len(handlers) == 0 {
		t.complete(fmt.Errorf("%w for %s on #%s", ErrNoHandler, kind, target))
		return t
	}

	go func() {
		var first error
		defer func() {
			if r := recover(); r != nil {
				slog.Error("event handler panicked", "target", target, "event", kind, "panic", r)
				first = fmt.Errorf("ui: handler for %s on #%s panicked: %v", kind, target, r)
			}
			t.complete(first)
		}()
		for _, h := range handlers {
			if err := h(ctx); err != nil && first == nil {
				first = err
			}
		}
	}()
	return t
}

// Task is the pending result of a dispatched event.
type Task struct {
	done chan struct{}
	err  error
}

func (t *Task) complete(err error) {
	t.err = err
	close(t.done)
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task's error. It is only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

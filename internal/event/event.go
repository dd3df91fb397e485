// Package event carries task activity from the task service to its
// consumers. The task service publishes; the notification feed (and
// anything else that cares) subscribes. Keeping this as an explicit
// message keeps the task and notification stores out of each other's
// internals.
package event

import (
	"sync"

	"github.com/nhle/taskboard/internal/model"
)

// Event describes a single piece of task activity.
type Event struct {
	// Type identifies the kind of activity.
	Type model.NotificationType

	// TaskID is the task the activity happened on. It remains valid
	// as a reference even after the task is deleted.
	TaskID string

	// Message is the human-readable description of the activity.
	Message string
}

// Handler consumes a published event.
type Handler func(Event)

// Bus fans events out to subscribers. Publish is synchronous: handlers
// run on the caller's goroutine, in subscription order, so events are
// observed in publish order.
type Bus struct {
	mu       sync.Mutex
	handlers []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all future events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers e to every subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}

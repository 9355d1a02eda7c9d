package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Handler reacts to one published event
type Handler func(ctx context.Context, event Event) error

// Publisher delivers events somewhere
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus is a Publisher that fans events out to subscribed handlers
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus delivers events synchronously to in-process handlers in
// subscription order. A failing or panicking handler does not stop the rest.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish runs every handler for the event type and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := invoke(ctx, h, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s (%s): %w", ErrMsgHandlersFailed, event.Type, errors.Join(errs...))
}

func invoke(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, event)
}

func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

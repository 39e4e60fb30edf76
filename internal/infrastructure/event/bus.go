// Package event provides the in-process bus that carries shop-side entity
// change events to the Odoo dispatcher.
package event

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

// Bus is an in-memory pub/sub bus for change events. Dispatch is
// synchronous so callers observe correlation write-backs before their
// request completes.
type Bus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

// NewBus creates a new in-memory event bus
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers events to all registered handlers synchronously.
// Handler failures are logged and do not stop delivery to other handlers.
func (b *Bus) Publish(ctx context.Context, events ...sync.ChangeEvent) error {
	for _, event := range events {
		handlers := b.registry.GetHandlers(event.EventType())

		for _, handler := range handlers {
			if err := b.dispatchToHandler(ctx, handler, event); err != nil {
				b.logger.Error("handler failed to process event",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.ID.String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types
func (b *Bus) Subscribe(handler Handler, eventTypes ...string) {
	// If handler specifies its own event types, use those
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *Bus) Unsubscribe(handler Handler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// dispatchToHandler safely dispatches an event to a handler
func (b *Bus) dispatchToHandler(ctx context.Context, handler Handler, event sync.ChangeEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return handler.Handle(ctx, event)
}

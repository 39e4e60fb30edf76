package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/domain/sync"
)

type recordingHandler struct {
	types  []string
	events []sync.ChangeEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(_ context.Context, event sync.ChangeEvent) error {
	if h.panics {
		panic("boom")
	}
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func TestBusRoutesByEventType(t *testing.T) {
	bus := NewBus(zap.NewNop())

	productHandler := &recordingHandler{types: []string{"product.written"}}
	categoryHandler := &recordingHandler{types: []string{"category.written"}}
	bus.Subscribe(productHandler)
	bus.Subscribe(categoryHandler)

	event := sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, "user", uuid.New())
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, productHandler.events, 1)
	assert.Equal(t, event.ID, productHandler.events[0].ID)
	assert.Empty(t, categoryHandler.events)
}

func TestBusWildcardHandlerReceivesAll(t *testing.T) {
	bus := NewBus(zap.NewNop())

	all := &recordingHandler{}
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, "user"),
		sync.NewChangeEvent(sync.EntityCategory, sync.ActionDeleted, "user"),
	))

	assert.Len(t, all.events, 2)
}

func TestBusContinuesAfterHandlerError(t *testing.T) {
	bus := NewBus(zap.NewNop())

	failing := &recordingHandler{types: []string{"product.written"}, err: errors.New("push failed")}
	healthy := &recordingHandler{types: []string{"product.written"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(),
		sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, "user"),
	))

	assert.Len(t, healthy.events, 1)
}

func TestBusRecoversFromHandlerPanic(t *testing.T) {
	bus := NewBus(zap.NewNop())

	panicking := &recordingHandler{types: []string{"product.written"}, panics: true}
	healthy := &recordingHandler{types: []string{"product.written"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(),
		sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, "user"),
	))

	assert.Len(t, healthy.events, 1)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop())

	handler := &recordingHandler{types: []string{"product.written"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(),
		sync.NewChangeEvent(sync.EntityProduct, sync.ActionWritten, "user"),
	))

	assert.Empty(t, handler.events)
}

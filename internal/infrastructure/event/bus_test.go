package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New(), uuid.New()),
	}
}

type testHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to subscribed handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newTestHandler("payroll.batch.locked")
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("payroll.batch.locked")))
		require.NoError(t, bus.Publish(ctx, newTestEvent("payroll.batch.created")))

		assert.Equal(t, 1, handler.count())
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newTestHandler()
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("invite.sent"), newTestEvent("staff.joined")))
		assert.Equal(t, 2, handler.count())
	})

	t.Run("failing handler does not block others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := newTestHandler("invite.sent")
		failing.err = errors.New("smtp down")
		ok := newTestHandler("invite.sent")
		bus.Subscribe(failing)
		bus.Subscribe(ok)

		require.NoError(t, bus.Publish(ctx, newTestEvent("invite.sent")))
		assert.Equal(t, 1, ok.count())
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		angry := newTestHandler("business.created")
		angry.panics = true
		calm := newTestHandler("business.created")
		bus.Subscribe(angry)
		bus.Subscribe(calm)

		require.NotPanics(t, func() {
			_ = bus.Publish(ctx, newTestEvent("business.created"))
		})
		assert.Equal(t, 1, calm.count())
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newTestHandler("invite.sent")
		bus.Subscribe(handler)
		require.NoError(t, bus.Publish(ctx, newTestEvent("invite.sent")))

		bus.Unsubscribe(handler)
		require.NoError(t, bus.Publish(ctx, newTestEvent("invite.sent")))
		assert.Equal(t, 1, handler.count())
	})
}

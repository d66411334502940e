package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Kind names one trigger path into the scheduling core.
type Kind string

const (
	KindBoot         Kind = "boot"
	KindPeriodicSync Kind = "periodic_sync"
	KindAlarmFired   Kind = "alarm_fired"
)

// Event carries a trigger into its handler. RequestCode, RunID, and
// ForcedMessageID are set only for alarm firings. A non-zero Now
// requests virtual-time planning.
type Event struct {
	Kind            Kind
	RequestCode     int
	RunID           string
	ForcedMessageID string
	Now             time.Time
}

type HandlerFunc func(ctx context.Context, event Event) error

// Dispatcher routes trigger events to their registered handlers. It
// replaces implicit broadcast wiring with an explicit table so every
// trigger path is visible and testable.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Kind]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Kind]HandlerFunc),
	}
}

// Register binds a handler to a kind, replacing any previous binding.
func (d *Dispatcher) Register(kind Kind, handler HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = handler
}

// Dispatch invokes the handler registered for the event's kind.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	d.mu.RLock()
	handler, ok := d.handlers[event.Kind]
	d.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, event.Kind)
	}

	slog.DebugContext(ctx, "dispatching trigger event",
		slog.String("kind", string(event.Kind)),
		slog.Int("request_code", event.RequestCode),
	)

	return handler(ctx, event)
}

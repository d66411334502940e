package trigger

import (
	"context"
	"errors"
	"testing"
)

func TestDispatch_RoutesByKind(t *testing.T) {
	d := NewDispatcher()

	var got Event
	d.Register(KindAlarmFired, func(_ context.Context, event Event) error {
		got = event
		return nil
	})
	d.Register(KindBoot, func(_ context.Context, _ Event) error {
		t.Error("boot handler invoked for alarm event")
		return nil
	})

	event := Event{Kind: KindAlarmFired, RequestCode: 1003, ForcedMessageID: "anniv"}
	if err := d.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if got.RequestCode != 1003 {
		t.Errorf("RequestCode = %d, want 1003", got.RequestCode)
	}
	if got.ForcedMessageID != "anniv" {
		t.Errorf("ForcedMessageID = %q, want %q", got.ForcedMessageID, "anniv")
	}
}

func TestDispatch_UnknownKind(t *testing.T) {
	d := NewDispatcher()

	err := d.Dispatch(context.Background(), Event{Kind: Kind("shutdown")})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Dispatch() error = %v, want ErrUnknownKind", err)
	}
}

func TestDispatch_HandlerErrorPropagates(t *testing.T) {
	d := NewDispatcher()

	want := errors.New("handler failed")
	d.Register(KindPeriodicSync, func(_ context.Context, _ Event) error {
		return want
	})

	if err := d.Dispatch(context.Background(), Event{Kind: KindPeriodicSync}); !errors.Is(err, want) {
		t.Errorf("Dispatch() error = %v, want %v", err, want)
	}
}

func TestRegister_ReplacesHandler(t *testing.T) {
	d := NewDispatcher()

	d.Register(KindBoot, func(_ context.Context, _ Event) error {
		t.Error("replaced handler invoked")
		return nil
	})

	invoked := false
	d.Register(KindBoot, func(_ context.Context, _ Event) error {
		invoked = true
		return nil
	})

	if err := d.Dispatch(context.Background(), Event{Kind: KindBoot}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !invoked {
		t.Error("replacement handler not invoked")
	}
}

package alarmqueue

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLocalQueue_FiresPastDueImmediately(t *testing.T) {
	queue := NewLocalQueue()
	defer queue.Close()

	fired := make(chan *AlarmTask, 1)
	queue.SetFireFunc(func(task *AlarmTask) {
		fired <- task
	})

	task := &AlarmTask{
		RequestCode: 1000,
		FireAt:      time.Now().Add(-time.Minute),
		RunID:       "run-1",
	}

	resp, err := queue.RegisterExact(context.Background(), task)
	if err != nil {
		t.Fatalf("RegisterExact() error = %v", err)
	}
	if resp.Name != "alarm-1000" {
		t.Errorf("Name = %q, want %q", resp.Name, "alarm-1000")
	}

	select {
	case got := <-fired:
		if got.RequestCode != 1000 {
			t.Errorf("fired RequestCode = %d, want 1000", got.RequestCode)
		}
	case <-time.After(time.Second):
		t.Fatal("past-due alarm did not fire")
	}

	if queue.Pending() != 0 {
		t.Errorf("Pending() = %d after fire, want 0", queue.Pending())
	}
}

func TestLocalQueue_CancelStopsTimer(t *testing.T) {
	queue := NewLocalQueue()
	defer queue.Close()

	var mu sync.Mutex
	firedCount := 0
	queue.SetFireFunc(func(*AlarmTask) {
		mu.Lock()
		firedCount++
		mu.Unlock()
	})

	task := &AlarmTask{
		RequestCode: 1001,
		FireAt:      time.Now().Add(50 * time.Millisecond),
	}
	if _, err := queue.RegisterExact(context.Background(), task); err != nil {
		t.Fatalf("RegisterExact() error = %v", err)
	}

	if err := queue.Cancel(context.Background(), 1001); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if firedCount != 0 {
		t.Errorf("cancelled alarm fired %d times", firedCount)
	}
}

func TestLocalQueue_CancelUnknownCodeIsNoop(t *testing.T) {
	queue := NewLocalQueue()
	defer queue.Close()

	if err := queue.Cancel(context.Background(), 9999); err != nil {
		t.Errorf("Cancel() on unknown code error = %v", err)
	}
}

func TestLocalQueue_ReregisterReplacesTimer(t *testing.T) {
	queue := NewLocalQueue()
	defer queue.Close()

	fired := make(chan *AlarmTask, 2)
	queue.SetFireFunc(func(task *AlarmTask) {
		fired <- task
	})

	far := &AlarmTask{RequestCode: 1002, FireAt: time.Now().Add(time.Hour), RunID: "old"}
	if _, err := queue.RegisterExact(context.Background(), far); err != nil {
		t.Fatalf("RegisterExact() error = %v", err)
	}

	near := &AlarmTask{RequestCode: 1002, FireAt: time.Now().Add(10 * time.Millisecond), RunID: "new"}
	if _, err := queue.RegisterExact(context.Background(), near); err != nil {
		t.Fatalf("RegisterExact() error = %v", err)
	}

	if queue.Pending() != 1 {
		t.Errorf("Pending() = %d after re-register, want 1", queue.Pending())
	}

	select {
	case got := <-fired:
		if got.RunID != "new" {
			t.Errorf("fired RunID = %q, want %q", got.RunID, "new")
		}
	case <-time.After(time.Second):
		t.Fatal("replacement alarm did not fire")
	}
}

func TestLocalQueue_CloseRejectsRegistration(t *testing.T) {
	queue := NewLocalQueue()

	task := &AlarmTask{RequestCode: 1003, FireAt: time.Now().Add(time.Hour)}
	if _, err := queue.RegisterExact(context.Background(), task); err != nil {
		t.Fatalf("RegisterExact() error = %v", err)
	}

	queue.Close()

	if queue.Pending() != 0 {
		t.Errorf("Pending() = %d after Close, want 0", queue.Pending())
	}

	if _, err := queue.RegisterExact(context.Background(), task); err != ErrQueueClosed {
		t.Errorf("RegisterExact() after Close error = %v, want ErrQueueClosed", err)
	}
}

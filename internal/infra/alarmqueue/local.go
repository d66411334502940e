package alarmqueue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// FireFunc receives a task when its in-process timer elapses.
type FireFunc func(task *AlarmTask)

// LocalQueue keeps alarms as in-process timers. It needs no external
// tasks service, so a single instance serves development setups, at
// the cost of losing pending alarms on restart.
type LocalQueue struct {
	mu       sync.Mutex
	timers   map[int]*time.Timer
	fireFunc FireFunc
	closed   bool
}

func NewLocalQueue() *LocalQueue {
	return &LocalQueue{
		timers: make(map[int]*time.Timer),
	}
}

// SetFireFunc binds the timer callback. It must be called before the
// first RegisterExact; tasks registered without a callback are dropped
// with a warning when they elapse.
func (q *LocalQueue) SetFireFunc(fn FireFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fireFunc = fn
}

func (q *LocalQueue) RegisterExact(ctx context.Context, task *AlarmTask) (*AlarmResponse, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrQueueClosed
	}

	if existing, ok := q.timers[task.RequestCode]; ok {
		existing.Stop()
		delete(q.timers, task.RequestCode)
	}

	now := time.Now()
	delay := task.FireAt.Sub(now)
	if delay < 0 {
		delay = 0
	}

	code := task.RequestCode
	q.timers[code] = time.AfterFunc(delay, func() {
		q.fire(code, task)
	})

	slog.DebugContext(ctx, "alarm registered to local queue",
		slog.Int("request_code", task.RequestCode),
		slog.Time("fire_at", task.FireAt),
		slog.Duration("delay", delay),
	)

	return &AlarmResponse{
		Name:         task.TaskName(),
		ScheduleTime: task.FireAt,
		CreateTime:   now,
	}, nil
}

func (q *LocalQueue) fire(code int, task *AlarmTask) {
	q.mu.Lock()
	delete(q.timers, code)
	fn := q.fireFunc
	closed := q.closed
	q.mu.Unlock()

	if closed {
		return
	}
	if fn == nil {
		slog.Warn("alarm elapsed with no fire callback bound",
			slog.Int("request_code", code),
		)
		return
	}
	fn(task)
}

func (q *LocalQueue) Cancel(_ context.Context, requestCode int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	timer, ok := q.timers[requestCode]
	if !ok {
		return nil
	}
	timer.Stop()
	delete(q.timers, requestCode)

	slog.Debug("alarm cancelled in local queue",
		slog.Int("request_code", requestCode),
	)
	return nil
}

// Close stops all pending timers. Further registrations fail.
func (q *LocalQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for code, timer := range q.timers {
		timer.Stop()
		delete(q.timers, code)
	}
}

// Pending reports how many alarms are still waiting to elapse.
func (q *LocalQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

package alarmqueue

import "context"

//go:generate mockgen -source=alarm_queue.go -destination=mock.go -package=alarmqueue

// AlarmQueue registers exact-time alarm tasks and cancels previously
// registered ones by request code. Implementations must tolerate
// cancelling a code that was never registered or has already fired.
type AlarmQueue interface {
	RegisterExact(ctx context.Context, task *AlarmTask) (*AlarmResponse, error)
	Cancel(ctx context.Context, requestCode int) error
}

package alarmqueue

import (
	"fmt"
	"time"
)

type AlarmTask struct {
	FireAt time.Time `json:"-"`

	RequestCode     int    `json:"request_code"`
	RunID           string `json:"run_id"`
	ForcedMessageID string `json:"forced_message_id,omitempty"`
}

// TaskName returns the stable per-code task identifier. Re-registering
// the same request code replaces the previous alarm.
func (t *AlarmTask) TaskName() string {
	return fmt.Sprintf("alarm-%d", t.RequestCode)
}

type AlarmResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type tasksRequest struct {
	Task tasksTask `json:"task"`
}

type tasksTask struct {
	Name         string           `json:"name,omitempty"`
	HTTPRequest  tasksHTTPRequest `json:"httpRequest"`
	ScheduleTime string           `json:"scheduleTime,omitempty"`
}

type tasksHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type tasksResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}

package domain

import (
	"time"
)

// ScheduledSlot is one planned fire-time. Slots are ephemeral: every
// planning pass recomputes the full set. Identity is the fire time
// itself (FireKey); an override landing on the exact same millisecond
// as a generic slot replaces it, since overrides merge in last.
type ScheduledSlot struct {
	FireTime        time.Time `json:"fire_time"`
	ForcedMessageID string    `json:"forced_message_id,omitempty"`
}

// Forced reports whether the slot is pinned to specific content.
func (s ScheduledSlot) Forced() bool {
	return s.ForcedMessageID != ""
}

// FireKey collapses a fire time to its slot identity.
func FireKey(t time.Time) int64 {
	return t.UnixMilli()
}

// RegisteredAlarm records one alarm committed to the alarm queue,
// keyed by its request code inside the reserved range.
type RegisteredAlarm struct {
	RequestCode     int       `json:"request_code"`
	FireTime        time.Time `json:"fire_time"`
	ForcedMessageID string    `json:"forced_message_id,omitempty"`
	TaskName        string    `json:"task_name,omitempty"`
}

// SchedulePlan is the persisted snapshot of the live schedule. The next
// planning pass reads it to cancel every previously registered alarm
// before regenerating.
type SchedulePlan struct {
	RunID     string            `json:"run_id"`
	PlannedAt time.Time         `json:"planned_at"`
	Alarms    []RegisteredAlarm `json:"alarms"`
}

func NewSchedulePlan(runID string, plannedAt time.Time) *SchedulePlan {
	return &SchedulePlan{
		RunID:     runID,
		PlannedAt: plannedAt,
		Alarms:    make([]RegisteredAlarm, 0),
	}
}

func (p *SchedulePlan) AddAlarm(alarm RegisteredAlarm) {
	p.Alarms = append(p.Alarms, alarm)
}

// RequestCodes returns the request codes held by this plan.
func (p *SchedulePlan) RequestCodes() []int {
	codes := make([]int, 0, len(p.Alarms))
	for _, a := range p.Alarms {
		codes = append(codes, a.RequestCode)
	}
	return codes
}

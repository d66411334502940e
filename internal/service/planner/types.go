package planner

import (
	"time"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

// Result summarizes one planning pass.
type Result struct {
	RunID            string
	PlannedAt        time.Time
	GenericCount     int
	OverrideCount    int
	DroppedOverrides int
	RegisteredCount  int
	FailedCount      int
	CancelledCount   int
	Alarms           []domain.RegisteredAlarm
}

package domain

import (
	"context"
	"time"
)

type PlanningPassRecord struct {
	RunID            string
	PlannedAt        time.Time
	GenericCount     int
	OverrideCount    int
	DroppedOverrides int
	RegisteredCount  int
	FailedCount      int
	CancelledCount   int
}

type DeliveryRecord struct {
	RunID       string
	FiredAt     time.Time
	RequestCode int
	MessageID   string
	Forced      bool
	Outcome     string
	SkipReason  string
}

// DeliveryRecorder sinks planning and delivery outcomes to an analytics
// store. Recording is best-effort and never blocks the core flow.
type DeliveryRecorder interface {
	RecordPlanningPass(ctx context.Context, record PlanningPassRecord) error
	RecordDelivery(ctx context.Context, record DeliveryRecord) error
	Flush(ctx context.Context) error
	Close() error
}

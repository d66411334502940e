package deliveryrecorder

import (
	"context"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DeliveryRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordPlanningPass(_ context.Context, _ domain.PlanningPassRecord) error {
	return nil
}

func (n *noopRecorder) RecordDelivery(_ context.Context, _ domain.DeliveryRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}

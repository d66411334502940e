package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

const schedulePlanKey = "sentinote:schedule_plan"

type alarmRecord struct {
	RequestCode     int       `json:"request_code"`
	FireTime        time.Time `json:"fire_time"`
	ForcedMessageID string    `json:"forced_message_id,omitempty"`
	TaskName        string    `json:"task_name,omitempty"`
}

type planRecord struct {
	RunID     string        `json:"run_id"`
	PlannedAt time.Time     `json:"planned_at"`
	Alarms    []alarmRecord `json:"alarms"`
}

type scheduleRepository struct {
	client *redis.Client
}

func NewScheduleRepository(client *redis.Client) domain.ScheduleRepository {
	return &scheduleRepository{
		client: client,
	}
}

func (r *scheduleRepository) SavePlan(ctx context.Context, plan *domain.SchedulePlan) error {
	if plan == nil {
		return ErrInvalidPlanData
	}

	alarms := make([]alarmRecord, 0, len(plan.Alarms))
	for _, a := range plan.Alarms {
		alarms = append(alarms, alarmRecord(a))
	}

	record := planRecord{
		RunID:     plan.RunID,
		PlannedAt: plan.PlannedAt,
		Alarms:    alarms,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidPlanData
	}

	return r.client.Set(ctx, schedulePlanKey, data, 0).Err()
}

func (r *scheduleRepository) LoadPlan(ctx context.Context) (*domain.SchedulePlan, error) {
	data, err := r.client.Get(ctx, schedulePlanKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	var record planRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidPlanData
	}

	alarms := make([]domain.RegisteredAlarm, 0, len(record.Alarms))
	for _, a := range record.Alarms {
		alarms = append(alarms, domain.RegisteredAlarm(a))
	}

	return &domain.SchedulePlan{
		RunID:     record.RunID,
		PlannedAt: record.PlannedAt,
		Alarms:    alarms,
	}, nil
}

func (r *scheduleRepository) ClearPlan(ctx context.Context) error {
	return r.client.Del(ctx, schedulePlanKey).Err()
}

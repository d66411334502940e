//go:build gcloud

package deliveryrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

type planningPassRow struct {
	RecordedAt       time.Time `bigquery:"recorded_at"`
	RunID            string    `bigquery:"run_id"`
	PlannedAt        time.Time `bigquery:"planned_at"`
	GenericCount     int64     `bigquery:"generic_count"`
	OverrideCount    int64     `bigquery:"override_count"`
	DroppedOverrides int64     `bigquery:"dropped_overrides"`
	RegisteredCount  int64     `bigquery:"registered_count"`
	FailedCount      int64     `bigquery:"failed_count"`
	CancelledCount   int64     `bigquery:"cancelled_count"`
}

type deliveryRow struct {
	RecordedAt  time.Time `bigquery:"recorded_at"`
	RunID       string    `bigquery:"run_id"`
	FiredAt     time.Time `bigquery:"fired_at"`
	RequestCode int64     `bigquery:"request_code"`
	MessageID   string    `bigquery:"message_id"`
	Forced      bool      `bigquery:"forced"`
	Outcome     string    `bigquery:"outcome"`
	SkipReason  string    `bigquery:"skip_reason"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, delivery recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, delivery recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "delivery recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordPlanningPass(ctx context.Context, record domain.PlanningPassRecord) error {
	row := &planningPassRow{
		RecordedAt:       time.Now(),
		RunID:            record.RunID,
		PlannedAt:        record.PlannedAt,
		GenericCount:     int64(record.GenericCount),
		OverrideCount:    int64(record.OverrideCount),
		DroppedOverrides: int64(record.DroppedOverrides),
		RegisteredCount:  int64(record.RegisteredCount),
		FailedCount:      int64(record.FailedCount),
		CancelledCount:   int64(record.CancelledCount),
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert planning pass to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordDelivery(ctx context.Context, record domain.DeliveryRecord) error {
	row := &deliveryRow{
		RecordedAt:  time.Now(),
		RunID:       record.RunID,
		FiredAt:     record.FiredAt,
		RequestCode: int64(record.RequestCode),
		MessageID:   record.MessageID,
		Forced:      record.Forced,
		Outcome:     record.Outcome,
		SkipReason:  record.SkipReason,
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert delivery to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("request_code", record.RequestCode),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

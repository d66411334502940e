//go:build !gcloud

package deliveryrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, delivery recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "delivery recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordPlanningPass(ctx context.Context, record domain.PlanningPassRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		"planning_pass",
		map[string]string{
			"run_id": runID,
		},
		map[string]any{
			"generic_count":     record.GenericCount,
			"override_count":    record.OverrideCount,
			"dropped_overrides": record.DroppedOverrides,
			"registered_count":  record.RegisteredCount,
			"failed_count":      record.FailedCount,
			"cancelled_count":   record.CancelledCount,
			"planned_unix":      record.PlannedAt.Unix(),
		},
		time.Now(),
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write planning pass to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", runID),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordDelivery(ctx context.Context, record domain.DeliveryRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		"delivery",
		map[string]string{
			"run_id":  runID,
			"outcome": record.Outcome,
		},
		map[string]any{
			"request_code": record.RequestCode,
			"message_id":   record.MessageID,
			"forced":       record.Forced,
			"skip_reason":  record.SkipReason,
			"fired_unix":   record.FiredAt.Unix(),
		},
		time.Now(),
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write delivery to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("request_code", record.RequestCode),
		)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

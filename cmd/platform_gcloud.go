//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/config"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/infra/alarmqueue"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/logging"
)

func initAlarmQueue(ctx context.Context, cfg *config.Config) (alarmqueue.AlarmQueue, *alarmqueue.LocalQueue, func() error, error) {
	cloudTasksClient, err := alarmqueue.NewCloudTasksClient(ctx, alarmqueue.CloudTasksConfig{
		ProjectID:  cfg.AlarmQueue.GCloudProjectID,
		LocationID: cfg.AlarmQueue.GCloudLocationID,
		QueueID:    cfg.AlarmQueue.GCloudQueueID,
		TargetURL:  cfg.AlarmQueue.GCloudTargetURL,
		MaxRetries: cfg.AlarmQueue.MaxRetries,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	slog.Info("alarm queue initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.AlarmQueue.GCloudProjectID),
		slog.String("location", cfg.AlarmQueue.GCloudLocationID),
		slog.String("queue", cfg.AlarmQueue.GCloudQueueID),
	)

	cleanup := func() error {
		if err := cloudTasksClient.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return cloudTasksClient, nil, cleanup, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "scheduling"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("notification-scheduling"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}

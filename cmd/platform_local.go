//go:build !gcloud

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

func initAlarmQueue(_ context.Context, cfg *config.Config) (alarmqueue.AlarmQueue, *alarmqueue.LocalQueue, func() error, error) {
	if cfg.AlarmQueue.TasksURL != "" {
		aq := alarmqueue.NewTasksClient(
			cfg.AlarmQueue.TasksURL,
			cfg.AlarmQueue.QueueName,
			cfg.AlarmQueue.MaxRetries,
		)

		slog.Info("alarm queue initialized",
			slog.String("type", "http_tasks"),
			slog.String("url", cfg.AlarmQueue.TasksURL),
			slog.String("queue", cfg.AlarmQueue.QueueName),
		)

		return aq, nil, nil, nil
	}

	local := alarmqueue.NewLocalQueue()

	slog.Info("alarm queue initialized",
		slog.String("type", "local_timers"),
	)

	cleanup := func() error {
		local.Close()
		return nil
	}

	return local, local, cleanup, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "scheduling"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("notification-scheduling"),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port               string
	LogLevel           slog.Level
	ConfigSourceURL    string
	ConfigFetchTimeout time.Duration
	SyncInterval       time.Duration
	AlarmQueue         AlarmQueueConfig
	Redis              *RedisConfig
	Schedule           *ScheduleSettings
}

type AlarmQueueConfig struct {
	TasksURL  string
	QueueName string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

const (
	defaultConfigFetchTimeoutSeconds = 10
	defaultSyncIntervalMinutes       = 360
)

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("ALARM_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv("ALARM_TASKS_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	fetchTimeout := defaultConfigFetchTimeoutSeconds
	if v := os.Getenv("CONFIG_FETCH_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			fetchTimeout = parsed
		}
	}

	syncInterval := defaultSyncIntervalMinutes
	if v := os.Getenv("SCHEDULE_SYNC_INTERVAL_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			syncInterval = parsed
		}
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	scheduleSettings, err := LoadScheduleSettings()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:               port,
		LogLevel:           parseLogLevel(os.Getenv("LOG_LEVEL")),
		ConfigSourceURL:    os.Getenv("CONFIG_SOURCE_URL"),
		ConfigFetchTimeout: time.Duration(fetchTimeout) * time.Second,
		SyncInterval:       time.Duration(syncInterval) * time.Minute,
		AlarmQueue: AlarmQueueConfig{
			TasksURL:  os.Getenv("ALARM_TASKS_URL"),
			QueueName: queueName,

			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

			MaxRetries: maxRetries,
		},
		Redis:    redisConfig,
		Schedule: scheduleSettings,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

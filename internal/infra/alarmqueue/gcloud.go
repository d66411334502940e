//go:build gcloud

package alarmqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksClient{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksClient) RegisterExact(ctx context.Context, task *AlarmTask) (*AlarmResponse, error) {
	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		c.projectID, c.locationID, c.queueID)

	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alarm task: %w", err)
	}

	cloudTask := &taskspb.Task{
		Name: c.taskPath(task.RequestCode),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
	}

	if !task.FireAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.FireAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   cloudTask,
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying alarm registration",
				slog.Int("request_code", task.RequestCode),
				slog.String("run_id", task.RunID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.createTask(ctx, req, task)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for alarm registration",
		slog.Int("request_code", task.RequestCode),
		slog.String("run_id", task.RunID),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("failed to register alarm after %d retries: %w", c.maxRetries, lastErr)
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, task *AlarmTask) (*AlarmResponse, error) {
	slog.Debug("registering alarm to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.Int("request_code", task.RequestCode),
		slog.Time("fire_at", task.FireAt),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		slog.Warn("failed to create cloud task",
			slog.Int("request_code", task.RequestCode),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.Info("alarm registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.Int("request_code", task.RequestCode),
		slog.Time("fire_at", task.FireAt),
	)

	var scheduleTime, createTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &AlarmResponse{
		Name:         createdTask.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *CloudTasksClient) Cancel(ctx context.Context, requestCode int) error {
	taskPath := c.taskPath(requestCode)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.Debug("retrying alarm cancellation",
				slog.Int("request_code", requestCode),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := c.deleteTask(ctx, taskPath, requestCode)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.Error("all retries exhausted for alarm cancellation",
		slog.Int("request_code", requestCode),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("failed to cancel alarm after %d retries: %w", c.maxRetries, lastErr)
}

func (c *CloudTasksClient) deleteTask(ctx context.Context, taskPath string, requestCode int) error {
	slog.Debug("deleting alarm task from Cloud Tasks",
		slog.String("task_path", taskPath),
		slog.Int("request_code", requestCode),
	)

	req := &taskspb.DeleteTaskRequest{
		Name: taskPath,
	}

	err := c.client.DeleteTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			slog.Info("alarm task not found in Cloud Tasks (may have fired already)",
				slog.Int("request_code", requestCode),
			)
			return nil
		}

		slog.Warn("failed to delete cloud task",
			slog.Int("request_code", requestCode),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete cloud task: %w", err)
	}

	slog.Info("alarm task deleted from Cloud Tasks",
		slog.Int("request_code", requestCode),
	)
	return nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}

func (c *CloudTasksClient) taskPath(requestCode int) string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s/tasks/alarm-%d",
		c.projectID, c.locationID, c.queueID, requestCode)
}

//go:build !gcloud

package alarmqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"
)

// TasksClient registers alarms against an HTTP tasks endpoint that
// delivers the encoded body back to this service at the scheduled time.
type TasksClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewTasksClient(baseURL, queueName string, maxRetries int) *TasksClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &TasksClient{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *TasksClient) RegisterExact(ctx context.Context, task *AlarmTask) (*AlarmResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alarm task: %w", err)
	}

	encodedBody := base64.StdEncoding.EncodeToString(payload)

	tasksReq := tasksRequest{
		Task: tasksTask{
			Name: task.TaskName(),
			HTTPRequest: tasksHTTPRequest{
				Body: encodedBody,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}

	if !task.FireAt.IsZero() {
		tasksReq.Task.ScheduleTime = task.FireAt.Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(tasksReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks request: %w", err)
	}

	url := c.tasksURL()

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

		resp, err := c.doRegister(ctx, url, reqBody, task)
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

func (c *TasksClient) doRegister(ctx context.Context, url string, reqBody []byte, task *AlarmTask) (*AlarmResponse, error) {
	slog.Debug("registering alarm to tasks endpoint",
		slog.String("url", url),
		slog.Int("request_code", task.RequestCode),
		slog.Time("fire_at", task.FireAt),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to send request to tasks endpoint",
			slog.Int("request_code", task.RequestCode),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.Warn("unexpected status code from tasks endpoint",
			slog.Int("request_code", task.RequestCode),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var tasksResp tasksResponse
	if err := json.NewDecoder(resp.Body).Decode(&tasksResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, tasksResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, tasksResp.CreateTime)

	slog.Info("alarm registered to tasks endpoint",
		slog.String("task_name", tasksResp.Name),
		slog.Int("request_code", task.RequestCode),
		slog.Time("fire_at", task.FireAt),
	)

	return &AlarmResponse{
		Name:         tasksResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *TasksClient) Cancel(ctx context.Context, requestCode int) error {
	url := fmt.Sprintf("%s/alarm-%d", c.tasksURL(), requestCode)

	slog.Debug("cancelling alarm at tasks endpoint",
		slog.String("url", url),
		slog.Int("request_code", requestCode),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("failed to send cancel request to tasks endpoint",
			slog.Int("request_code", requestCode),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		slog.Info("alarm not found at tasks endpoint (may have fired already)",
			slog.Int("request_code", requestCode),
		)
		return nil
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	slog.Info("alarm cancelled at tasks endpoint",
		slog.Int("request_code", requestCode),
	)
	return nil
}

func (c *TasksClient) tasksURL() string {
	if c.queueName != "" && c.queueName != "default" {
		return fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}
	return fmt.Sprintf("%s/tasks", c.baseURL)
}

package configsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/domain"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/tracing"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(baseURL),
	}
}

type sentencePayload struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	IsQuote  bool   `json:"is_quote"`
	Context  string `json:"context,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

type overridePayload struct {
	Time      string `json:"time"`
	MessageID string `json:"message_id,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

type configPayload struct {
	Enabled     bool              `json:"enabled"`
	StartHour   int               `json:"start_hour"`
	EndHour     int               `json:"end_hour"`
	TimesPerDay int               `json:"times_per_day"`
	Sentences   []sentencePayload `json:"sentences"`
	Overrides   []overridePayload `json:"overrides"`
}

func (c *Client) Fetch(ctx context.Context) (*domain.ScheduleConfig, error) {
	ctx, span := tracing.StartConfigFetchSpan(ctx, c.baseURL)
	defer span.End()

	cfg, err := c.fetch(ctx)
	if err != nil {
		tracing.RecordConfigFetchResult(span, 0, 0, err)
		return nil, err
	}

	tracing.RecordConfigFetchResult(span, len(cfg.Sentences), len(cfg.Overrides), nil)
	return cfg, nil
}

func (c *Client) fetch(ctx context.Context) (*domain.ScheduleConfig, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = "/api/v1/schedule-config"

	slog.DebugContext(ctx, "fetching schedule config",
		slog.String("url", u.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to config source",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from config source",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload configPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to decode config document",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	cfg := payloadToConfig(&payload)

	slog.DebugContext(ctx, "fetched schedule config",
		slog.Bool("enabled", cfg.Enabled),
		slog.Int("sentence_count", len(cfg.Sentences)),
		slog.Int("override_count", len(cfg.Overrides)),
	)

	return cfg, nil
}

func payloadToConfig(payload *configPayload) *domain.ScheduleConfig {
	sentences := make([]domain.Sentence, 0, len(payload.Sentences))
	for _, s := range payload.Sentences {
		sentences = append(sentences, domain.Sentence(s))
	}
	overrides := make([]domain.Override, 0, len(payload.Overrides))
	for _, o := range payload.Overrides {
		overrides = append(overrides, domain.Override(o))
	}

	return &domain.ScheduleConfig{
		Enabled:     payload.Enabled,
		StartHour:   payload.StartHour,
		EndHour:     payload.EndHour,
		TimesPerDay: payload.TimesPerDay,
		Sentences:   sentences,
		Overrides:   overrides,
	}
}

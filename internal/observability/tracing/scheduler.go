package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const schedulerTracerName = "github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/planner"

func SchedulerTracer() trace.Tracer {
	return otel.Tracer(schedulerTracerName)
}

func StartPlanningPassSpan(ctx context.Context, runID string, now time.Time) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "scheduler.planning_pass",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("planning.now", now.Format(time.RFC3339)),
		),
	)
}

func StartDeliverySpan(ctx context.Context, requestCode int, forcedMessageID string) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "scheduler.delivery",
		trace.WithAttributes(
			attribute.Int("request_code", requestCode),
			attribute.Bool("forced", forcedMessageID != ""),
		),
	)
}

func StartConfigFetchSpan(ctx context.Context, url string) (context.Context, trace.Span) {
	return SchedulerTracer().Start(ctx, "scheduler.config_fetch",
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordConfigFetchResult(span trace.Span, sentenceCount, overrideCount int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(
		attribute.Int("config.sentence_count", sentenceCount),
		attribute.Int("config.override_count", overrideCount),
	)
	span.SetStatus(codes.Ok, "")
}

func RecordPlanningPassResult(span trace.Span, genericCount, overrideCount, droppedCount, cancelledCount int, err error) {
	span.SetAttributes(
		attribute.Int("planning.generic_count", genericCount),
		attribute.Int("planning.override_count", overrideCount),
		attribute.Int("planning.dropped_overrides", droppedCount),
		attribute.Int("planning.cancelled_count", cancelledCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordDeliveryResult(span trace.Span, messageID, outcome string, err error) {
	span.SetAttributes(
		attribute.String("delivery.message_id", messageID),
		attribute.String("delivery.outcome", outcome),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/logging"
)

type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	GCPProjectID  string
	SamplingRate  float64
	DefaultModule logging.Module
	LogLevel      slog.Level
}

// Resources holds the process-wide observability handles created by
// Init. Shutdown flushes and releases them.
type Resources struct {
	logger         *slog.Logger
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	if r.tracerProvider != nil {
		if err := r.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if r.meterProvider != nil {
		if err := r.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Init wires logging, tracing, and metrics for the process. Exporters
// are platform-specific; when none is configured the providers stay
// unset and instrumentation becomes a no-op.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceInfo.Name),
		semconv.ServiceVersion(cfg.ServiceInfo.Version),
	))
	if err != nil {
		return nil, err
	}

	resources := &Resources{
		logger: logging.NewLogger(logging.Options{
			Environment:   cfg.Environment,
			Level:         cfg.LogLevel,
			Service:       cfg.ServiceInfo,
			GCPProjectID:  cfg.GCPProjectID,
			DefaultModule: cfg.DefaultModule,
		}),
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	traceExporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if traceExporter != nil {
		samplingRate := cfg.SamplingRate
		if samplingRate <= 0 {
			samplingRate = 1.0
		}
		resources.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(samplingRate))),
		)
		otel.SetTracerProvider(resources.tracerProvider)
	}

	metricExporter, err := newMetricExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if metricExporter != nil {
		resources.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
				sdkmetric.WithInterval(30*time.Second),
			)),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(resources.meterProvider)
	}

	return resources, nil
}

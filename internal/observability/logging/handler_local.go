//go:build !gcloud

package logging

import (
	"context"
	"log/slog"
)

// gcpTraceAttrs is a no-op outside GCP builds. Trace correlation for
// local runs comes from the OTLP exporter instead of log fields.
func gcpTraceAttrs(_ context.Context, _ string) []slog.Attr {
	return nil
}

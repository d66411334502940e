package logging

import (
	"context"
	"log/slog"
	"os"
)

// Environment selects the log output format.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module labels log records with the emitting subsystem.
type Module string

// ServiceInfo identifies the running service in every log record.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Options struct {
	Environment   Environment
	Level         slog.Level
	Service       ServiceInfo
	GCPProjectID  string
	DefaultModule Module
}

// NewLogger builds the process logger: human-readable text in dev,
// JSON elsewhere, with service identity attached and trace correlation
// attrs injected per record where the platform supports it.
func NewLogger(opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: opts.Level,
	}

	var inner slog.Handler
	if opts.Environment == EnvDev {
		inner = slog.NewTextHandler(os.Stdout, handlerOpts)
	} else {
		inner = slog.NewJSONHandler(os.Stdout, handlerOpts)
	}

	handler := &contextHandler{
		Handler:   inner,
		projectID: opts.GCPProjectID,
		module:    opts.DefaultModule,
	}

	logger := slog.New(handler).With(
		slog.String("service", opts.Service.Name),
		slog.String("version", opts.Service.Version),
	)
	if opts.Service.Revision != "" {
		logger = logger.With(slog.String("revision", opts.Service.Revision))
	}
	return logger
}

// contextHandler decorates records with the default module and, on
// platforms that support it, trace correlation attributes taken from
// the request context.
type contextHandler struct {
	slog.Handler
	projectID string
	module    Module
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.module != "" {
		record.AddAttrs(slog.String("module", string(h.module)))
	}
	if attrs := gcpTraceAttrs(ctx, h.projectID); len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		projectID: h.projectID,
		module:    h.module,
	}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		Handler:   h.Handler.WithGroup(name),
		projectID: h.projectID,
		module:    h.module,
	}
}

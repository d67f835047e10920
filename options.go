package saa

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/goldenagents/saa/store"
)

// Option configures a Converter.
type Option func(*options)

type options struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	store  store.Publisher
}

// WithLogger sets a custom logger for the converter.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for builds and publication.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithMeter sets the meter the build counters are created on.
func WithMeter(meter metric.Meter) Option {
	return func(o *options) {
		o.meter = meter
	}
}

// WithStore publishes through p instead of a store opened from the
// configuration. The caller keeps ownership of p.
func WithStore(p store.Publisher) Option {
	return func(o *options) {
		o.store = p
	}
}

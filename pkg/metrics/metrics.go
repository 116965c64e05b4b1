// Package metrics exposes the service's OpenTelemetry instruments, exported
// in the Prometheus format.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "qrvalidator"

// Validation outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// NewMeterProvider returns a meter provider whose readings are registered
// with reg and served by the Prometheus handler of that registry.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Recorder holds the service's instruments. A nil *Recorder records nothing.
type Recorder struct {
	codesDecoded       metric.Int64Counter
	validations        metric.Int64Counter
	validationDuration metric.Float64Histogram
	httpDuration       metric.Float64Histogram
}

// NewRecorder creates the instruments on mp.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	meter := mp.Meter(meterName)

	codesDecoded, err := meter.Int64Counter("qrcode.decoded",
		metric.WithDescription("QR codes found in uploaded files"),
		metric.WithUnit("{code}"))
	if err != nil {
		return nil, fmt.Errorf("could not create counter: %w", err)
	}
	validations, err := meter.Int64Counter("validation.requests",
		metric.WithDescription("Validation calls by outcome"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, fmt.Errorf("could not create counter: %w", err)
	}
	validationDuration, err := meter.Float64Histogram("validation.duration",
		metric.WithDescription("Round trip to the remote validator"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create histogram: %w", err)
	}
	httpDuration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request latency by route"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create histogram: %w", err)
	}

	return &Recorder{
		codesDecoded:       codesDecoded,
		validations:        validations,
		validationDuration: validationDuration,
		httpDuration:       httpDuration,
	}, nil
}

// Nop returns a Recorder backed by a no-op meter provider.
func Nop() *Recorder {
	rec, _ := NewRecorder(noop.NewMeterProvider())

	return rec
}

// CodesDecoded counts n codes found in a file of the given media type.
func (r *Recorder) CodesDecoded(ctx context.Context, mediaType string, n int) {
	if r == nil {
		return
	}
	r.codesDecoded.Add(ctx, int64(n), metric.WithAttributes(attribute.String("media_type", mediaType)))
}

// Validation records one remote validation call.
func (r *Recorder) Validation(ctx context.Context, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	r.validations.Add(ctx, 1, attrs)
	r.validationDuration.Record(ctx, took.Seconds(), attrs)
}

// HTTPRequest records one served request.
func (r *Recorder) HTTPRequest(ctx context.Context, method, route string, status int, took time.Duration) {
	if r == nil {
		return
	}
	r.httpDuration.Record(ctx, took.Seconds(), metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", status),
	))
}

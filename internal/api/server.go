// Package api configures and exposes the HTTP server, routes, metrics and
// related middleware for the QR validation service.
package api

import (
	"fmt"
	"net/http"
	"time"

	"qrvalidator/internal/api/handler/v1handler"
	"qrvalidator/internal/config"
	"qrvalidator/pkg/controller"
	"qrvalidator/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures bearer authentication for the API routes.
	SecHandlerOptions *v1handler.SecHandlerOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds the operational routes (metrics, healthz, pprof)
	// via http.TimeoutHandler. Upload routes are never cut short.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MaxUploadBytes caps multipart bodies.
	MaxUploadBytes int64
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxUploadBytes:    cfg.HTTP.MaxUploadBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

type Deps struct {
	v1handler.Deps

	// Metrics records per-route latency; nil disables it.
	Metrics *metrics.Recorder
	// Gatherer serves MetricsPath; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
}

// NewHandler builds the routed handler, wrapped with CORS and access logging:
// - POST /serpro-cnh-qr/ and POST /detect-qrcode/ behind bearer auth
// - GET /healthz
// - Prometheus metrics at MetricsPath
// - pprof endpoints for profiling
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(controller.WithMetrics(deps.Metrics))

	ops := r.NewRoute().Subrouter()
	if opts.RequestTimeout > 0 {
		ops.Use(func(next http.Handler) http.Handler {
			return http.TimeoutHandler(next, opts.RequestTimeout, `{"status":503,"detail":"request timed out"}`)
		})
	}

	// prometheus metrics server
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	metricsPath := opts.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	ops.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	h := v1handler.New(deps.Deps, v1handler.Options{MaxUploadBytes: opts.MaxUploadBytes})
	ops.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)

	// pprof
	controller.MountPprof(ops)

	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	// the outbound validation call has no deadline of its own, so these
	// routes stay outside the timeout
	v1 := r.NewRoute().Subrouter()
	v1.Use(secHandler.Middleware)
	v1.HandleFunc("/serpro-cnh-qr/", h.SubmitForValidation).Methods(http.MethodPost)
	v1.HandleFunc("/detect-qrcode/", h.DetectQRCode).Methods(http.MethodPost)

	// cors
	handler := controller.WithCORS(r)

	// logger
	handler = controller.WithLogger(handler)

	return handler, nil
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

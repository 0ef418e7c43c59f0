// Package api assembles the HTTP server: v1 routes, the metrics endpoint,
// the served OpenAPI document with its Swagger UI, pprof, and the shared
// middleware chain.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"svgvolume/internal/api/handler/v1handler"
	"svgvolume/internal/config"
	"svgvolume/pkg/controller"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec is the OpenAPI document for version 1 of the API, compiled into
// the binary so the server has no runtime file dependencies.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options configure the HTTP server. Zero-valued timeouts fall through to
// the net/http defaults.
type Options struct {
	// SecHandlerOptions configure bearer authentication for the v1 routes.
	SecHandlerOptions *v1handler.SecHandlerOptions
	// HandlerOptions configure request limits for the v1 routes.
	HandlerOptions v1handler.Options

	// Addr is the listen address, e.g. ":8080".
	Addr string
	// ReadTimeout bounds reading a whole request including its body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout bounds reading the request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration
	// IdleTimeout bounds keep-alive waits between requests.
	IdleTimeout time.Duration
	// RequestTimeout is enforced per request via http.TimeoutHandler.
	RequestTimeout time.Duration
	// MaxHeaderBytes caps the request header size, request line included.
	MaxHeaderBytes int
	// MetricsPath is where the Prometheus handler is mounted.
	MetricsPath string
}

// NewOptions maps the application config onto server Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),
		HandlerOptions:    v1handler.NewOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

// Deps carry the service dependencies the v1 handlers need.
type Deps struct {
	v1handler.Deps
}

// setupMeterProvider registers the OpenTelemetry prometheus exporter on the
// default registry and installs it as the global meter provider.
func setupMeterProvider() error {
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return fmt.Errorf("could not create otel exporter: %w", err)
	}
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)))

	return nil
}

// NewServer builds the fully wired *http.Server: metrics, OpenTelemetry
// exporter, the served spec plus Swagger UI, the v1 routes behind their
// security handler, pprof, and the CORS, access-log and timeout layers.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	mux := http.NewServeMux()

	mux.Handle(opts.MetricsPath, promhttp.Handler())

	if err := setupMeterProvider(); err != nil {
		return nil, err
	}

	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	mux.Handle("/v1/docs/", v5emb.New(
		"SVG Volume Service",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	v1Mux := v1handler.New(deps.Deps, opts.HandlerOptions).Mux(secHandler)
	mux.Handle("/v1/", http.StripPrefix("/v1", v1Mux))

	mux.Handle("/debug/pprof/", controller.PprofMux())

	handler := controller.WithLogger(controller.WithCORS(mux))

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out"}`),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

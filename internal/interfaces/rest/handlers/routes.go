package handlers

import (
	"net/http"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterOptions struct {
	RequestTimeout time.Duration
	// Docs serves the OpenAPI document when set.
	Docs http.HandlerFunc
	// Metrics exposes the counters at /metrics when set.
	Metrics MetricsReader
}

// Routes builds the gateway router. Payment routes run under the request timeout;
// health, metrics and docs do not.
func (h *Handlers) Routes(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logging(h.logger))
	r.Use(middleware.Recovery(h.logger))

	r.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(opts.RequestTimeout))
		}
		r.Post("/payments", h.HandlePostPayment)
		r.Get("/payments/{id}", h.HandleGetPayment)
	})

	r.Get("/health", h.HandleHealth)
	if opts.Metrics != nil {
		r.Get("/metrics", h.HandleMetrics(opts.Metrics))
	}
	if opts.Docs != nil {
		r.Get("/docs/v1/openapi.json", opts.Docs)
	}

	return otelhttp.NewHandler(r, "gateway",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
	)
}

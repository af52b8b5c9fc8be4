package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/payments-gateway/internal/health"
	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest"
	"github.com/DanielPopoola/payments-gateway/internal/observability"
)

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	result := h.health.Check(r.Context())

	status := http.StatusOK
	if result.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}

// MetricsReader reads back the counters the gateway exports over OTLP.
type MetricsReader interface {
	Snapshot(ctx context.Context) (observability.Snapshot, error)
}

// HandleMetrics serves the current counter values as JSON.
func (h *Handlers) HandleMetrics(reader MetricsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := reader.Snapshot(r.Context())
		if err != nil {
			rest.WriteError(w, err, h.logger)
			return
		}
		rest.WriteJSON(w, http.StatusOK, snapshot)
	}
}

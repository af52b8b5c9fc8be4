package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest"
)

// TimeoutMessage is returned when a request outlives the router's timeout. An
// authorization whose save was already under way may still be recorded, so the
// caller is pointed at GET /payments/{id} rather than told the payment failed.
const TimeoutMessage = "The request did not complete in time. The payment may still have been recorded."

// Timeout answers 503 with an error envelope once d has elapsed. The handler's
// context is cancelled at the same moment.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	body, err := json.Marshal(rest.APIResponse{
		Success: false,
		Error: &rest.ErrorDetail{
			Type:    application.ErrorTypeInternal,
			Message: TimeoutMessage,
		},
	})
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		timeoutHandler := http.TimeoutHandler(next, d, string(body))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// http.TimeoutHandler does not copy the handler's headers onto its
			// own 503, so the content type is set on the outer writer.
			w.Header().Set("Content-Type", "application/json")
			timeoutHandler.ServeHTTP(w, r)
		})
	}
}

package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/payments-gateway/internal/application"
)

type APIResponse struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Type      application.ErrorType `json:"type"`
	Message   string                `json:"message"`
	ParamName string                `json:"paramName,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

// WriteError maps application errors to HTTP responses. Internal causes are logged,
// never written to the client.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)
	errorType := application.ToErrorType(err)
	svcErr := application.ToServiceError(err)

	switch {
	case application.IsOrphanedAuthorization(err):
		logger.Error("authorized payment was not recorded", "status", statusCode, "error", err)
	case application.IsAuthorizerFault(err):
		logger.Warn("bank gave no decision", "status", statusCode, "error", err)
	case errorType == application.ErrorTypeInternal:
		logger.Error("request failed", "fault", svcErr.Fault, "status", statusCode, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error: &ErrorDetail{
			Type:      errorType,
			Message:   svcErr.Message,
			ParamName: svcErr.Field,
		},
	})
}

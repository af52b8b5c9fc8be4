package bank

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const missingFieldsMessage = "Not all required properties were sent in the request"

// Simulator is a stand-in acquiring bank for local runs and tests. The last
// digit of the card number decides the outcome: odd authorizes, even
// declines and zero answers 503.
type Simulator struct {
	logger *slog.Logger
}

func NewSimulator(logger *slog.Logger) *Simulator {
	return &Simulator{logger: logger}
}

type simulatorRequest struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     *int64 `json:"amount"`
	CVV        string `json:"cvv"`
}

func (r simulatorRequest) complete() bool {
	return r.CardNumber != "" && r.ExpiryDate != "" && r.Currency != "" && r.Amount != nil && r.CVV != ""
}

func (s *Simulator) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/payments", s.authorize)
	return r
}

func (s *Simulator) authorize(w http.ResponseWriter, r *http.Request) {
	var req simulatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.complete() {
		s.writeJSON(w, http.StatusBadRequest, BankErrorResponse{ErrorMessage: missingFieldsMessage})
		return
	}

	last := req.CardNumber[len(req.CardNumber)-1]
	switch {
	case last == '0':
		s.logger.Info("simulating bank outage", "last_digit", string(last))
		w.WriteHeader(http.StatusServiceUnavailable)
	case last >= '0' && last <= '9' && (last-'0')%2 == 1:
		s.writeJSON(w, http.StatusOK, AuthorizationResponse{
			Authorized:        true,
			AuthorizationCode: uuid.NewString(),
		})
	default:
		s.writeJSON(w, http.StatusOK, AuthorizationResponse{Authorized: false})
	}
}

func (s *Simulator) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode simulator response", "error", err)
	}
}

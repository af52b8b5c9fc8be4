package handlers

import (
	"net/http"

	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest"
	"github.com/go-chi/chi/v5"
)

// HandlePostPayment validates the body, runs the authorization and returns the recorded payment.
func (h *Handlers) HandlePostPayment(w http.ResponseWriter, r *http.Request) {
	var req rest.AuthorizeRequest
	if err := rest.DecodeAndValidate(r, h.validate, &req); err != nil {
		h.metrics.ValidationFailed(r.Context())
		rest.WriteError(w, err, h.logger)
		return
	}

	payment, err := h.authService.Authorize(r.Context(), req.ToCommand())
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToPaymentResponse(payment))
}

func (h *Handlers) HandleGetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.logger.Info("retrieving payment", "payment_id", id)

	payment, err := h.queryService.FindByID(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToPaymentResponse(payment))
}

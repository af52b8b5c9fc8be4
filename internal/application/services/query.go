package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/google/uuid"
)

type QueryService struct {
	store  application.PaymentStore
	logger *slog.Logger
}

func NewQueryService(store application.PaymentStore, logger *slog.Logger) *QueryService {
	return &QueryService{
		store:  store,
		logger: logger,
	}
}

// FindByID returns the recorded payment. Identifiers that are not UUIDs cannot exist
// and are reported as not found without touching the store. Other UUID spellings
// (uppercase, braces, urn:uuid:) are looked up in canonical form.
func (s *QueryService) FindByID(ctx context.Context, rawID string) (*domain.Payment, error) {
	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return nil, application.NewPaymentNotFoundError(domain.ErrPaymentNotFound)
	}
	id := parsed.String()

	payment, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, application.NewPaymentNotFoundError(err)
		}
		if ctx.Err() != nil {
			return nil, application.NewRequestCancelledError(err)
		}
		s.logger.Error("failed to load payment", "payment_id", id, "error", err)
		return nil, application.NewInternalError(err)
	}

	return payment, nil
}

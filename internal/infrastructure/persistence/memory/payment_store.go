// Package memory provides a process-local payment store.
package memory

import (
	"context"
	"sync"

	"github.com/DanielPopoola/payments-gateway/internal/domain"
)

// PaymentStore keeps payments in a map guarded by a RWMutex.
// Stored and returned values are snapshots, so callers never share state with the store.
type PaymentStore struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{payments: make(map[string]*domain.Payment)}
}

func (s *PaymentStore) Create(ctx context.Context, payment *domain.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[payment.ID()]; exists {
		return domain.ErrPaymentAlreadyExists
	}
	s.payments[payment.ID()] = payment.Clone()
	return nil
}

func (s *PaymentStore) Get(ctx context.Context, id string) (*domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return payment.Clone(), nil
}

// Ping always succeeds.
func (s *PaymentStore) Ping(context.Context) error {
	return nil
}

func (s *PaymentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payments)
}

package postgres

import (
	"github.com/DanielPopoola/payments-gateway/internal/domain"
)

// toDomainModel: maps db model to domain entity
func toDomainModel(m PaymentModel) *domain.Payment {
	return domain.Reconstitute(
		m.ID,
		m.DateCreated,
		domain.PaymentStatus(m.Status),
		m.LastFourCardDigits,
		m.ExpiryMonth,
		m.ExpiryYear,
		m.Currency,
		m.Amount,
		m.AuthorizationCode,
	)
}

// toDBModel: maps domain entity to db model
func toDBModel(p *domain.Payment) *PaymentModel {
	return &PaymentModel{
		ID:                 p.ID(),
		DateCreated:        p.DateCreated(),
		Status:             string(p.Status()),
		LastFourCardDigits: p.LastFourCardDigits(),
		ExpiryMonth:        p.ExpiryMonth(),
		ExpiryYear:         p.ExpiryYear(),
		Currency:           p.Currency(),
		Amount:             p.Amount(),
		AuthorizationCode:  p.AuthorizationCode(),
	}
}

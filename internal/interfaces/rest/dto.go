package rest

import (
	"github.com/DanielPopoola/payments-gateway/internal/application/services"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
)

// AuthorizeRequest uses pointers so that a missing field can be told apart from a zero value.
type AuthorizeRequest struct {
	CardNumber  *string `json:"cardNumber" validate:"required"`
	ExpiryMonth *int    `json:"expiryMonth" validate:"required"`
	ExpiryYear  *int    `json:"expiryYear" validate:"required"`
	Currency    *string `json:"currency" validate:"required"`
	Amount      *int64  `json:"amount" validate:"required"`
	CVV         *string `json:"cvv" validate:"required"`
}

// ToCommand must only be called after the request passed validation.
func (r AuthorizeRequest) ToCommand() services.AuthorizeCommand {
	return services.AuthorizeCommand{
		CardNumber:  *r.CardNumber,
		ExpiryMonth: *r.ExpiryMonth,
		ExpiryYear:  *r.ExpiryYear,
		Currency:    *r.Currency,
		Amount:      *r.Amount,
		CVV:         *r.CVV,
	}
}

type PaymentResponse struct {
	ID                 string               `json:"id"`
	Status             domain.PaymentStatus `json:"status"`
	LastFourCardDigits string               `json:"lastFourCardDigits"`
	ExpiryMonth        int                  `json:"expiryMonth"`
	ExpiryYear         int                  `json:"expiryYear"`
	Currency           string               `json:"currency"`
	Amount             int64                `json:"amount"`
}

func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID(),
		Status:             p.Status(),
		LastFourCardDigits: p.LastFourCardDigits(),
		ExpiryMonth:        p.ExpiryMonth(),
		ExpiryYear:         p.ExpiryYear(),
		Currency:           p.Currency(),
		Amount:             p.Amount(),
	}
}

package services

import "github.com/DanielPopoola/payments-gateway/internal/domain"

type AuthorizeCommand struct {
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	Currency    string
	Amount      int64
	CVV         string
}

func (c AuthorizeCommand) toRequest() domain.PaymentRequest {
	return domain.PaymentRequest{
		CardNumber:  c.CardNumber,
		ExpiryMonth: c.ExpiryMonth,
		ExpiryYear:  c.ExpiryYear,
		Currency:    c.Currency,
		Amount:      c.Amount,
		CVV:         c.CVV,
	}
}

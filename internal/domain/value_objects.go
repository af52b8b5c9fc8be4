package domain

import "fmt"

// PaymentRequest carries the caller supplied card and charge details.
type PaymentRequest struct {
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	Currency    string
	// Amount is expressed in the minor unit of Currency, so £10.50 is 1050.
	Amount int64
	CVV    string
}

// ExpiryDate renders the expiry in the M/YYYY form the authorizer expects.
func (r PaymentRequest) ExpiryDate() string {
	return fmt.Sprintf("%d/%d", r.ExpiryMonth, r.ExpiryYear)
}

// Request field names, as exposed to API callers.
const (
	FieldCardNumber  = "cardNumber"
	FieldExpiryMonth = "expiryMonth"
	FieldExpiryYear  = "expiryYear"
	FieldCurrency    = "currency"
	FieldCVV         = "cvv"
)

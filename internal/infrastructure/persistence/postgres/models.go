package postgres

import (
	"time"
)

// PaymentModel - Database representation
type PaymentModel struct {
	ID                 string
	DateCreated        time.Time
	Status             string
	LastFourCardDigits string
	ExpiryMonth        int
	ExpiryYear         int
	Currency           string
	Amount             int64
	AuthorizationCode  *string
}

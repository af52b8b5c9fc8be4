// Package domain encodes a card payment entity and its attributes
package domain

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// PaymentStatus represents the outcome recorded for a payment
type PaymentStatus string

const (
	StatusDeclined   PaymentStatus = "Declined"
	StatusAuthorized PaymentStatus = "Authorized"
)

const (
	MinCardNumberLength        = 14
	MaxCardNumberLength        = 19
	MinExpiryMonth             = 1
	MaxExpiryMonth             = 12
	RequiredCurrencyCodeLength = 3
	MinCVVLength               = 3
	MaxCVVLength               = 4
	lastFourDigitsLength       = 4
)

// Payment is only built through Create or Reconstitute. The full card number
// and CVV never reach this type.
type Payment struct {
	id                 string
	dateCreated        time.Time
	status             PaymentStatus
	lastFourCardDigits string
	expiryMonth        int
	expiryYear         int
	currency           string
	amount             int64
	authorizationCode  *string
}

// Create validates the request field by field and stops at the first failure.
// currentDate is recorded as the creation date and is the reference point for
// the expiry check.
func Create(req PaymentRequest, currentDate time.Time) (*Payment, error) {
	if err := validateCardNumber(req.CardNumber); err != nil {
		return nil, err
	}
	if err := validateExpiry(req.ExpiryMonth, req.ExpiryYear, currentDate); err != nil {
		return nil, err
	}
	currency, err := validateCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	if err := validateCVV(req.CVV); err != nil {
		return nil, err
	}

	return &Payment{
		id:                 uuid.New().String(),
		dateCreated:        currentDate,
		status:             StatusDeclined,
		lastFourCardDigits: req.CardNumber[len(req.CardNumber)-lastFourDigitsLength:],
		expiryMonth:        req.ExpiryMonth,
		expiryYear:         req.ExpiryYear,
		currency:           currency,
		amount:             req.Amount,
	}, nil
}

func validateCardNumber(cardNumber string) error {
	if cardNumber == "" {
		return NewValidationError(FieldCardNumber, "card number is required")
	}
	if n := utf8.RuneCountInString(cardNumber); n < MinCardNumberLength || n > MaxCardNumberLength {
		return NewLengthRangeError(FieldCardNumber, "card number", MinCardNumberLength, MaxCardNumberLength)
	}
	if !isNumeric(cardNumber) {
		return NewValidationError(FieldCardNumber, "card number must only contain numeric characters")
	}
	return nil
}

func validateExpiry(month, year int, currentDate time.Time) error {
	if month < MinExpiryMonth || month > MaxExpiryMonth {
		return NewValidationError(FieldExpiryMonth, "expiry month must be between 1 and 12")
	}
	expiry := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, currentDate.Location())
	if expiry.Before(currentDate) {
		return NewValidationError(FieldExpiryYear, "card expiry date must not be in the past")
	}
	return nil
}

func validateCurrency(code string) (string, error) {
	if code == "" {
		return "", NewValidationError(FieldCurrency, "currency is required")
	}
	if utf8.RuneCountInString(code) != RequiredCurrencyCodeLength {
		return "", NewValidationError(FieldCurrency, "currency must be exactly 3 characters long")
	}
	canonical, ok := LookupCurrency(code)
	if !ok {
		return "", NewValidationError(FieldCurrency, "currency "+strings.ToUpper(code)+" is not a supported ISO 4217 code")
	}
	return canonical, nil
}

func validateCVV(cvv string) error {
	if cvv == "" {
		return NewValidationError(FieldCVV, "cvv is required")
	}
	if n := utf8.RuneCountInString(cvv); n < MinCVVLength || n > MaxCVVLength {
		return NewLengthRangeError(FieldCVV, "cvv", MinCVVLength, MaxCVVLength)
	}
	if !isNumeric(cvv) {
		return NewValidationError(FieldCVV, "cvv must only contain numeric characters")
	}
	return nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MarkAsAuthorized records the code granted by the authorizer. It succeeds
// once per payment; later calls return ErrInvalidTransition and change nothing.
func (p *Payment) MarkAsAuthorized(authorizationCode string) error {
	if err := p.transition(StatusAuthorized); err != nil {
		return err
	}
	p.authorizationCode = &authorizationCode
	return nil
}

func (p *Payment) transition(target PaymentStatus) error {
	if err := p.canTransitionTo(target); err != nil {
		return err
	}
	p.status = target
	return nil
}

func (p *Payment) canTransitionTo(target PaymentStatus) error {
	switch p.status {
	case StatusDeclined:
		return p.allow(target, StatusAuthorized)
	}
	return NewInvalidTransitionError(p.status, target)
}

func (p *Payment) allow(target PaymentStatus, allowed ...PaymentStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(p.status, target)
}

func (p *Payment) ID() string                 { return p.id }
func (p *Payment) DateCreated() time.Time     { return p.dateCreated }
func (p *Payment) Status() PaymentStatus      { return p.status }
func (p *Payment) LastFourCardDigits() string { return p.lastFourCardDigits }
func (p *Payment) ExpiryMonth() int           { return p.expiryMonth }
func (p *Payment) ExpiryYear() int            { return p.expiryYear }
func (p *Payment) Currency() string           { return p.currency }
func (p *Payment) Amount() int64              { return p.amount }

// AuthorizationCode is nil until the payment has been authorized.
func (p *Payment) AuthorizationCode() *string {
	if p.authorizationCode == nil {
		return nil
	}
	code := *p.authorizationCode
	return &code
}

func (p *Payment) IsAuthorized() bool {
	return p.status == StatusAuthorized
}

// Clone returns an independent copy, used by stores that hand out snapshots.
func (p *Payment) Clone() *Payment {
	clone := *p
	clone.authorizationCode = p.AuthorizationCode()
	return &clone
}

// Reconstitute - Special constructor for loading from a store
func Reconstitute(
	id string,
	dateCreated time.Time,
	status PaymentStatus,
	lastFourCardDigits string,
	expiryMonth, expiryYear int,
	currency string,
	amount int64,
	authorizationCode *string,
) *Payment {
	return &Payment{
		id:                 id,
		dateCreated:        dateCreated,
		status:             status,
		lastFourCardDigits: lastFourCardDigits,
		expiryMonth:        expiryMonth,
		expiryYear:         expiryYear,
		currency:           currency,
		amount:             amount,
		authorizationCode:  authorizationCode,
	}
}

package bank

import (
	"errors"
	"fmt"
)

// ErrorKind classifies what went wrong talking to the bank.
type ErrorKind string

const (
	KindRejected    ErrorKind = "rejected"
	KindUnavailable ErrorKind = "unavailable"
	KindUnexpected  ErrorKind = "unexpected"
)

const unavailableMessage = "Bank is currently unavailable"

type BankError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
}

func (e *BankError) Error() string {
	return fmt.Sprintf("bank error [%s]: %s (status: %d)", e.Kind, e.Message, e.StatusCode)
}

// IsRetryable is true only when the bank told us it did not process the
// request. Timeouts and transport errors are ambiguous and never retried.
func (e *BankError) IsRetryable() bool {
	return e.Kind == KindUnavailable
}

func IsBankError(err error) (*BankError, bool) {
	var bankErr *BankError
	ok := errors.As(err, &bankErr)
	return bankErr, ok
}

package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

// ErrorType is the taxonomy tag returned to API callers.
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION"
	ErrorTypePaymentNotFound ErrorType = "PAYMENT_NOT_FOUND"
	ErrorTypeInternal        ErrorType = "INTERNAL_SERVER_ERROR"
)

// Fault distinguishes internal server errors for logs and metrics. Callers
// only ever see ErrorTypeInternal.
type Fault string

const (
	FaultNone                  Fault = ""
	FaultAuthorizer            Fault = "AUTHORIZER_FAULT"
	FaultOrphanedAuthorization Fault = "ORPHANED_AUTHORIZATION"
	FaultRequestCancelled      Fault = "REQUEST_CANCELLED"
)

type ServiceError struct {
	Type       ErrorType
	Fault      Fault
	Message    string
	Field      string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const notFoundMessage = "The specified payment could not be found."

func NewValidationError(field, message string) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Field:      field,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewPaymentNotFoundError(err error) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypePaymentNotFound,
		Message:    notFoundMessage,
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewAuthorizerFaultError(err error) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeInternal,
		Fault:      FaultAuthorizer,
		Message:    "An error occurred while operating with the bank",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewOrphanedAuthorizationError(err error) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeInternal,
		Fault:      FaultOrphanedAuthorization,
		Message:    "The payment was authorized but could not be recorded",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewRequestCancelledError(err error) *ServiceError {
	return &ServiceError{
		Type:       ErrorTypeInternal,
		Fault:      FaultRequestCancelled,
		Message:    "Request was cancelled before the payment was processed",
		HTTPStatus: http.StatusRequestTimeout,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

func IsAuthorizerFault(err error) bool {
	return ToFault(err) == FaultAuthorizer
}

func IsOrphanedAuthorization(err error) bool {
	return ToFault(err) == FaultOrphanedAuthorization
}

package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/payments-gateway/internal/domain"
)

// ToServiceError lifts domain and context errors into the API taxonomy.
// Anything unrecognised becomes an internal error.
func ToServiceError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr
	}

	if validationErr, ok := domain.IsValidationError(err); ok {
		return NewValidationError(validationErr.Field, validationErr.Message)
	}

	switch {
	case errors.Is(err, domain.ErrPaymentNotFound):
		return NewPaymentNotFoundError(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewRequestCancelledError(err)
	}

	return NewInternalError(err)
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return ToServiceError(err).HTTPStatus
}

// ToErrorType gives the taxonomy tag for API responses
func ToErrorType(err error) ErrorType {
	if err == nil {
		return ""
	}
	return ToServiceError(err).Type
}

// ToFault is FaultNone for errors that are not internal server errors.
func ToFault(err error) Fault {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Fault
	}
	return FaultNone
}

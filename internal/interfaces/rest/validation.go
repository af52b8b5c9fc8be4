package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/go-playground/validator"
)

const maxBodyBytes = 1 << 20

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeAndValidate reads a JSON body into dst and checks its validate tags.
// Every failure is returned as a VALIDATION service error.
func DecodeAndValidate(r *http.Request, v *validator.Validate, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return application.NewValidationError("", "The request body could not be read")
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return application.NewValidationError(typeErr.Field,
				fmt.Sprintf("The %s field has an invalid type", typeErr.Field))
		}
		return application.NewValidationError("", "The request body is not valid JSON")
	}

	if err := v.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return application.NewValidationError(fe.Field(), describe(fe))
		}
		return application.NewInternalError(err)
	}

	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid", fe.Field())
	}
}

package rest_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) (rest.AuthorizeRequest, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(body))

	var dst rest.AuthorizeRequest
	err := rest.DecodeAndValidate(req, rest.NewValidator(), &dst)
	return dst, err
}

func TestDecodeAndValidate(t *testing.T) {
	valid := `{"cardNumber":"2222405343248877","expiryMonth":4,"expiryYear":2035,"currency":"GBP","amount":100,"cvv":"123"}`

	t.Run("complete body decodes", func(t *testing.T) {
		dst, err := decode(t, valid)

		require.NoError(t, err)
		cmd := dst.ToCommand()
		assert.Equal(t, "2222405343248877", cmd.CardNumber)
		assert.Equal(t, 4, cmd.ExpiryMonth)
		assert.Equal(t, int64(100), cmd.Amount)
	})

	t.Run("zero amount counts as present", func(t *testing.T) {
		_, err := decode(t, `{"cardNumber":"2222405343248877","expiryMonth":4,"expiryYear":2035,"currency":"GBP","amount":0,"cvv":"123"}`)

		require.NoError(t, err)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed json", `{"cardNumber":`, ""},
		{"wrong type", `{"expiryMonth":"april"}`, "expiryMonth"},
		{"missing card number", `{"expiryMonth":4,"expiryYear":2035,"currency":"GBP","amount":100,"cvv":"123"}`, "cardNumber"},
		{"missing cvv", `{"cardNumber":"2222405343248877","expiryMonth":4,"expiryYear":2035,"currency":"GBP","amount":100}`, "cvv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.body)

			svcErr, ok := application.IsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, application.ErrorTypeValidation, svcErr.Type)
			assert.Equal(t, tt.field, svcErr.Field)
			assert.Equal(t, http.StatusBadRequest, svcErr.HTTPStatus)
		})
	}
}

func TestWriteError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	t.Run("validation error carries the field", func(t *testing.T) {
		logs.Reset()
		rec := httptest.NewRecorder()

		rest.WriteError(rec, domain.NewValidationError(domain.FieldCVV, "cvv is required"), logger)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body rest.APIResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, application.ErrorTypeValidation, body.Error.Type)
		assert.Equal(t, "cvv", body.Error.ParamName)
		assert.Empty(t, logs.String())
	})

	t.Run("internal cause is logged but not returned", func(t *testing.T) {
		logs.Reset()
		rec := httptest.NewRecorder()

		rest.WriteError(rec, errors.New("connection refused by 10.0.0.7"), logger)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		raw, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "10.0.0.7")
		assert.Contains(t, logs.String(), "10.0.0.7")
	})

	t.Run("faults get their own log line", func(t *testing.T) {
		tests := []struct {
			err   error
			level string
			msg   string
		}{
			{application.NewOrphanedAuthorizationError(errors.New("db down")), "level=ERROR", "authorized payment was not recorded"},
			{application.NewAuthorizerFaultError(errors.New("503")), "level=WARN", "bank gave no decision"},
			{application.NewRequestCancelledError(errors.New("gone")), "level=ERROR", "request failed"},
		}

		for _, tt := range tests {
			logs.Reset()
			rec := httptest.NewRecorder()

			rest.WriteError(rec, tt.err, logger)

			assert.Equal(t, application.ToHTTPStatus(tt.err), rec.Code)
			assert.Contains(t, logs.String(), tt.level)
			assert.Contains(t, logs.String(), tt.msg)
		}
	})
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	rest.WriteJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":"abc"}}`, rec.Body.String())
}

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/health"
	"github.com/DanielPopoola/payments-gateway/internal/interfaces/rest"
	"github.com/DanielPopoola/payments-gateway/internal/tests/e2e/testdata"
	"github.com/stretchr/testify/require"
)

// TestClient wraps HTTP calls to a running gateway.
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// envelope mirrors rest.APIResponse with a typed payload.
type envelope[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   *rest.ErrorDetail `json:"error"`
}

// APIError is returned for any non-2xx answer.
type APIError struct {
	StatusCode int
	Detail     rest.ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s %s", e.StatusCode, e.Detail.Type, e.Detail.Message)
}

func RequestFor(card testdata.TestCard, currency string, amount int64) map[string]any {
	return map[string]any{
		"cardNumber":  card.CardNumber,
		"expiryMonth": card.ExpiryMonth,
		"expiryYear":  card.ExpiryYear,
		"currency":    currency,
		"amount":      amount,
		"cvv":         card.CVV,
	}
}

// Authorize calls POST /payments.
func (c *TestClient) Authorize(t *testing.T, body map[string]any) (*rest.PaymentResponse, error) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/payments", bytes.NewReader(payload))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")

	return do[rest.PaymentResponse](t, c.httpClient, httpReq)
}

// GetPayment calls GET /payments/{id}.
func (c *TestClient) GetPayment(t *testing.T, id string) (*rest.PaymentResponse, error) {
	t.Helper()

	httpReq, err := http.NewRequest(http.MethodGet, c.baseURL+"/payments/"+id, nil)
	require.NoError(t, err)

	return do[rest.PaymentResponse](t, c.httpClient, httpReq)
}

// Health returns the decoded health report and the HTTP status it came with.
func (c *TestClient) Health(t *testing.T) (health.Result, int, error) {
	t.Helper()

	resp, err := c.httpClient.Get(c.baseURL + "/health")
	if err != nil {
		return health.Result{}, 0, err
	}
	defer resp.Body.Close()

	var result health.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result, resp.StatusCode, nil
}

func do[T any](t *testing.T, client *http.Client, req *http.Request) (*T, error) {
	t.Helper()

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope[T]
	require.NoError(t, json.Unmarshal(bodyBytes, &env), "body: %s", bodyBytes)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Detail = *env.Error
		}
		return nil, apiErr
	}

	return &env.Data, nil
}

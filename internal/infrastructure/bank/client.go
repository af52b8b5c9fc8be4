package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type HTTPBankClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBankClient(cfg config.BankConfig) *HTTPBankClient {
	return &HTTPBankClient{
		baseURL: strings.TrimRight(cfg.Address, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.ConnTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var _ application.Authorizer = (*HTTPBankClient)(nil)

func (c *HTTPBankClient) Authorize(ctx context.Context, req application.AuthorizationRequest) (*application.AuthorizationResponse, error) {
	url := fmt.Sprintf("%s/payments", c.baseURL)
	body := AuthorizationRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		Currency:   req.Currency,
		Amount:     req.Amount,
		CVV:        req.CVV,
	}

	resp, err := sendRequest[AuthorizationRequest, AuthorizationResponse](c, ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}

	return &application.AuthorizationResponse{
		Authorized:        resp.Authorized,
		AuthorizationCode: resp.AuthorizationCode,
	}, nil
}

// HealthCheck reports whether the bank answers its root endpoint with a 2xx.
func (c *HTTPBankClient) HealthCheck(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func sendRequest[Req any, Resp any](c *HTTPBankClient, ctx context.Context, method, url string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		body, _ := io.ReadAll(resp.Body)
		var bankErrResp BankErrorResponse
		if err := json.Unmarshal(body, &bankErrResp); err != nil || bankErrResp.ErrorMessage == "" {
			return nil, &BankError{
				Kind:       KindRejected,
				Message:    strings.TrimSpace(string(body)),
				StatusCode: resp.StatusCode,
			}
		}
		return nil, &BankError{
			Kind:       KindRejected,
			Message:    bankErrResp.ErrorMessage,
			StatusCode: resp.StatusCode,
		}
	case http.StatusServiceUnavailable:
		return nil, &BankError{
			Kind:       KindUnavailable,
			Message:    unavailableMessage,
			StatusCode: resp.StatusCode,
		}
	default:
		return nil, &BankError{
			Kind:       KindUnexpected,
			Message:    fmt.Sprintf("Received an unsupported status code %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var bankResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&bankResp); err != nil {
		return nil, &BankError{
			Kind:       KindUnexpected,
			Message:    fmt.Sprintf("error decoding json response: %v", err),
			StatusCode: resp.StatusCode,
		}
	}

	return &bankResp, nil
}

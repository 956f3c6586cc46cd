// Package payment provides a client for a card-charge payment gateway.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/summitraffle/summitraffle/internal/logger"
)

// Charge statuses reported by the gateway
const (
	StatusSucceeded = "succeeded"
	StatusDeclined  = "declined"
	StatusPending   = "pending"
)

// ChargeRequest describes a card charge. The IdempotencyKey is supplied by
// the caller and guarantees a retried request produces one charge.
type ChargeRequest struct {
	Amount         int64
	Currency       string
	CardToken      string
	Description    string
	IdempotencyKey string
}

// Charge is the gateway's record of a charge
type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// Client defines the interface for payment operations
type Client interface {
	// Charge submits a card charge and returns its outcome
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)
	// GetCharge retrieves an existing charge by id
	GetCharge(ctx context.Context, id string) (*Charge, error)
}

// HTTPClient is a real HTTP client for the payment gateway
type HTTPClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        logger.Logger
}

// NewHTTPClient creates a new payment gateway client
func NewHTTPClient(baseURL, secretKey string, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// NewHTTPClientWithHTTPClient creates a payment client with a custom http.Client
func NewHTTPClientWithHTTPClient(baseURL, secretKey string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: httpClient,
		log:        log,
	}
}

// Charge submits a card charge and returns its outcome
func (c *HTTPClient) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	params := url.Values{}
	params.Set("amount", fmt.Sprintf("%d", req.Amount))
	params.Set("currency", req.Currency)
	params.Set("source", req.CardToken)
	params.Set("description", req.Description)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/charges", strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	return c.do(httpReq)
}

// GetCharge retrieves an existing charge by id
func (c *HTTPClient) GetCharge(ctx context.Context, id string) (*Charge, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/charges/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.do(httpReq)
}

// do executes the request and handles common error checking
func (c *HTTPClient) do(req *http.Request) (*Charge, error) {
	c.log.Debug("Payment gateway request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("Payment gateway response", "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		// Error bodies carry a message field; surface it when present
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("payment gateway error: %s", errResp.Error.Message)
		}
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var charge Charge
	if err := json.Unmarshal(body, &charge); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &charge, nil
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

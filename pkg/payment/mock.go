package payment

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a mock payment client for testing
type MockClient struct {
	mu        sync.Mutex
	charges   map[string]*Charge
	byKey     map[string]*Charge // idempotency key -> charge
	chargeErr error
	decline   bool
	nextID    int
	Requests  []ChargeRequest
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithChargeError sets an error to return from Charge
func WithChargeError(err error) MockOption {
	return func(m *MockClient) {
		m.chargeErr = err
	}
}

// WithDecline makes every charge come back declined
func WithDecline() MockOption {
	return func(m *MockClient) {
		m.decline = true
	}
}

// NewMockClient creates a new mock payment client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		charges: make(map[string]*Charge),
		byKey:   make(map[string]*Charge),
		nextID:  1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Charge records the request and returns a confirmed (or declined) charge.
// Requests reusing an idempotency key return the original charge.
func (m *MockClient) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if m.chargeErr != nil {
		return nil, m.chargeErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)

	if req.IdempotencyKey != "" {
		if existing, ok := m.byKey[req.IdempotencyKey]; ok {
			return existing, nil
		}
	}

	status := StatusSucceeded
	if m.decline {
		status = StatusDeclined
	}
	charge := &Charge{
		ID:       fmt.Sprintf("ch_mock_%d", m.nextID),
		Amount:   req.Amount,
		Currency: req.Currency,
		Status:   status,
	}
	m.nextID++
	m.charges[charge.ID] = charge
	if req.IdempotencyKey != "" {
		m.byKey[req.IdempotencyKey] = charge
	}
	return charge, nil
}

// GetCharge retrieves a previously created mock charge
func (m *MockClient) GetCharge(ctx context.Context, id string) (*Charge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	charge, ok := m.charges[id]
	if !ok {
		return nil, fmt.Errorf("charge %s not found", id)
	}
	return charge, nil
}

// ChargeCount returns how many charges were created
func (m *MockClient) ChargeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.charges)
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)

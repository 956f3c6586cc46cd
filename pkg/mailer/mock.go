package mailer

import (
	"context"
	"sync"
)

// SentMail records one delivered message
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// MockMailer is a mock mailer for testing
type MockMailer struct {
	mu      sync.Mutex
	sent    []SentMail
	sendErr error
}

// MockOption configures the mock mailer
type MockOption func(*MockMailer)

// WithSendError sets an error to return from Send
func WithSendError(err error) MockOption {
	return func(m *MockMailer) {
		m.sendErr = err
	}
}

// NewMockMailer creates a new mock mailer
func NewMockMailer(opts ...MockOption) *MockMailer {
	m := &MockMailer{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send records the message instead of delivering it
func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// Sent returns a copy of all recorded messages
func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Ensure MockMailer implements Mailer
var _ Mailer = (*MockMailer)(nil)

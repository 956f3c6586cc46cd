package services

import (
	"fmt"
	"strings"
)

// Service errors
var (
	ErrSalesClosed        = &ServiceError{Message: "ticket sales are currently closed"}
	ErrEventEnded         = &ServiceError{Message: "event has already ended"}
	ErrEmptyPool          = &ServiceError{Message: "event has no entries to draw from"}
	ErrDrawInProgress     = &ServiceError{Message: "a draw is already in progress for this event"}
	ErrInvalidTicketValue = &ServiceError{Message: "ticket value must be at least 1"}
	ErrEmptyCart          = &ServiceError{Message: "no tickets selected for purchase"}
	ErrPhoneTaken         = &ServiceError{Message: "an account with this phone number already exists"}
	ErrInvalidCredentials = &ServiceError{Message: "wrong phone number or password"}
	ErrInvalidOTP         = &ServiceError{Message: "invalid or expired reset code"}
	ErrPaymentDeclined    = &ServiceError{Message: "payment was declined"}
	ErrNotTicketOwner     = &ServiceError{Message: "ticket does not belong to this user"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// SettlementPartialError reports a settlement batch where some but not all
// tickets were applied. Callers retry with the Failed set; Applied tickets
// stay purchased and in the pool (no rollback).
type SettlementPartialError struct {
	Applied []int64
	Failed  []int64
}

func (e *SettlementPartialError) Error() string {
	return fmt.Sprintf("settlement partially applied: %d succeeded, %d failed (retry tickets %s)",
		len(e.Applied), len(e.Failed), formatIDs(e.Failed))
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

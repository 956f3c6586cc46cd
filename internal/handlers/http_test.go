package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/summitraffle/summitraffle/internal/errors"
	"github.com/summitraffle/summitraffle/internal/repository"
	"github.com/summitraffle/summitraffle/internal/services"
)

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errors.NotFound("event not found"), http.StatusNotFound, ErrCodeNotFound},
		{"validation", errors.Validation("name required"), http.StatusBadRequest, ErrCodeValidation},
		{"conflict", errors.Conflict("duplicate"), http.StatusConflict, ErrCodeConflict},
		{"retry exhausted", errors.RetryExhausted(fmt.Errorf("busy")), http.StatusServiceUnavailable, ErrCodeRetryExhausted},
		{"internal", errors.Internal(fmt.Errorf("boom")), http.StatusInternalServerError, ErrCodeInternalServer},
		{"sales closed", services.ErrSalesClosed, http.StatusBadRequest, ErrCodeSalesClosed},
		{"event ended", services.ErrEventEnded, http.StatusConflict, ErrCodeEventEnded},
		{"empty pool", services.ErrEmptyPool, http.StatusConflict, ErrCodeEmptyPool},
		{"draw in progress", services.ErrDrawInProgress, http.StatusConflict, ErrCodeDrawInProgress},
		{"payment declined", services.ErrPaymentDeclined, http.StatusPaymentRequired, ErrCodePaymentDeclined},
		{"not ticket owner", services.ErrNotTicketOwner, http.StatusForbidden, ErrCodeBadRequest},
		{"unmapped service error", services.ErrEmptyCart, http.StatusBadRequest, ErrCodeBadRequest},
		{"partial settlement", &services.SettlementPartialError{Applied: []int64{1}, Failed: []int64{2}}, http.StatusBadGateway, ErrCodePartialSettlement},
		{"repository not found", repository.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"unknown error", fmt.Errorf("mystery"), http.StatusInternalServerError, ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ToAPIError(tt.err)
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, apiErr.Code)
			}
		})
	}
}

func TestToAPIError_WrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", errors.NotFound("ticket not found"))
	apiErr := ToAPIError(wrapped)
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("expected 404 through wrapping, got %d", apiErr.Status)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := NewAPIError(http.StatusTeapot, "TEAPOT", "short and stout")
	if err.Error() != "short and stout" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

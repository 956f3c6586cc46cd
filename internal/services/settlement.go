package services

import (
	"context"
	"fmt"

	"github.com/summitraffle/summitraffle/internal/errors"
	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/models"
	"github.com/summitraffle/summitraffle/internal/repository"
	"github.com/summitraffle/summitraffle/pkg/payment"
)

// SettlementServiceRepository defines the repository methods needed by SettlementService
type SettlementServiceRepository interface {
	repository.TicketRepository
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
}

// Notifier is the slice of NotificationService that settlement and the draw
// engine depend on.
type Notifier interface {
	Notify(ctx context.Context, userID int64, subject, message string) error
}

// SettlementService converts paid-for tickets into event pool entries.
type SettlementService struct {
	log      logger.Logger
	repo     SettlementServiceRepository
	payments payment.Client
	notify   Notifier
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(log logger.Logger, repo SettlementServiceRepository, payments payment.Client, notify Notifier) *SettlementService {
	return &SettlementService{log: log, repo: repo, payments: payments, notify: notify}
}

// SettlementResult reports the per-ticket outcome of a settlement batch.
// AlreadySettled tickets were applied by an earlier delivery of the same
// confirmation and are counted as done, not as failures.
type SettlementResult struct {
	Applied        []int64 `json:"applied"`
	AlreadySettled []int64 `json:"already_settled"`
	Failed         []int64 `json:"failed"`
}

// Checkout charges the card for the total value of the given cart tickets
// and settles them on confirmation. The idempotency key ties the charge to
// the ticket set so a retried request cannot double-charge.
func (s *SettlementService) Checkout(ctx context.Context, userID int64, ticketIDs []int64, cardToken string) (*SettlementResult, error) {
	if len(ticketIDs) == 0 {
		return nil, ErrEmptyCart
	}

	tickets, total, err := s.loadBatch(ctx, userID, ticketIDs)
	if err != nil {
		return nil, err
	}

	charge, err := s.payments.Charge(ctx, payment.ChargeRequest{
		Amount:         total,
		Currency:       "usd",
		CardToken:      cardToken,
		Description:    fmt.Sprintf("raffle tickets for user %d", userID),
		IdempotencyKey: chargeKey(userID, ticketIDs),
	})
	if err != nil {
		return nil, err
	}
	if charge.Status != payment.StatusSucceeded {
		s.log.Warn("Charge declined", "user_id", userID, "charge_id", charge.ID, "status", charge.Status)
		return nil, ErrPaymentDeclined
	}

	s.log.Info("Charge confirmed", "user_id", userID, "charge_id", charge.ID, "amount", total)
	return s.Settle(ctx, userID, tickets)
}

// SettleByID looks up the tickets and settles them. This is the entry point
// for payment webhooks, where only ids are known.
func (s *SettlementService) SettleByID(ctx context.Context, userID int64, ticketIDs []int64) (*SettlementResult, error) {
	if len(ticketIDs) == 0 {
		return nil, ErrEmptyCart
	}
	tickets, _, err := s.loadBatch(ctx, userID, ticketIDs)
	if err != nil {
		return nil, err
	}
	return s.Settle(ctx, userID, tickets)
}

// Settle applies a confirmed payment to its tickets: each ticket's entries
// are appended to the event pool and the ticket is marked bought, exactly
// once per ticket. The loop is best-effort: a mid-batch failure leaves the
// already-applied tickets in place and reports the remainder for retry.
func (s *SettlementService) Settle(ctx context.Context, userID int64, tickets []models.Ticket) (*SettlementResult, error) {
	result := &SettlementResult{}
	entriesByEvent := make(map[int64]int64)

	for _, ticket := range tickets {
		err := s.repo.SettleTicket(ctx, ticket.ID)
		switch err {
		case nil:
			result.Applied = append(result.Applied, ticket.ID)
			entriesByEvent[ticket.EventID] += ticket.Value
		case repository.ErrAlreadyPurchased:
			// Redelivered confirmation: the ticket is already in the pool.
			result.AlreadySettled = append(result.AlreadySettled, ticket.ID)
		default:
			s.log.Error("Ticket settlement failed", "ticket_id", ticket.ID, "error", err)
			result.Failed = append(result.Failed, ticket.ID)
		}
	}

	for eventID, entries := range entriesByEvent {
		event, err := s.repo.GetEvent(ctx, eventID)
		name := fmt.Sprintf("event %d", eventID)
		if err == nil {
			name = event.Name
		}
		if err := s.notify.Notify(ctx, userID, "Purchase confirmed",
			fmt.Sprintf("Your purchase is confirmed: %d entries in %s. Good luck!", entries, name)); err != nil {
			s.log.Warn("Purchase notification failed", "user_id", userID, "event_id", eventID, "error", err)
		}
	}

	if len(result.Failed) > 0 {
		return result, &SettlementPartialError{Applied: result.Applied, Failed: result.Failed}
	}
	return result, nil
}

// loadBatch fetches the tickets, verifies ownership and sums their value
func (s *SettlementService) loadBatch(ctx context.Context, userID int64, ticketIDs []int64) ([]models.Ticket, int64, error) {
	tickets := make([]models.Ticket, 0, len(ticketIDs))
	var total int64
	for _, id := range ticketIDs {
		ticket, err := s.repo.GetTicket(ctx, id)
		if err == repository.ErrNotFound {
			return nil, 0, errors.NotFoundf("ticket %d not found", id)
		}
		if err != nil {
			return nil, 0, err
		}
		if ticket.UserID != userID {
			return nil, 0, ErrNotTicketOwner
		}
		tickets = append(tickets, *ticket)
		total += ticket.Value
	}
	return tickets, total, nil
}

// chargeKey derives a stable idempotency key from the ticket set
func chargeKey(userID int64, ticketIDs []int64) string {
	return fmt.Sprintf("checkout-%d-%s", userID, formatIDs(ticketIDs))
}

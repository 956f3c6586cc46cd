package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/summitraffle/summitraffle/internal/errors"
	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/models"
	"github.com/summitraffle/summitraffle/internal/repository"
)

// TicketServiceRepository defines the repository methods needed by TicketService
type TicketServiceRepository interface {
	repository.CounterRepository
	repository.TicketRepository
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
}

// TicketService handles the cart side of the ticket lifecycle
type TicketService struct {
	log      logger.Logger
	repo     TicketServiceRepository
	settings SettingsServicer
}

// NewTicketService creates a new TicketService
func NewTicketService(log logger.Logger, repo TicketServiceRepository, settings SettingsServicer) *TicketService {
	return &TicketService{log: log, repo: repo, settings: settings}
}

// AddToCart allocates a ticket id and creates an unbought ticket. Repeated
// adds are allowed; a user may hold any number of unbought tickets for the
// same event.
func (s *TicketService) AddToCart(ctx context.Context, userID, eventID, value int64) (*models.Ticket, error) {
	if value < 1 {
		return nil, ErrInvalidTicketValue
	}

	open, err := s.settings.IsSalesOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrSalesClosed
	}

	event, err := s.repo.GetEvent(ctx, eventID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	if event.Ended {
		return nil, ErrEventEnded
	}

	id, err := s.repo.AllocateID(ctx, repository.KindTicket)
	if err != nil {
		return nil, err
	}

	ticket := models.Ticket{
		ID:      id,
		UserID:  userID,
		EventID: eventID,
		Value:   value,
	}
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.log.Info("Ticket added to cart", "ticket_id", id, "user_id", userID, "event_id", eventID, "value", value)
	return &ticket, nil
}

// ListCart returns a user's unbought tickets
func (s *TicketService) ListCart(ctx context.Context, userID int64) ([]models.Ticket, error) {
	return s.repo.ListCartTickets(ctx, userID)
}

// TicketQRImage renders a ticket's reference URL as a QR PNG. Only the
// ticket's owner may request it.
func (s *TicketService) TicketQRImage(ctx context.Context, userID, ticketID int64) ([]byte, error) {
	ticket, err := s.repo.GetTicket(ctx, ticketID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("ticket not found")
	}
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, ErrNotTicketOwner
	}

	baseURL, err := s.settings.GetBaseURL(ctx)
	if err != nil || baseURL == "" {
		return nil, fmt.Errorf("base_url not configured")
	}
	ticketURL := fmt.Sprintf("%s/tickets/%d", strings.TrimSuffix(baseURL, "/"), ticket.ID)
	return qrcode.Encode(ticketURL, qrcode.Medium, 256)
}

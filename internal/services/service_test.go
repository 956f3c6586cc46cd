package services

import (
	"context"
	"testing"
	"time"

	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/repository"
	"github.com/summitraffle/summitraffle/internal/testutil"
	"github.com/summitraffle/summitraffle/pkg/mailer"
	"github.com/summitraffle/summitraffle/pkg/payment"
)

// testEnv wires the full service stack over a fresh in-memory repository
type testEnv struct {
	repo       *repository.Repository
	mail       *mailer.MockMailer
	payments   *payment.MockClient
	user       *UserService
	event      *EventService
	ticket     *TicketService
	settlement *SettlementService
	draw       *DrawService
	notify     *NotificationService
	settings   *SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := testutil.NewTestRepository(t)
	log := logger.Nop{}
	mail := mailer.NewMockMailer()
	payments := payment.NewMockClient()

	notify := NewNotificationService(log, repo, mail)
	settings := NewSettingsService(log, repo)

	return &testEnv{
		repo:       repo,
		mail:       mail,
		payments:   payments,
		user:       NewUserService(log, repo, mail),
		event:      NewEventService(log, repo),
		ticket:     NewTicketService(log, repo, settings),
		settlement: NewSettlementService(log, repo, payments, notify),
		draw:       NewDrawService(log, repo, notify),
		notify:     notify,
		settings:   settings,
	}
}

// registerUser creates an account and returns its id
func (e *testEnv) registerUser(t *testing.T, phone string) int64 {
	t.Helper()
	user, err := e.user.Register(context.Background(), Registration{
		FirstName: "Test",
		LastName:  "User",
		Phone:     phone,
		Email:     phone + "@example.com",
		Password:  "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return user.ID
}

// createEvent creates an open event and returns its id
func (e *testEnv) createEvent(t *testing.T, name string) int64 {
	t.Helper()
	event, err := e.event.CreateEvent(context.Background(), name, time.Now(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return event.ID
}

// buyTicket carts and settles a ticket, returning its id
func (e *testEnv) buyTicket(t *testing.T, userID, eventID, value int64) int64 {
	t.Helper()
	ctx := context.Background()
	ticket, err := e.ticket.AddToCart(ctx, userID, eventID, value)
	if err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if _, err := e.settlement.Checkout(ctx, userID, []int64{ticket.ID}, "tok_test"); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	return ticket.ID
}

// recordingBroadcaster captures broadcast calls for assertions
type recordingBroadcaster struct {
	salesStatuses []bool
	drawEvents    []int64
	drawWinners   []int64
}

func (b *recordingBroadcaster) BroadcastSalesStatus(open bool) {
	b.salesStatuses = append(b.salesStatuses, open)
}

func (b *recordingBroadcaster) BroadcastDrawResult(eventID, winnerID, winnerValue int64) {
	b.drawEvents = append(b.drawEvents, eventID)
	b.drawWinners = append(b.drawWinners, winnerID)
}

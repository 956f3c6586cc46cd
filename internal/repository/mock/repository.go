package mock

import (
	"context"

	"github.com/summitraffle/summitraffle/internal/models"
	"github.com/summitraffle/summitraffle/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database
// manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SettleTicketError = errors.New("database error")
//	svc := services.NewSettlementService(log, mockRepo, notifySvc)
//	_, err := svc.Settle(ctx, userID, ticketIDs)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Counter Errors =====
	AllocateIDError error

	// ===== User Errors =====
	CreateUserError         error
	GetUserError            error
	GetUserCredentialsError error
	UpdateUserProfileError  error
	CreditBalanceError      error

	// ===== Event Errors =====
	CreateEventError   error
	GetEventError      error
	ListEventsError    error
	AppendEntriesError error
	ListEntriesError   error
	EntryCountsError   error
	CloseEventError    error

	// ===== Ticket Errors =====
	CreateTicketError          error
	GetTicketError             error
	ListCartTicketsError       error
	SettleTicketError          error
	DeleteUnboughtTicketsError error

	// ===== Notification Errors =====
	CreateNotificationError error
	ListNotificationsError  error

	// ===== Settings Errors =====
	GetSettingError error
	SetSettingError error

	// SettleTicketErrorAfter injects SettleTicketError only once the given
	// number of successful settlements has happened, for partial-failure tests.
	SettleTicketErrorAfter int
	settleCalls            int
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository:         real,
		SettleTicketErrorAfter: -1,
	}
}

func (m *Repository) AllocateID(ctx context.Context, kind repository.IDKind) (int64, error) {
	if m.AllocateIDError != nil {
		return 0, m.AllocateIDError
	}
	return m.FullRepository.AllocateID(ctx, kind)
}

func (m *Repository) CreateUser(ctx context.Context, user models.User, passwordHash string) error {
	if m.CreateUserError != nil {
		return m.CreateUserError
	}
	return m.FullRepository.CreateUser(ctx, user, passwordHash)
}

func (m *Repository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if m.GetUserError != nil {
		return nil, m.GetUserError
	}
	return m.FullRepository.GetUser(ctx, id)
}

func (m *Repository) GetUserCredentials(ctx context.Context, phone string) (int64, string, error) {
	if m.GetUserCredentialsError != nil {
		return 0, "", m.GetUserCredentialsError
	}
	return m.FullRepository.GetUserCredentials(ctx, phone)
}

func (m *Repository) UpdateUserProfile(ctx context.Context, id int64, firstName, lastName, email, profilePic string) error {
	if m.UpdateUserProfileError != nil {
		return m.UpdateUserProfileError
	}
	return m.FullRepository.UpdateUserProfile(ctx, id, firstName, lastName, email, profilePic)
}

func (m *Repository) CreditBalance(ctx context.Context, userID, amount int64) error {
	if m.CreditBalanceError != nil {
		return m.CreditBalanceError
	}
	return m.FullRepository.CreditBalance(ctx, userID, amount)
}

func (m *Repository) CreateEvent(ctx context.Context, event models.Event) error {
	if m.CreateEventError != nil {
		return m.CreateEventError
	}
	return m.FullRepository.CreateEvent(ctx, event)
}

func (m *Repository) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	if m.GetEventError != nil {
		return nil, m.GetEventError
	}
	return m.FullRepository.GetEvent(ctx, id)
}

func (m *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	if m.ListEventsError != nil {
		return nil, m.ListEventsError
	}
	return m.FullRepository.ListEvents(ctx)
}

func (m *Repository) AppendEntries(ctx context.Context, eventID, userID int64, count, weight int64) error {
	if m.AppendEntriesError != nil {
		return m.AppendEntriesError
	}
	return m.FullRepository.AppendEntries(ctx, eventID, userID, count, weight)
}

func (m *Repository) ListEntries(ctx context.Context, eventID int64) ([]models.PoolEntry, error) {
	if m.ListEntriesError != nil {
		return nil, m.ListEntriesError
	}
	return m.FullRepository.ListEntries(ctx, eventID)
}

func (m *Repository) EntryCounts(ctx context.Context, eventID int64) (map[int64]int64, error) {
	if m.EntryCountsError != nil {
		return nil, m.EntryCountsError
	}
	return m.FullRepository.EntryCounts(ctx, eventID)
}

func (m *Repository) CloseEvent(ctx context.Context, eventID int64, winnerID *int64, winnerValue int64) error {
	if m.CloseEventError != nil {
		return m.CloseEventError
	}
	return m.FullRepository.CloseEvent(ctx, eventID, winnerID, winnerValue)
}

func (m *Repository) CreateTicket(ctx context.Context, ticket models.Ticket) error {
	if m.CreateTicketError != nil {
		return m.CreateTicketError
	}
	return m.FullRepository.CreateTicket(ctx, ticket)
}

func (m *Repository) GetTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	if m.GetTicketError != nil {
		return nil, m.GetTicketError
	}
	return m.FullRepository.GetTicket(ctx, id)
}

func (m *Repository) ListCartTickets(ctx context.Context, userID int64) ([]models.Ticket, error) {
	if m.ListCartTicketsError != nil {
		return nil, m.ListCartTicketsError
	}
	return m.FullRepository.ListCartTickets(ctx, userID)
}

func (m *Repository) SettleTicket(ctx context.Context, ticketID int64) error {
	if m.SettleTicketError != nil {
		if m.SettleTicketErrorAfter < 0 || m.settleCalls >= m.SettleTicketErrorAfter {
			return m.SettleTicketError
		}
	}
	m.settleCalls++
	return m.FullRepository.SettleTicket(ctx, ticketID)
}

func (m *Repository) DeleteUnboughtTickets(ctx context.Context, eventID int64) (int64, error) {
	if m.DeleteUnboughtTicketsError != nil {
		return 0, m.DeleteUnboughtTicketsError
	}
	return m.FullRepository.DeleteUnboughtTickets(ctx, eventID)
}

func (m *Repository) CreateNotification(ctx context.Context, userID int64, message string) (int64, error) {
	if m.CreateNotificationError != nil {
		return 0, m.CreateNotificationError
	}
	return m.FullRepository.CreateNotification(ctx, userID, message)
}

func (m *Repository) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	if m.ListNotificationsError != nil {
		return nil, m.ListNotificationsError
	}
	return m.FullRepository.ListNotifications(ctx, userID)
}

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}

package repository

import (
	"context"

	"github.com/summitraffle/summitraffle/internal/models"
)

// CounterRepository defines sequential id allocation operations
type CounterRepository interface {
	AllocateID(ctx context.Context, kind IDKind) (int64, error)
	DropCounters(ctx context.Context) error
}

// UserRepository defines user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User, passwordHash string) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserCredentials(ctx context.Context, phone string) (int64, string, error)
	UserExistsByPhone(ctx context.Context, phone string) (bool, error)
	UpdateUserProfile(ctx context.Context, id int64, firstName, lastName, email, profilePic string) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	CreditBalance(ctx context.Context, userID, amount int64) error
}

// EventRepository defines event and entry-pool data operations
type EventRepository interface {
	CreateEvent(ctx context.Context, event models.Event) error
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListOpenEvents(ctx context.Context) ([]models.Event, error)
	AppendEntries(ctx context.Context, eventID, userID int64, count, weight int64) error
	ListEntries(ctx context.Context, eventID int64) ([]models.PoolEntry, error)
	EntryCounts(ctx context.Context, eventID int64) (map[int64]int64, error)
	CloseEvent(ctx context.Context, eventID int64, winnerID *int64, winnerValue int64) error
}

// TicketRepository defines ticket data operations
type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket models.Ticket) error
	GetTicket(ctx context.Context, id int64) (*models.Ticket, error)
	ListCartTickets(ctx context.Context, userID int64) ([]models.Ticket, error)
	SettleTicket(ctx context.Context, ticketID int64) error
	DeleteUnboughtTickets(ctx context.Context, eventID int64) (int64, error)
}

// NotificationRepository defines notification data operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, userID int64, message string) (int64, error)
	ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	GetRaffleStats(ctx context.Context) (map[string]interface{}, error)
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	CounterRepository
	UserRepository
	EventRepository
	TicketRepository
	NotificationRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)

package services

import (
	"context"
	"time"

	"github.com/summitraffle/summitraffle/internal/models"
)

// UserServicer defines the interface for account operations
type UserServicer interface {
	Register(ctx context.Context, reg Registration) (*models.User, error)
	Authenticate(ctx context.Context, phone, password string) (int64, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email, profilePic string) error
	RequestPasswordReset(ctx context.Context, phone string) error
	ResetPassword(ctx context.Context, phone, otp, newPassword string) error
}

// EventServicer defines the interface for event operations
type EventServicer interface {
	CreateEvent(ctx context.Context, name string, startsAt, endsAt time.Time) (*models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	GetEventDetail(ctx context.Context, id int64) (*EventDetail, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListUpcoming(ctx context.Context) ([]models.Event, error)
}

// TicketServicer defines the interface for cart operations
type TicketServicer interface {
	AddToCart(ctx context.Context, userID, eventID, value int64) (*models.Ticket, error)
	ListCart(ctx context.Context, userID int64) ([]models.Ticket, error)
	TicketQRImage(ctx context.Context, userID, ticketID int64) ([]byte, error)
}

// SettlementServicer defines the interface for purchase settlement
type SettlementServicer interface {
	Checkout(ctx context.Context, userID int64, ticketIDs []int64, cardToken string) (*SettlementResult, error)
	SettleByID(ctx context.Context, userID int64, ticketIDs []int64) (*SettlementResult, error)
}

// DrawServicer defines the interface for the draw engine
type DrawServicer interface {
	Draw(ctx context.Context, eventID int64) (*DrawResult, error)
}

// NotificationServicer defines the interface for the notification log
type NotificationServicer interface {
	Notify(ctx context.Context, userID int64, subject, message string) error
	List(ctx context.Context, userID int64) ([]models.Notification, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	IsSalesOpen(ctx context.Context) (bool, error)
	SetSalesOpen(ctx context.Context, open bool) error
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	GetStats(ctx context.Context) (map[string]interface{}, error)
	SetBroadcaster(b Broadcaster)
}

// Ensure concrete types implement interfaces
var (
	_ UserServicer         = (*UserService)(nil)
	_ EventServicer        = (*EventService)(nil)
	_ TicketServicer       = (*TicketService)(nil)
	_ SettlementServicer   = (*SettlementService)(nil)
	_ DrawServicer         = (*DrawService)(nil)
	_ NotificationServicer = (*NotificationService)(nil)
	_ SettingsServicer     = (*SettingsService)(nil)
)

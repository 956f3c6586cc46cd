package models

import "time"

// User represents a registered account. Balance is in whole currency units
// and is only ever credited by the draw engine.
type User struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Balance    int64  `json:"balance"`
}

// Event represents a raffle event. Ended is a one-way transition; WinnerID
// and WinnerValue are set exactly once, when the event closes.
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Ended       bool      `json:"ended"`
	WinnerID    *int64    `json:"winner_id,omitempty"`
	WinnerValue int64     `json:"winner_value,omitempty"`
}

// PoolEntry is one chance in an event's entry pool. A ticket of value N
// contributes N entries, each carrying weight N, so draw probability is
// proportional to ticket value.
type PoolEntry struct {
	UserID int64 `json:"user_id"`
	Weight int64 `json:"weight"`
}

// Ticket represents a raffle ticket. Bought is false while the ticket sits
// in the cart and flips to true exactly once, at settlement.
type Ticket struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
	Value   int64 `json:"value"`
	Bought  bool  `json:"bought"`
}

// Notification is an append-only message for a user.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

package handlers

import "github.com/summitraffle/summitraffle/internal/models"

// UserResponse is the JSON response for account operations
type UserResponse struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Balance    int64  `json:"balance"`
}

// EventResponse is the JSON response for event operations
type EventResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	Ended       bool   `json:"ended"`
	WinnerID    *int64 `json:"winner_id,omitempty"`
	WinnerValue int64  `json:"winner_value,omitempty"`
}

// EventDetailResponse adds pool information to an event
type EventDetailResponse struct {
	EventResponse
	PoolSize     int64           `json:"pool_size"`
	Participants int             `json:"participants"`
	EntryCounts  map[int64]int64 `json:"entry_counts,omitempty"`
}

// TicketResponse is the JSON response for ticket operations
type TicketResponse struct {
	ID      int64 `json:"id"`
	EventID int64 `json:"event_id"`
	Value   int64 `json:"value"`
	Bought  bool  `json:"bought"`
}

// SalesStatusResponse is the response for sales status changes
type SalesStatusResponse struct {
	Open bool `json:"open"`
}

// SettingsResponse is the response for settings
type SettingsResponse struct {
	BaseURL   string `json:"base_url"`
	SalesOpen bool   `json:"sales_open"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Email:      u.Email,
		ProfilePic: u.ProfilePic,
		Balance:    u.Balance,
	}
}

func toEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		StartsAt:    e.StartsAt.Format("2006-01-02T15:04:05Z07:00"),
		EndsAt:      e.EndsAt.Format("2006-01-02T15:04:05Z07:00"),
		Ended:       e.Ended,
		WinnerID:    e.WinnerID,
		WinnerValue: e.WinnerValue,
	}
}

func toEventResponses(events []models.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
	}
	return out
}

func toTicketResponse(t *models.Ticket) TicketResponse {
	return TicketResponse{
		ID:      t.ID,
		EventID: t.EventID,
		Value:   t.Value,
		Bought:  t.Bought,
	}
}

func toTicketResponses(tickets []models.Ticket) []TicketResponse {
	out := make([]TicketResponse, len(tickets))
	for i := range tickets {
		out[i] = toTicketResponse(&tickets[i])
	}
	return out
}

package handlers

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ProfileUpdateRequest represents a request to update profile fields
type ProfileUpdateRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

// PasswordResetRequest represents a request for a password reset code
type PasswordResetRequest struct {
	Phone string `json:"phone"`
}

// PasswordResetConfirmRequest represents a reset code redemption
type PasswordResetConfirmRequest struct {
	Phone       string `json:"phone"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// EventCreateRequest represents a request to create a raffle event
type EventCreateRequest struct {
	Name     string `json:"name"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

// CartAddRequest represents a request to add a ticket to the cart
type CartAddRequest struct {
	EventID int64 `json:"event_id"`
	Value   int64 `json:"value"`
}

// CheckoutRequest represents a request to pay for cart tickets
type CheckoutRequest struct {
	TicketIDs []int64 `json:"ticket_ids"`
	CardToken string  `json:"card_token"`
}

// SettleRequest represents a settlement retry for confirmed payments
type SettleRequest struct {
	TicketIDs []int64 `json:"ticket_ids"`
}

// SalesStatusRequest represents a request to open or close ticket sales
type SalesStatusRequest struct {
	Open bool `json:"open"`
}

// SettingsUpdateRequest represents a request to update settings
type SettingsUpdateRequest struct {
	BaseURL string `json:"base_url"`
}

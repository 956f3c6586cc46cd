package handlers

import (
	"net/http"

	"github.com/summitraffle/summitraffle/internal/auth"
)

// requestUserID pulls the authenticated user id from the context. The
// RequireUser middleware guarantees it is present on protected routes.
func requestUserID(r *http.Request) (int64, error) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		return 0, ErrUnauthorized
	}
	return userID, nil
}

// handleGetProfile returns the authenticated user's profile
func (h *Handlers) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.User.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, toUserResponse(user))
}

// handleUpdateProfile updates the mutable profile fields
func (h *Handlers) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req ProfileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.User.UpdateProfile(r.Context(), userID, req.FirstName, req.LastName, req.Email, req.ProfilePic); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Profile updated")
}

// handleGetNotifications returns the user's notification log, newest first
func (h *Handlers) handleGetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	notifications, err := h.Notification.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, notifications)
}

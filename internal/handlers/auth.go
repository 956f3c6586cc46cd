package handlers

import (
	"net/http"

	"github.com/summitraffle/summitraffle/internal/auth"
	"github.com/summitraffle/summitraffle/internal/services"
)

// LoginPageData holds data for the login templates
type LoginPageData struct {
	Error string
}

// ==================== User Auth API ====================

// handleRegister creates a new account and starts a session
func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.User.Register(r.Context(), services.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	token := h.Auth.CreateUserSession(user.ID)
	auth.SetUserCookie(w, token)
	respondCreated(w, toUserResponse(user))
}

// handleUserLogin validates credentials and starts a session
func (h *Handlers) handleUserLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	userID, err := h.User.Authenticate(r.Context(), req.Phone, req.Password)
	if err == services.ErrInvalidCredentials {
		respondError(w, Unauthorized(err.Error()))
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}

	token := h.Auth.CreateUserSession(userID)
	auth.SetUserCookie(w, token)
	respondOK(w, map[string]int64{"user_id": userID})
}

// handleUserLogout destroys the session
func (h *Handlers) handleUserLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.UserCookieName); err == nil {
		h.Auth.DestroyUserSession(cookie.Value)
	}
	auth.ClearUserCookie(w)
	respondSuccess(w, "Logged out")
}

// handlePasswordResetRequest sends a reset code to the account's email.
// Always responds 200 so the endpoint cannot be used to probe for accounts.
func (h *Handlers) handlePasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.User.RequestPasswordReset(r.Context(), req.Phone); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "If the account exists, a reset code has been sent")
}

// handlePasswordResetConfirm redeems a reset code for a new password
func (h *Handlers) handlePasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req PasswordResetConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.User.ResetPassword(r.Context(), req.Phone, req.Code, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Password updated")
}

// ==================== Admin Auth ====================

// handleAdminLoginPage renders the admin login form
func (h *Handlers) handleAdminLoginPage(w http.ResponseWriter, r *http.Request) {
	// If already logged in, redirect to admin
	if h.Auth.IsAdminRequest(r) {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	h.templates.AdminLogin.Execute(w, LoginPageData{})
}

// handleAdminLogin processes admin login form submission
func (h *Handlers) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")

	token, ok := h.Auth.AdminLogin(password)
	if !ok {
		h.templates.AdminLogin.Execute(w, LoginPageData{
			Error: "Invalid password",
		})
		return
	}

	auth.SetAdminCookie(w, token)
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// handleAdminLogout clears the admin session and redirects to login
func (h *Handlers) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.AdminCookieName); err == nil {
		h.Auth.AdminLogout(cookie.Value)
	}

	auth.ClearAdminCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

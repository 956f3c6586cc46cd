package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	AdminCookieName = "summitraffle_admin"
	UserCookieName  = "summitraffle_session"
	SessionExpiry   = 24 * time.Hour
)

type contextKey string

// userIDKey carries the authenticated user's id through the request context
const userIDKey contextKey = "userID"

// Password word list for generated admin passwords
var passwordWords = []string{
	"summit", "raffle", "ticket", "bundle", "drawing",
	"winner", "entry", "jackpot", "fortune", "lucky",
	"golden", "silver", "prize", "chance", "pool",
	"stub", "spinner", "bonanza", "windfall",
}

type userSession struct {
	userID int64
	expiry time.Time
}

// Auth handles admin and user session management
type Auth struct {
	adminPassword string
	adminSessions map[string]time.Time
	userSessions  map[string]userSession
	mu            sync.RWMutex
}

// New creates a new Auth instance with the given admin password
func New(adminPassword string) *Auth {
	return &Auth{
		adminPassword: adminPassword,
		adminSessions: make(map[string]time.Time),
		userSessions:  make(map[string]userSession),
	}
}

// GeneratePassword creates a random 3-word admin password
func GeneratePassword() string {
	words := make([]string, 3)
	for i := range words {
		words[i] = passwordWords[randomInt(len(passwordWords))]
	}
	return strings.Join(words, "-")
}

// AdminLogin validates the admin password and returns a session token if valid
func (a *Auth) AdminLogin(password string) (string, bool) {
	if password != a.adminPassword {
		return "", false
	}

	token := generateToken()
	a.mu.Lock()
	a.adminSessions[token] = time.Now().Add(SessionExpiry)
	a.mu.Unlock()

	return token, true
}

// AdminLogout invalidates an admin session token
func (a *Auth) AdminLogout(token string) {
	a.mu.Lock()
	delete(a.adminSessions, token)
	a.mu.Unlock()
}

// ValidateAdminSession checks if an admin session token is valid
func (a *Auth) ValidateAdminSession(token string) bool {
	a.mu.RLock()
	expiry, exists := a.adminSessions[token]
	a.mu.RUnlock()

	if !exists {
		return false
	}

	if time.Now().After(expiry) {
		a.mu.Lock()
		delete(a.adminSessions, token)
		a.mu.Unlock()
		return false
	}

	return true
}

// CreateUserSession issues a session token for an authenticated user
func (a *Auth) CreateUserSession(userID int64) string {
	token := generateToken()
	a.mu.Lock()
	a.userSessions[token] = userSession{userID: userID, expiry: time.Now().Add(SessionExpiry)}
	a.mu.Unlock()
	return token
}

// DestroyUserSession invalidates a user session token
func (a *Auth) DestroyUserSession(token string) {
	a.mu.Lock()
	delete(a.userSessions, token)
	a.mu.Unlock()
}

// ValidateUserSession resolves a session token to its user id
func (a *Auth) ValidateUserSession(token string) (int64, bool) {
	a.mu.RLock()
	sess, exists := a.userSessions[token]
	a.mu.RUnlock()

	if !exists {
		return 0, false
	}

	if time.Now().After(sess.expiry) {
		a.mu.Lock()
		delete(a.userSessions, token)
		a.mu.Unlock()
		return 0, false
	}

	return sess.userID, true
}

// IsAdminRequest reports whether the request carries a valid admin session
func (a *Auth) IsAdminRequest(r *http.Request) bool {
	cookie, err := r.Cookie(AdminCookieName)
	if err != nil {
		return false
	}
	return a.ValidateAdminSession(cookie.Value)
}

// UserFromRequest resolves the request's session cookie to a user id
func (a *Auth) UserFromRequest(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(UserCookieName)
	if err != nil {
		return 0, false
	}
	return a.ValidateUserSession(cookie.Value)
}

// RequireAdmin middleware for admin pages (redirects to login)
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.IsAdminRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, "/admin/login", http.StatusFound)
	})
}

// RequireAdminAPI middleware for admin API endpoints (returns 401)
func (a *Auth) RequireAdminAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.IsAdminRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized - please log in"}`))
	})
}

// RequireUser middleware for user API endpoints. On success the user id is
// placed on the request context for handlers to read via UserID.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := a.UserFromRequest(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized - please log in"}`))
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user id set by RequireUser
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying the given user id (for testing)
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// SetAdminCookie sets the admin session cookie on the response
func SetAdminCookie(w http.ResponseWriter, token string) {
	setCookie(w, AdminCookieName, token, int(SessionExpiry.Seconds()))
}

// ClearAdminCookie removes the admin session cookie
func ClearAdminCookie(w http.ResponseWriter) {
	setCookie(w, AdminCookieName, "", -1)
}

// SetUserCookie sets the user session cookie on the response
func SetUserCookie(w http.ResponseWriter, token string) {
	setCookie(w, UserCookieName, token, int(SessionExpiry.Seconds()))
}

// ClearUserCookie removes the user session cookie
func ClearUserCookie(w http.ResponseWriter) {
	setCookie(w, UserCookieName, "", -1)
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// generateToken creates a random session token
func generateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// randomInt returns a random int in [0, max) without modulo bias
func randomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger) // Custom conditional HTTP logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Public pages
	r.Get("/", h.handleIndex)
	r.Get("/login", h.handleLoginPage)
	r.Get("/register", h.handleRegisterPage)
	r.Get("/events", h.handleEventsPage)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Account API (public)
	r.Post("/api/register", h.handleRegister)
	r.Post("/api/login", h.handleUserLogin)
	r.Post("/api/logout", h.handleUserLogout)
	r.Post("/api/password-reset", h.handlePasswordResetRequest)
	r.Post("/api/password-reset/confirm", h.handlePasswordResetConfirm)

	// Event API (public, read-only)
	r.Get("/api/events", h.handleListEvents)
	r.Get("/api/events/upcoming", h.handleListUpcomingEvents)
	r.Get("/api/events/{id}", h.handleGetEvent)
	r.Get("/api/sales-status", h.handleGetSalesStatus)

	// User pages (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)
		r.Get("/cart", h.handleCartPage)
		r.Get("/account", h.handleAccountPage)
	})

	// User API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)

		// Profile
		r.Get("/api/profile", h.handleGetProfile)
		r.Put("/api/profile", h.handleUpdateProfile)

		// Cart & checkout
		r.Get("/api/cart", h.handleGetCart)
		r.Post("/api/cart", h.handleAddToCart)
		r.Post("/api/checkout", h.handleCheckout)
		r.Post("/api/settle", h.handleSettle)

		// Tickets
		r.Get("/api/tickets/{id}/qr", h.handleTicketQR)

		// Notifications
		r.Get("/api/notifications", h.handleGetNotifications)
	})

	// Admin auth routes (public)
	r.Get("/admin/login", h.handleAdminLoginPage)
	r.Post("/admin/login", h.handleAdminLogin)
	r.Post("/admin/logout", h.handleAdminLogout)

	// Admin pages (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAdmin)
		r.Get("/admin", h.handleAdminDashboard)
		r.Get("/admin/events", h.handleAdminEvents)
		r.Get("/admin/settings", h.handleAdminSettings)
	})

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAdminAPI)

		// Events
		r.Post("/api/admin/events", h.handleCreateEvent)
		r.Post("/api/admin/events/{id}/draw", h.handleDrawEvent)

		// Sales Control
		r.Post("/api/admin/sales-control", h.handleSetSalesStatus)

		// Stats & Settings
		r.Get("/api/admin/stats", h.handleGetStats)
		r.Get("/api/admin/settings", h.handleGetSettings)
		r.Post("/api/admin/settings", h.handleUpdateSettings)
		r.Put("/api/admin/settings", h.handleUpdateSettings)
	})

	return r
}

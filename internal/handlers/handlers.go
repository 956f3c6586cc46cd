package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/summitraffle/summitraffle/internal/auth"
	"github.com/summitraffle/summitraffle/internal/services"
	"github.com/summitraffle/summitraffle/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// AdminPageData holds the data passed to admin templates
type AdminPageData struct {
	Title     string
	PageTitle string
	ActiveNav string
}

// Templates holds all parsed HTML templates
type Templates struct {
	Index          *template.Template
	Login          *template.Template
	Register       *template.Template
	Events         *template.Template
	Cart           *template.Template
	Account        *template.Template
	AdminLogin     *template.Template
	AdminDashboard *template.Template
	AdminEvents    *template.Template
	AdminSettings  *template.Template
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	User         services.UserServicer
	Event        services.EventServicer
	Ticket       services.TicketServicer
	Settlement   services.SettlementServicer
	Draw         services.DrawServicer
	Notification services.NotificationServicer
	Settings     services.SettingsServicer
	Auth         *auth.Auth
	Hub          *websocket.Hub
	Log          HTTPLogger
	templates    *Templates
	staticServer http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	user services.UserServicer,
	event services.EventServicer,
	ticket services.TicketServicer,
	settlement services.SettlementServicer,
	draw services.DrawServicer,
	notification services.NotificationServicer,
	settings services.SettingsServicer,
	templatesFS fs.FS,
	staticServer http.Handler,
	sessions *auth.Auth,
	hub *websocket.Hub,
	log HTTPLogger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		User:         user,
		Event:        event,
		Ticket:       ticket,
		Settlement:   settlement,
		Draw:         draw,
		Notification: notification,
		Settings:     settings,
		Auth:         sessions,
		Hub:          hub,
		Log:          log,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without loading templates (for testing API endpoints)
func NewForTesting(
	user services.UserServicer,
	event services.EventServicer,
	ticket services.TicketServicer,
	settlement services.SettlementServicer,
	draw services.DrawServicer,
	notification services.NotificationServicer,
	settings services.SettingsServicer,
) *Handlers {
	// Create a test auth with a known password
	testAuth := auth.New("test-password")
	return &Handlers{
		User:         user,
		Event:        event,
		Ticket:       ticket,
		Settlement:   settlement,
		Draw:         draw,
		Notification: notification,
		Settings:     settings,
		Auth:         testAuth,
		Log:          NoopHTTPLogger{},
		// templates left nil - API endpoints don't use templates
	}
}

// loadTemplates parses all templates once at startup
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Index, err = template.ParseFS(templatesFS, "index.html"); err != nil {
		return nil, fmt.Errorf("index template: %w", err)
	}
	if t.Login, err = template.ParseFS(templatesFS, "user/login.html"); err != nil {
		return nil, fmt.Errorf("login template: %w", err)
	}
	if t.Register, err = template.ParseFS(templatesFS, "user/register.html"); err != nil {
		return nil, fmt.Errorf("register template: %w", err)
	}
	if t.Events, err = template.ParseFS(templatesFS, "user/events.html"); err != nil {
		return nil, fmt.Errorf("events template: %w", err)
	}
	if t.Cart, err = template.ParseFS(templatesFS, "user/cart.html"); err != nil {
		return nil, fmt.Errorf("cart template: %w", err)
	}
	if t.Account, err = template.ParseFS(templatesFS, "user/account.html"); err != nil {
		return nil, fmt.Errorf("account template: %w", err)
	}
	if t.AdminLogin, err = template.ParseFS(templatesFS, "admin/login.html"); err != nil {
		return nil, fmt.Errorf("admin login template: %w", err)
	}
	if t.AdminDashboard, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/dashboard.html"); err != nil {
		return nil, fmt.Errorf("admin dashboard template: %w", err)
	}
	if t.AdminEvents, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/events.html"); err != nil {
		return nil, fmt.Errorf("admin events template: %w", err)
	}
	if t.AdminSettings, err = template.ParseFS(templatesFS, "admin/layout.html", "admin/settings.html"); err != nil {
		return nil, fmt.Errorf("admin settings template: %w", err)
	}

	return t, nil
}

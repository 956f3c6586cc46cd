package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/summitraffle/summitraffle/internal/auth"
	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/services"
	"github.com/summitraffle/summitraffle/internal/testutil"
	"github.com/summitraffle/summitraffle/internal/websocket"
	"github.com/summitraffle/summitraffle/pkg/mailer"
	"github.com/summitraffle/summitraffle/pkg/payment"
)

// testServer wires real services over an in-memory repository behind the
// full router, so tests exercise routing, middleware and handlers together.
type testServer struct {
	h        *Handlers
	router   chi.Router
	payments *payment.MockClient
	mail     *mailer.MockMailer
	draw     *services.DrawService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := testutil.NewTestRepository(t)
	log := logger.Nop{}
	mail := mailer.NewMockMailer()
	payments := payment.NewMockClient()

	notify := services.NewNotificationService(log, repo, mail)
	settings := services.NewSettingsService(log, repo)
	userSvc := services.NewUserService(log, repo, mail)
	eventSvc := services.NewEventService(log, repo)
	ticketSvc := services.NewTicketService(log, repo, settings)
	settlementSvc := services.NewSettlementService(log, repo, payments, notify)
	drawSvc := services.NewDrawService(log, repo, notify)

	h := NewForTesting(userSvc, eventSvc, ticketSvc, settlementSvc, drawSvc, notify, settings)
	hub := websocket.New(log, settings)
	hub.Start()
	h.Hub = hub

	return &testServer{
		h:        h,
		router:   h.Router(),
		payments: payments,
		mail:     mail,
		draw:     drawSvc,
	}
}

// do performs a request against the router and returns the recorder
func (s *testServer) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// registerUser creates an account through the API and returns its id and
// session cookie.
func (s *testServer) registerUser(t *testing.T, phone string) (int64, *http.Cookie) {
	t.Helper()

	rec := s.do(t, "POST", "/api/register", RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Phone:     phone,
		Email:     phone + "@example.com",
		Password:  "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed with %d: %s", rec.Code, rec.Body.String())
	}

	var user UserResponse
	decodeBody(t, rec, &user)

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.UserCookieName {
			return user.ID, c
		}
	}
	t.Fatal("no session cookie on register response")
	return 0, nil
}

// adminCookie logs in as admin and returns the session cookie
func (s *testServer) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()

	token, ok := s.h.Auth.AdminLogin("test-password")
	if !ok {
		t.Fatal("admin login failed")
	}
	return &http.Cookie{Name: auth.AdminCookieName, Value: token}
}

// createEvent creates an event through the admin API and returns its id
func (s *testServer) createEvent(t *testing.T, name string) int64 {
	t.Helper()

	admin := s.adminCookie(t)
	rec := s.do(t, "POST", "/api/admin/events", EventCreateRequest{
		Name:     name,
		StartsAt: "2026-08-01T12:00:00Z",
		EndsAt:   "2026-09-01T12:00:00Z",
	}, admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event failed with %d: %s", rec.Code, rec.Body.String())
	}

	var event EventResponse
	decodeBody(t, rec, &event)
	return event.ID
}

// addToCart adds a ticket through the API and returns its id
func (s *testServer) addToCart(t *testing.T, session *http.Cookie, eventID, value int64) int64 {
	t.Helper()

	rec := s.do(t, "POST", "/api/cart", CartAddRequest{EventID: eventID, Value: value}, session)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add to cart failed with %d: %s", rec.Code, rec.Body.String())
	}

	var ticket TicketResponse
	decodeBody(t, rec, &ticket)
	return ticket.ID
}

// checkout pays for the given tickets through the API
func (s *testServer) checkout(t *testing.T, session *http.Cookie, ticketIDs ...int64) {
	t.Helper()

	rec := s.do(t, "POST", "/api/checkout", CheckoutRequest{TicketIDs: ticketIDs, CardToken: "tok_test"}, session)
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout failed with %d: %s", rec.Code, rec.Body.String())
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// errorCode extracts the error code from an API error response
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var apiErr APIError
	decodeBody(t, rec, &apiErr)
	return apiErr.Code
}

func eventPath(id int64) string {
	return fmt.Sprintf("/api/events/%d", id)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/summitraffle/summitraffle/internal/models"
)

// newTestRepo creates a new in-memory repository for testing.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	return repo
}

// seedUser creates a user with an allocated id and returns it
func seedUser(t *testing.T, repo *Repository, phone string) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := repo.AllocateID(ctx, KindUser)
	if err != nil {
		t.Fatalf("AllocateID failed: %v", err)
	}
	err = repo.CreateUser(ctx, models.User{
		ID: id, FirstName: "Test", LastName: "User", Phone: phone, Email: phone + "@example.com",
	}, "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return id
}

// seedEvent creates an open event and returns its id
func seedEvent(t *testing.T, repo *Repository, name string) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := repo.AllocateID(ctx, KindEvent)
	if err != nil {
		t.Fatalf("AllocateID failed: %v", err)
	}
	err = repo.CreateEvent(ctx, models.Event{
		ID: id, Name: name, StartsAt: time.Now(), EndsAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return id
}

// seedTicket creates an unbought ticket and returns its id
func seedTicket(t *testing.T, repo *Repository, userID, eventID, value int64) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := repo.AllocateID(ctx, KindTicket)
	if err != nil {
		t.Fatalf("AllocateID failed: %v", err)
	}
	err = repo.CreateTicket(ctx, models.Ticket{ID: id, UserID: userID, EventID: eventID, Value: value})
	if err != nil {
		t.Fatalf("CreateTicket failed: %v", err)
	}
	return id
}

// ==================== Counter Tests ====================

func TestAllocateID_Sequence(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.AllocateID(ctx, KindUser)
	if err != nil {
		t.Fatalf("AllocateID failed: %v", err)
	}
	second, err := repo.AllocateID(ctx, KindUser)
	if err != nil {
		t.Fatalf("AllocateID failed: %v", err)
	}

	if first != 1 {
		t.Errorf("expected first user id 1, got %d", first)
	}
	if second != first+3 {
		t.Errorf("expected second user id %d (stride 3), got %d", first+3, second)
	}
}

func TestAllocateID_IndependentKinds(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID, _ := repo.AllocateID(ctx, KindUser)
	eventID, _ := repo.AllocateID(ctx, KindEvent)
	ticketID, _ := repo.AllocateID(ctx, KindTicket)

	// Each kind starts at 1 on its own cursor
	if userID != 1 || eventID != 1 || ticketID != 1 {
		t.Errorf("expected 1,1,1 got %d,%d,%d", userID, eventID, ticketID)
	}

	// Advancing one kind leaves the others untouched
	eventID2, _ := repo.AllocateID(ctx, KindEvent)
	if eventID2 != 5 {
		t.Errorf("expected event id 5 (stride 4), got %d", eventID2)
	}
	userID2, _ := repo.AllocateID(ctx, KindUser)
	if userID2 != 4 {
		t.Errorf("expected user id 4 (stride 3), got %d", userID2)
	}
}

func TestAllocateID_Uniqueness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		id, err := repo.AllocateID(ctx, KindTicket)
		if err != nil {
			t.Fatalf("AllocateID failed on iteration %d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d allocated", id)
		}
		seen[id] = true
	}
}

func TestAllocateID_Monotonic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 20; i++ {
		id, err := repo.AllocateID(ctx, KindEvent)
		if err != nil {
			t.Fatalf("AllocateID failed: %v", err)
		}
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestAllocateID_NotInitialized(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.DropCounters(ctx); err != nil {
		t.Fatalf("DropCounters failed: %v", err)
	}

	_, err := repo.AllocateID(ctx, KindUser)
	if err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestAllocateID_UnknownKind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AllocateID(ctx, IDKind("widget"))
	if err == nil {
		t.Error("expected error for unknown id kind, got nil")
	}
}

// ==================== User Tests ====================

func TestCreateUser_AndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := seedUser(t, repo, "555-0001")

	user, err := repo.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Phone != "555-0001" {
		t.Errorf("expected phone '555-0001', got %q", user.Phone)
	}
	if user.Balance != 0 {
		t.Errorf("expected zero starting balance, got %d", user.Balance)
	}
}

func TestGetUser_NonExistent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetUser(ctx, 999)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUser_DuplicatePhone(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, repo, "555-0002")

	id, _ := repo.AllocateID(ctx, KindUser)
	err := repo.CreateUser(ctx, models.User{
		ID: id, FirstName: "Other", LastName: "User", Phone: "555-0002",
	}, "hash")
	if err == nil {
		t.Error("expected error for duplicate phone, got nil")
	}
}

func TestGetUserCredentials(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := seedUser(t, repo, "555-0003")

	gotID, hash, err := repo.GetUserCredentials(ctx, "555-0003")
	if err != nil {
		t.Fatalf("GetUserCredentials failed: %v", err)
	}
	if gotID != id {
		t.Errorf("expected id %d, got %d", id, gotID)
	}
	if hash != "hash" {
		t.Errorf("expected stored hash, got %q", hash)
	}

	_, _, err = repo.GetUserCredentials(ctx, "no-such-phone")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserExistsByPhone(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, repo, "555-0004")

	exists, err := repo.UserExistsByPhone(ctx, "555-0004")
	if err != nil || !exists {
		t.Errorf("expected exists=true, got %v err %v", exists, err)
	}
	exists, err = repo.UserExistsByPhone(ctx, "555-9999")
	if err != nil || exists {
		t.Errorf("expected exists=false, got %v err %v", exists, err)
	}
}

func TestUpdateUserProfile(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := seedUser(t, repo, "555-0005")

	if err := repo.UpdateUserProfile(ctx, id, "New", "Name", "new@example.com", "pic.png"); err != nil {
		t.Fatalf("UpdateUserProfile failed: %v", err)
	}

	user, _ := repo.GetUser(ctx, id)
	if user.FirstName != "New" || user.Email != "new@example.com" || user.ProfilePic != "pic.png" {
		t.Errorf("profile not updated: %+v", user)
	}

	if err := repo.UpdateUserProfile(ctx, 999, "A", "B", "", ""); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestCreditBalance(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := seedUser(t, repo, "555-0006")

	if err := repo.CreditBalance(ctx, id, 50); err != nil {
		t.Fatalf("CreditBalance failed: %v", err)
	}
	if err := repo.CreditBalance(ctx, id, 25); err != nil {
		t.Fatalf("CreditBalance failed: %v", err)
	}

	user, _ := repo.GetUser(ctx, id)
	if user.Balance != 75 {
		t.Errorf("expected balance 75, got %d", user.Balance)
	}

	if err := repo.CreditBalance(ctx, 999, 10); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for missing user, got %v", err)
	}
}

// ==================== Event Tests ====================

func TestCreateEvent_AndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := seedEvent(t, repo, "Spring Raffle")

	event, err := repo.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if event.Name != "Spring Raffle" {
		t.Errorf("expected name 'Spring Raffle', got %q", event.Name)
	}
	if event.Ended {
		t.Error("new event should not be ended")
	}
	if event.WinnerID != nil {
		t.Error("new event should have no winner")
	}
}

func TestListOpenEvents_ExcludesEnded(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	open := seedEvent(t, repo, "Open")
	closed := seedEvent(t, repo, "Closed")
	userID := seedUser(t, repo, "555-0010")

	if err := repo.AppendEntries(ctx, closed, userID, 1, 1); err != nil {
		t.Fatalf("AppendEntries failed: %v", err)
	}
	if err := repo.CloseEvent(ctx, closed, &userID, 1); err != nil {
		t.Fatalf("CloseEvent failed: %v", err)
	}

	events, err := repo.ListOpenEvents(ctx)
	if err != nil {
		t.Fatalf("ListOpenEvents failed: %v", err)
	}
	if len(events) != 1 || events[0].ID != open {
		t.Errorf("expected only event %d open, got %+v", open, events)
	}

	all, err := repo.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 events total, got %d", len(all))
	}
}

func TestCloseEvent_CompareAndSwap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	eventID := seedEvent(t, repo, "CAS")
	userID := seedUser(t, repo, "555-0011")

	if err := repo.CloseEvent(ctx, eventID, &userID, 5); err != nil {
		t.Fatalf("first CloseEvent failed: %v", err)
	}

	// Second close loses the compare-and-swap
	if err := repo.CloseEvent(ctx, eventID, &userID, 5); err != ErrAlreadyEnded {
		t.Errorf("expected ErrAlreadyEnded, got %v", err)
	}

	event, _ := repo.GetEvent(ctx, eventID)
	if !event.Ended || event.WinnerID == nil || *event.WinnerID != userID || event.WinnerValue != 5 {
		t.Errorf("winner not recorded: %+v", event)
	}
}

func TestCloseEvent_NonExistent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	winnerID := int64(1)
	if err := repo.CloseEvent(ctx, 999, &winnerID, 1); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ==================== Entry Tests ====================

func TestAppendEntries_PositionsAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	eventID := seedEvent(t, repo, "Entries")
	alice := seedUser(t, repo, "555-0020")
	bob := seedUser(t, repo, "555-0021")

	if err := repo.AppendEntries(ctx, eventID, alice, 3, 3); err != nil {
		t.Fatalf("AppendEntries failed: %v", err)
	}
	if err := repo.AppendEntries(ctx, eventID, bob, 2, 2); err != nil {
		t.Fatalf("AppendEntries failed: %v", err)
	}

	entries, err := repo.ListEntries(ctx, eventID)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	// Append order preserved: alice's 3 then bob's 2
	for i := 0; i < 3; i++ {
		if entries[i].UserID != alice || entries[i].Weight != 3 {
			t.Errorf("entry %d: expected alice weight 3, got %+v", i, entries[i])
		}
	}
	for i := 3; i < 5; i++ {
		if entries[i].UserID != bob || entries[i].Weight != 2 {
			t.Errorf("entry %d: expected bob weight 2, got %+v", i, entries[i])
		}
	}
}

func TestAppendEntries_EndedEvent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	eventID := seedEvent(t, repo, "Ended")
	userID := seedUser(t, repo, "555-0022")

	if err := repo.CloseEvent(ctx, eventID, nil, 0); err != nil {
		t.Fatalf("CloseEvent failed: %v", err)
	}

	if err := repo.AppendEntries(ctx, eventID, userID, 1, 1); err != ErrAlreadyEnded {
		t.Errorf("expected ErrAlreadyEnded, got %v", err)
	}
}

func TestAppendEntries_NonExistentEvent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0023")
	if err := repo.AppendEntries(ctx, 999, userID, 1, 1); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEntryCounts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	eventID := seedEvent(t, repo, "Counts")
	alice := seedUser(t, repo, "555-0024")
	bob := seedUser(t, repo, "555-0025")

	repo.AppendEntries(ctx, eventID, alice, 4, 4)
	repo.AppendEntries(ctx, eventID, bob, 1, 1)
	repo.AppendEntries(ctx, eventID, alice, 2, 2)

	counts, err := repo.EntryCounts(ctx, eventID)
	if err != nil {
		t.Fatalf("EntryCounts failed: %v", err)
	}
	if counts[alice] != 6 {
		t.Errorf("expected alice count 6, got %d", counts[alice])
	}
	if counts[bob] != 1 {
		t.Errorf("expected bob count 1, got %d", counts[bob])
	}
}

// ==================== Ticket Tests ====================

func TestCreateTicket_AndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0030")
	eventID := seedEvent(t, repo, "Tickets")
	ticketID := seedTicket(t, repo, userID, eventID, 3)

	ticket, err := repo.GetTicket(ctx, ticketID)
	if err != nil {
		t.Fatalf("GetTicket failed: %v", err)
	}
	if ticket.Value != 3 || ticket.Bought {
		t.Errorf("unexpected ticket: %+v", ticket)
	}
}

func TestListCartTickets_OnlyUnbought(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0031")
	eventID := seedEvent(t, repo, "Cart")
	carted := seedTicket(t, repo, userID, eventID, 1)
	settled := seedTicket(t, repo, userID, eventID, 2)

	if err := repo.SettleTicket(ctx, settled); err != nil {
		t.Fatalf("SettleTicket failed: %v", err)
	}

	cart, err := repo.ListCartTickets(ctx, userID)
	if err != nil {
		t.Fatalf("ListCartTickets failed: %v", err)
	}
	if len(cart) != 1 || cart[0].ID != carted {
		t.Errorf("expected only ticket %d in cart, got %+v", carted, cart)
	}
}

func TestSettleTicket_AppendsValueEntries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0032")
	eventID := seedEvent(t, repo, "Settle")
	ticketID := seedTicket(t, repo, userID, eventID, 4)

	if err := repo.SettleTicket(ctx, ticketID); err != nil {
		t.Fatalf("SettleTicket failed: %v", err)
	}

	// A value-4 ticket contributes 4 entries, each weight 4
	entries, _ := repo.ListEntries(ctx, eventID)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	for i, entry := range entries {
		if entry.UserID != userID || entry.Weight != 4 {
			t.Errorf("entry %d: expected user %d weight 4, got %+v", i, userID, entry)
		}
	}

	ticket, _ := repo.GetTicket(ctx, ticketID)
	if !ticket.Bought {
		t.Error("ticket should be marked bought")
	}
}

func TestSettleTicket_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0033")
	eventID := seedEvent(t, repo, "Idem")
	ticketID := seedTicket(t, repo, userID, eventID, 2)

	if err := repo.SettleTicket(ctx, ticketID); err != nil {
		t.Fatalf("first SettleTicket failed: %v", err)
	}

	// A redelivered confirmation must not touch the pool again
	if err := repo.SettleTicket(ctx, ticketID); err != ErrAlreadyPurchased {
		t.Errorf("expected ErrAlreadyPurchased, got %v", err)
	}

	entries, _ := repo.ListEntries(ctx, eventID)
	if len(entries) != 2 {
		t.Errorf("expected pool unchanged at 2 entries, got %d", len(entries))
	}
}

func TestSettleTicket_EndedEventLeavesTicketUnbought(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0034")
	eventID := seedEvent(t, repo, "Late")
	ticketID := seedTicket(t, repo, userID, eventID, 2)

	if err := repo.CloseEvent(ctx, eventID, nil, 0); err != nil {
		t.Fatalf("CloseEvent failed: %v", err)
	}

	if err := repo.SettleTicket(ctx, ticketID); err != ErrAlreadyEnded {
		t.Errorf("expected ErrAlreadyEnded, got %v", err)
	}

	// The failed settlement must roll back: ticket stays unbought, pool empty
	ticket, _ := repo.GetTicket(ctx, ticketID)
	if ticket.Bought {
		t.Error("ticket should remain unbought after failed settlement")
	}
	entries, _ := repo.ListEntries(ctx, eventID)
	if len(entries) != 0 {
		t.Errorf("expected empty pool, got %d entries", len(entries))
	}
}

func TestSettleTicket_NonExistent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SettleTicket(ctx, 999); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUnboughtTickets(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0035")
	eventID := seedEvent(t, repo, "Purge")
	otherEvent := seedEvent(t, repo, "Keep")

	seedTicket(t, repo, userID, eventID, 1)
	seedTicket(t, repo, userID, eventID, 1)
	settled := seedTicket(t, repo, userID, eventID, 1)
	kept := seedTicket(t, repo, userID, otherEvent, 1)

	if err := repo.SettleTicket(ctx, settled); err != nil {
		t.Fatalf("SettleTicket failed: %v", err)
	}

	purged, err := repo.DeleteUnboughtTickets(ctx, eventID)
	if err != nil {
		t.Fatalf("DeleteUnboughtTickets failed: %v", err)
	}
	if purged != 2 {
		t.Errorf("expected 2 purged, got %d", purged)
	}

	// Settled ticket and other-event ticket survive
	if _, err := repo.GetTicket(ctx, settled); err != nil {
		t.Errorf("settled ticket should survive: %v", err)
	}
	if _, err := repo.GetTicket(ctx, kept); err != nil {
		t.Errorf("other-event ticket should survive: %v", err)
	}
}

// ==================== Notification Tests ====================

func TestNotifications_NewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0040")

	if _, err := repo.CreateNotification(ctx, userID, "first"); err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}
	if _, err := repo.CreateNotification(ctx, userID, "second"); err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}

	notifications, err := repo.ListNotifications(ctx, userID)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	if notifications[0].Message != "second" || notifications[1].Message != "first" {
		t.Errorf("expected newest first, got %q then %q", notifications[0].Message, notifications[1].Message)
	}
}

// ==================== Settings Tests ====================

func TestSettings_Defaults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	value, err := repo.GetSetting(ctx, "sales_open")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if value != "true" {
		t.Errorf("expected default sales_open 'true', got %q", value)
	}

	_, err = repo.GetSetting(ctx, "no-such-key")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettings_SetAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetSetting(ctx, "base_url", "http://example.com"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	value, err := repo.GetSetting(ctx, "base_url")
	if err != nil || value != "http://example.com" {
		t.Errorf("expected stored value, got %q err %v", value, err)
	}

	// Overwrite
	repo.SetSetting(ctx, "base_url", "http://other.com")
	value, _ = repo.GetSetting(ctx, "base_url")
	if value != "http://other.com" {
		t.Errorf("expected overwritten value, got %q", value)
	}
}

// ==================== Stats Tests ====================

func TestGetRaffleStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := seedUser(t, repo, "555-0050")
	eventID := seedEvent(t, repo, "Stats")
	settled := seedTicket(t, repo, userID, eventID, 1)
	seedTicket(t, repo, userID, eventID, 1)
	repo.SettleTicket(ctx, settled)

	stats, err := repo.GetRaffleStats(ctx)
	if err != nil {
		t.Fatalf("GetRaffleStats failed: %v", err)
	}
	if stats["total_users"] != 1 {
		t.Errorf("expected 1 user, got %v", stats["total_users"])
	}
	if stats["open_events"] != 1 {
		t.Errorf("expected 1 open event, got %v", stats["open_events"])
	}
	if stats["tickets_sold"] != 1 {
		t.Errorf("expected 1 sold ticket, got %v", stats["tickets_sold"])
	}
	if stats["tickets_carted"] != 1 {
		t.Errorf("expected 1 carted ticket, got %v", stats["tickets_carted"])
	}
}

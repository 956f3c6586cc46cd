package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/summitraffle/summitraffle/internal/errors"
	"github.com/summitraffle/summitraffle/internal/models"
)

// IDKind selects a cursor inside the counter record.
type IDKind string

const (
	KindUser   IDKind = "user"
	KindEvent  IDKind = "event"
	KindTicket IDKind = "ticket"
)

// Cursor strides. Uneven on purpose: allocations only need to be unique and
// increasing, and the gaps leave headroom for manually seeded records.
var idStrides = map[IDKind]int64{
	KindUser:   3,
	KindEvent:  4,
	KindTicket: 4,
}

var idColumns = map[IDKind]string{
	KindUser:   "next_user_id",
	KindEvent:  "next_event_id",
	KindTicket: "next_ticket_id",
}

// maxWriteRetries bounds internal retries of writes that lose a
// concurrent-modification race before surfacing the failure.
const maxWriteRetries = 5

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_user_id INTEGER NOT NULL,
			next_event_id INTEGER NOT NULL,
			next_ticket_id INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT UNIQUE NOT NULL,
			email TEXT,
			password_hash TEXT NOT NULL,
			profile_pic TEXT,
			balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			starts_at DATETIME NOT NULL,
			ends_at DATETIME NOT NULL,
			ended BOOLEAN NOT NULL DEFAULT 0,
			winner_id INTEGER,
			winner_value INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (winner_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS event_entries (
			event_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			weight INTEGER NOT NULL,
			PRIMARY KEY (event_id, position),
			FOREIGN KEY (event_id) REFERENCES events(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL,
			event_id INTEGER NOT NULL,
			value INTEGER NOT NULL CHECK (value > 0),
			bought BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (event_id) REFERENCES events(id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_event ON event_entries(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_user ON tickets(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_event ON tickets(event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	// Seed the singleton counter record. Created once at setup, mutated on
	// every allocation, never deleted.
	if _, err := r.db.Exec(
		`INSERT OR IGNORE INTO counters (id, next_user_id, next_event_id, next_ticket_id) VALUES (1, 1, 1, 1)`,
	); err != nil {
		return err
	}

	// Insert default settings if not exists
	defaultSettings := map[string]string{
		"sales_open": "true",
	}

	for key, value := range defaultSettings {
		_, err := r.db.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, value)
		if err != nil {
			return err
		}
	}

	return nil
}

// isBusy reports whether err is a transient SQLite lock error worth retrying.
func isBusy(err error) bool {
	if sqliteErr, ok := err.(sqlite3.Error); ok {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

// withTx runs fn inside a transaction, retrying the whole transaction a
// bounded number of times when it loses a lock race or an explicit
// compare-and-swap. Surfaces a RetryExhausted error once the budget is spent.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			if isBusy(err) {
				lastErr = err
				time.Sleep(time.Duration(attempt+1) * 5 * time.Millisecond)
				continue
			}
			return err
		}

		err = fn(tx)
		if err == nil {
			err = tx.Commit()
			if err == nil {
				return nil
			}
		} else {
			tx.Rollback()
		}

		if isBusy(err) || err == ErrConcurrentModification {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 5 * time.Millisecond)
			continue
		}
		return err
	}
	return errors.RetryExhausted(lastErr)
}

// ==================== Counter Methods ====================

// AllocateID reads the cursor for kind, advances it by the kind's stride and
// returns the pre-advance value. The read and the guarded update run in one
// transaction so two concurrent allocations can never return the same value.
func (r *Repository) AllocateID(ctx context.Context, kind IDKind) (int64, error) {
	column, ok := idColumns[kind]
	if !ok {
		return 0, errors.InvalidInput("unknown id kind: " + string(kind))
	}
	stride := idStrides[kind]

	var allocated int64
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT `+column+` FROM counters WHERE id = 1`).Scan(&allocated)
		if err == sql.ErrNoRows {
			return ErrNotInitialized
		}
		if err != nil {
			return err
		}

		// Guard on the value we read so a lost race retries instead of
		// double-allocating.
		result, err := tx.ExecContext(ctx,
			`UPDATE counters SET `+column+` = ? WHERE id = 1 AND `+column+` = ?`,
			allocated+stride, allocated)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConcurrentModification
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return allocated, nil
}

// DropCounters removes the counter record. Only used by tests and the reset
// path to exercise the NotInitialized failure mode.
func (r *Repository) DropCounters(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM counters`)
	return err
}

// ==================== User Methods ====================

// CreateUser inserts a user with a pre-allocated id and a bcrypt password hash.
func (r *Repository) CreateUser(ctx context.Context, user models.User, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, phone, email, password_hash, profile_pic, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`, user.ID, user.FirstName, user.LastName, user.Phone, user.Email, passwordHash, user.ProfilePic)
	return err
}

// GetUser returns a user by id
func (r *Repository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	var email, profilePic sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, email, profile_pic, balance
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Phone, &email, &profilePic, &user.Balance)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Email = email.String
	user.ProfilePic = profilePic.String
	return &user, nil
}

// GetUserCredentials returns the user id and stored password hash for a phone
// number. The hash never leaves the repository/auth boundary.
func (r *Repository) GetUserCredentials(ctx context.Context, phone string) (int64, string, error) {
	var id int64
	var hash string
	err := r.db.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE phone = ?`, phone).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return 0, "", ErrNotFound
	}
	return id, hash, err
}

// UserExistsByPhone checks if a user with the given phone exists
func (r *Repository) UserExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE phone = ?)`, phone).Scan(&exists)
	return exists, err
}

// UpdateUserProfile updates the mutable profile fields of a user
func (r *Repository) UpdateUserProfile(ctx context.Context, id int64, firstName, lastName, email, profilePic string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET first_name = ?, last_name = ?, email = ?, profile_pic = ?
		WHERE id = ?
	`, firstName, lastName, email, profilePic, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserPassword replaces a user's password hash (password reset flow).
func (r *Repository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUserByPhone returns a user by phone number
func (r *Repository) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM users WHERE phone = ?`, phone).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetUser(ctx, id)
}

// CreditBalance atomically adds amount to a user's balance. Balance is only
// ever credited by the draw engine; there is no debit path in this core.
func (r *Repository) CreditBalance(ctx context.Context, userID, amount int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET balance = balance + ? WHERE id = ?`, amount, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Event Methods ====================

// CreateEvent inserts an event with a pre-allocated id, an empty pool and
// ended=false.
func (r *Repository) CreateEvent(ctx context.Context, event models.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, name, starts_at, ends_at, ended)
		VALUES (?, ?, ?, ?, 0)
	`, event.ID, event.Name, event.StartsAt, event.EndsAt)
	return err
}

// GetEvent returns an event by id
func (r *Repository) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	var winnerID sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, starts_at, ends_at, ended, winner_id, winner_value
		FROM events WHERE id = ?
	`, id).Scan(&event.ID, &event.Name, &event.StartsAt, &event.EndsAt, &event.Ended, &winnerID, &event.WinnerValue)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if winnerID.Valid {
		id := winnerID.Int64
		event.WinnerID = &id
	}
	return &event, nil
}

// ListEvents returns all events, newest first
func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	return r.listEvents(ctx, `
		SELECT id, name, starts_at, ends_at, ended, winner_id, winner_value
		FROM events ORDER BY starts_at DESC
	`)
}

// ListOpenEvents returns events that have not been drawn yet
func (r *Repository) ListOpenEvents(ctx context.Context) ([]models.Event, error) {
	return r.listEvents(ctx, `
		SELECT id, name, starts_at, ends_at, ended, winner_id, winner_value
		FROM events WHERE ended = 0 ORDER BY starts_at
	`)
}

func (r *Repository) listEvents(ctx context.Context, query string) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var winnerID sql.NullInt64
		if err := rows.Scan(&event.ID, &event.Name, &event.StartsAt, &event.EndsAt,
			&event.Ended, &winnerID, &event.WinnerValue); err != nil {
			return nil, err
		}
		if winnerID.Valid {
			id := winnerID.Int64
			event.WinnerID = &id
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// AppendEntries appends count pool entries for userID, each of the given
// weight, to an event. The length read and the inserts run in one transaction
// so two settlements for the same event cannot interleave at the same offset.
func (r *Repository) AppendEntries(ctx context.Context, eventID, userID int64, count, weight int64) error {
	if count <= 0 {
		return nil
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return appendEntriesTx(ctx, tx, eventID, userID, count, weight)
	})
}

// appendEntriesTx is the shared append used by AppendEntries and SettleTicket.
func appendEntriesTx(ctx context.Context, tx *sql.Tx, eventID, userID int64, count, weight int64) error {
	var ended bool
	err := tx.QueryRowContext(ctx, `SELECT ended FROM events WHERE id = ?`, eventID).Scan(&ended)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if ended {
		return ErrAlreadyEnded
	}

	var next int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM event_entries WHERE event_id = ?`, eventID).Scan(&next); err != nil {
		return err
	}

	for i := int64(0); i < count; i++ {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_entries (event_id, position, user_id, weight) VALUES (?, ?, ?, ?)`,
			eventID, next+i, userID, weight); err != nil {
			return err
		}
	}
	return nil
}

// ListEntries returns an event's pool entries in append order
func (r *Repository) ListEntries(ctx context.Context, eventID int64) ([]models.PoolEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, weight FROM event_entries WHERE event_id = ? ORDER BY position
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.PoolEntry
	for rows.Next() {
		var entry models.PoolEntry
		if err := rows.Scan(&entry.UserID, &entry.Weight); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// EntryCounts returns the number of pool entries per participant, the
// read-only projection the presentation layer consumes.
func (r *Repository) EntryCounts(ctx context.Context, eventID int64) (map[int64]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, COUNT(*) FROM event_entries WHERE event_id = ? GROUP BY user_id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var userID, count int64
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, err
		}
		counts[userID] = count
	}
	return counts, rows.Err()
}

// CloseEvent performs the one-way ended transition and records the winner.
// The WHERE ended = 0 guard makes the transition a compare-and-swap: a
// concurrent close loses the race and gets ErrAlreadyEnded.
func (r *Repository) CloseEvent(ctx context.Context, eventID int64, winnerID *int64, winnerValue int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE events SET ended = 1, winner_id = ?, winner_value = ?
		WHERE id = ? AND ended = 0
	`, winnerID, winnerValue, eventID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM events WHERE id = ?)`, eventID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrAlreadyEnded
	}
	return nil
}

// ==================== Ticket Methods ====================

// CreateTicket inserts an unbought ticket with a pre-allocated id
func (r *Repository) CreateTicket(ctx context.Context, ticket models.Ticket) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tickets (id, user_id, event_id, value, bought)
		VALUES (?, ?, ?, ?, 0)
	`, ticket.ID, ticket.UserID, ticket.EventID, ticket.Value)
	return err
}

// GetTicket returns a ticket by id
func (r *Repository) GetTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, event_id, value, bought FROM tickets WHERE id = ?
	`, id).Scan(&ticket.ID, &ticket.UserID, &ticket.EventID, &ticket.Value, &ticket.Bought)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListCartTickets returns a user's unbought tickets
func (r *Repository) ListCartTickets(ctx context.Context, userID int64) ([]models.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, event_id, value, bought
		FROM tickets WHERE user_id = ? AND bought = 0 ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		if err := rows.Scan(&ticket.ID, &ticket.UserID, &ticket.EventID, &ticket.Value, &ticket.Bought); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// SettleTicket converts one paid-for ticket into pool entries and marks it
// bought, all in one transaction. The bought compare-and-swap is the
// settlement idempotency guard: a redelivered confirmation finds bought = 1
// and gets ErrAlreadyPurchased without touching the pool.
func (r *Repository) SettleTicket(ctx context.Context, ticketID int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var ticket models.Ticket
		err := tx.QueryRowContext(ctx, `
			SELECT id, user_id, event_id, value, bought FROM tickets WHERE id = ?
		`, ticketID).Scan(&ticket.ID, &ticket.UserID, &ticket.EventID, &ticket.Value, &ticket.Bought)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if ticket.Bought {
			return ErrAlreadyPurchased
		}

		// Weight equals value: each unit of value is one independent chance.
		if err := appendEntriesTx(ctx, tx, ticket.EventID, ticket.UserID, ticket.Value, ticket.Value); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE tickets SET bought = 1 WHERE id = ? AND bought = 0`, ticketID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConcurrentModification
		}
		return nil
	})
}

// DeleteUnboughtTickets removes all unbought tickets for an event and returns
// how many were purged. Used by the draw-close cart cleanup.
func (r *Repository) DeleteUnboughtTickets(ctx context.Context, eventID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tickets WHERE event_id = ? AND bought = 0`, eventID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ==================== Notification Methods ====================

// CreateNotification appends a notification for a user
func (r *Repository) CreateNotification(ctx context.Context, userID int64, message string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (user_id, message) VALUES (?, ?)
	`, userID, message)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListNotifications returns a user's notifications, newest first
func (r *Repository) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, message, created_at
		FROM notifications WHERE user_id = ? ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// ==================== Stats Methods ====================

// GetRaffleStats returns overall raffle statistics for the admin dashboard
func (r *Repository) GetRaffleStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	queries := map[string]string{
		"total_users":    `SELECT COUNT(*) FROM users`,
		"open_events":    `SELECT COUNT(*) FROM events WHERE ended = 0`,
		"ended_events":   `SELECT COUNT(*) FROM events WHERE ended = 1`,
		"tickets_sold":   `SELECT COUNT(*) FROM tickets WHERE bought = 1`,
		"tickets_carted": `SELECT COUNT(*) FROM tickets WHERE bought = 0`,
		"notifications":  `SELECT COUNT(*) FROM notifications`,
	}

	for key, query := range queries {
		var count int
		if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, err
		}
		stats[key] = count
	}

	return stats, nil
}

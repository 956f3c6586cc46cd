package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/models"
	"github.com/summitraffle/summitraffle/internal/repository"
)

// DrawServiceRepository defines the repository methods needed by DrawService
type DrawServiceRepository interface {
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEntries(ctx context.Context, eventID int64) ([]models.PoolEntry, error)
	CloseEvent(ctx context.Context, eventID int64, winnerID *int64, winnerValue int64) error
	CreditBalance(ctx context.Context, userID, amount int64) error
	DeleteUnboughtTickets(ctx context.Context, eventID int64) (int64, error)
}

// DrawService selects a winner from an event's entry pool, settles the
// balance credit and fans out one notification per participant.
type DrawService struct {
	log         logger.Logger
	repo        DrawServiceRepository
	notify      Notifier
	broadcaster Broadcaster

	// intn is the random index source; replaceable for deterministic tests.
	intn func(n int) int

	// drawing holds event ids with an in-flight draw, guarding the pick and
	// close against in-process re-entry.
	drawing sync.Map
}

// NewDrawService creates a new DrawService
func NewDrawService(log logger.Logger, repo DrawServiceRepository, notify Notifier) *DrawService {
	return &DrawService{
		log:    log,
		repo:   repo,
		notify: notify,
		intn:   rand.Intn,
	}
}

// SetBroadcaster sets the broadcaster for announcing draw results
func (s *DrawService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetIntn sets a custom random index source (for testing)
func (s *DrawService) SetIntn(intn func(n int) int) {
	s.intn = intn
}

// DrawResult reports a completed draw. Warnings collect post-close failures
// (credit, notification, cleanup): the draw itself is final once the event
// has closed, so these never fail the operation.
type DrawResult struct {
	EventID      int64    `json:"event_id"`
	WinnerID     int64    `json:"winner_id"`
	WinnerValue  int64    `json:"winner_value"`
	PoolSize     int      `json:"pool_size"`
	Participants int      `json:"participants"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Draw closes an event by picking a uniformly random entry from its pool.
// Probability of winning is proportional to entries held, which is in turn
// proportional to settled ticket value. The close is a compare-and-swap on
// the ended flag, so a concurrent draw on the same event fails rather than
// drawing twice.
func (s *DrawService) Draw(ctx context.Context, eventID int64) (*DrawResult, error) {
	if _, inFlight := s.drawing.LoadOrStore(eventID, struct{}{}); inFlight {
		return nil, ErrDrawInProgress
	}
	defer s.drawing.Delete(eventID)

	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Ended {
		return nil, ErrEventEnded
	}

	entries, err := s.repo.ListEntries(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		// Hard error: the event stays open instead of closing winnerless.
		return nil, ErrEmptyPool
	}

	index := s.intn(len(entries))
	winner := entries[index]

	// Critical section: the pool read above and this close act as one draw.
	// Losing the compare-and-swap means another draw already closed the
	// event; surface that instead of double-drawing.
	if err := s.repo.CloseEvent(ctx, eventID, &winner.UserID, winner.Weight); err != nil {
		if err == repository.ErrAlreadyEnded {
			return nil, ErrEventEnded
		}
		return nil, err
	}

	s.log.Info("Draw complete", "event_id", eventID, "winner_id", winner.UserID,
		"winner_value", winner.Weight, "pool_size", len(entries))

	result := &DrawResult{
		EventID:     eventID,
		WinnerID:    winner.UserID,
		WinnerValue: winner.Weight,
		PoolSize:    len(entries),
	}

	// From here on the event is closed and the winner is recorded; failures
	// are warnings, never a re-draw.
	if err := s.repo.CreditBalance(ctx, winner.UserID, winner.Weight); err != nil {
		s.warnf(result, "winner credit failed for user %d: %v", winner.UserID, err)
	}

	participants := distinctParticipants(entries)
	result.Participants = len(participants)
	for _, userID := range participants {
		var subject, message string
		if userID == winner.UserID {
			subject = "You won!"
			message = fmt.Sprintf("Congratulations! You won %d in the draw for %s. Your account balance has been credited.", winner.Weight, event.Name)
		} else {
			subject = "Draw results"
			message = fmt.Sprintf("The draw for %s has ended. You did not win this time. Better luck next event!", event.Name)
		}
		if err := s.notify.Notify(ctx, userID, subject, message); err != nil {
			s.warnf(result, "notification failed for user %d: %v", userID, err)
		}
	}

	if purged, err := s.repo.DeleteUnboughtTickets(ctx, eventID); err != nil {
		s.warnf(result, "abandoned cart cleanup failed: %v", err)
	} else if purged > 0 {
		s.log.Info("Purged abandoned cart tickets", "event_id", eventID, "count", purged)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDrawResult(eventID, winner.UserID, winner.Weight)
	}

	return result, nil
}

// warnf records and logs a post-close warning
func (s *DrawService) warnf(result *DrawResult, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.log.Warn("Draw completed with warning", "event_id", result.EventID, "warning", msg)
	result.Warnings = append(result.Warnings, msg)
}

// distinctParticipants returns each participant once, in first-appearance
// order, regardless of how many entries they hold.
func distinctParticipants(entries []models.PoolEntry) []int64 {
	seen := make(map[int64]bool, len(entries))
	var users []int64
	for _, entry := range entries {
		if !seen[entry.UserID] {
			seen[entry.UserID] = true
			users = append(users, entry.UserID)
		}
	}
	return users
}

package services

import (
	"context"
	"time"

	"github.com/summitraffle/summitraffle/internal/errors"
	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/models"
	"github.com/summitraffle/summitraffle/internal/repository"
)

// EventServiceRepository defines the repository methods needed by EventService
type EventServiceRepository interface {
	repository.CounterRepository
	repository.EventRepository
}

// EventService handles event lifecycle and read-side projections
type EventService struct {
	log  logger.Logger
	repo EventServiceRepository
}

// NewEventService creates a new EventService
func NewEventService(log logger.Logger, repo EventServiceRepository) *EventService {
	return &EventService{log: log, repo: repo}
}

// EventDetail is the read-only projection served to the presentation layer:
// the event plus its pool summarized as entry counts per participant.
type EventDetail struct {
	Event        models.Event    `json:"event"`
	PoolSize     int64           `json:"pool_size"`
	EntryCounts  map[int64]int64 `json:"entry_counts"`
	Participants int             `json:"participants"`
}

// CreateEvent allocates an event id and creates the event with an empty pool
func (s *EventService) CreateEvent(ctx context.Context, name string, startsAt, endsAt time.Time) (*models.Event, error) {
	if name == "" {
		return nil, errors.Validation("event name is required")
	}
	if !endsAt.After(startsAt) {
		return nil, errors.Validation("event end must be after its start")
	}

	id, err := s.repo.AllocateID(ctx, repository.KindEvent)
	if err != nil {
		return nil, err
	}

	event := models.Event{
		ID:       id,
		Name:     name,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info("Event created", "event_id", id, "name", name)
	return &event, nil
}

// GetEvent returns a single event
func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFound("event not found")
	}
	return event, err
}

// GetEventDetail returns an event with its pool summary
func (s *EventService) GetEventDetail(ctx context.Context, id int64) (*EventDetail, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.EntryCounts(ctx, id)
	if err != nil {
		return nil, err
	}

	var poolSize int64
	for _, c := range counts {
		poolSize += c
	}

	return &EventDetail{
		Event:        *event,
		PoolSize:     poolSize,
		EntryCounts:  counts,
		Participants: len(counts),
	}, nil
}

// ListEvents returns all events
func (s *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListEvents(ctx)
}

// ListUpcoming returns events that have not been drawn yet
func (s *EventService) ListUpcoming(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListOpenEvents(ctx)
}

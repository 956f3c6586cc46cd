package services

import (
	"context"

	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/repository"
)

// Broadcaster defines the interface for broadcasting messages to clients
type Broadcaster interface {
	BroadcastSalesStatus(open bool)
	BroadcastDrawResult(eventID, winnerID, winnerValue int64)
}

// SettingsService handles settings-related business logic
type SettingsService struct {
	log         logger.Logger
	repo        repository.SettingsRepository
	broadcaster Broadcaster
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *SettingsService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// IsSalesOpen checks if ticket sales are currently open
func (s *SettingsService) IsSalesOpen(ctx context.Context) (bool, error) {
	value, err := s.repo.GetSetting(ctx, "sales_open")
	if err != nil {
		if err == repository.ErrNotFound {
			return true, nil // Default to open if setting doesn't exist
		}
		return false, err
	}
	return value == "true", nil
}

// SetSalesOpen sets the ticket sales status and notifies connected clients
func (s *SettingsService) SetSalesOpen(ctx context.Context, open bool) error {
	value := "false"
	if open {
		value = "true"
	}
	if err := s.repo.SetSetting(ctx, "sales_open", value); err != nil {
		return err
	}

	s.log.Info("Ticket sales status changed", "open", open)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastSalesStatus(open)
	}
	return nil
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, "base_url")
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetBaseURL saves the application base URL
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, "base_url", url)
}

// GetSetting returns a raw setting value
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting stores a raw setting value
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

// GetStats returns raffle statistics for the admin dashboard
func (s *SettingsService) GetStats(ctx context.Context) (map[string]interface{}, error) {
	return s.repo.GetRaffleStats(ctx)
}

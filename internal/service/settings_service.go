package service

import (
	"context"
	"fmt"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/repository"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.CompanionSettings, error)
	Save(ctx context.Context, s *models.CompanionSettings) (*models.CompanionSettings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

// Get returns the stored settings, or the defaults when nothing has been
// saved yet.
func (s *settingsService) Get(ctx context.Context) (*models.CompanionSettings, error) {
	settings, found, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// Save validates and persists settings, creating the row on first save.
func (s *settingsService) Save(ctx context.Context, settings *models.CompanionSettings) (*models.CompanionSettings, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	existing, found, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if !found {
		id, err := s.repo.Create(ctx, settings)
		if err != nil {
			return nil, err
		}
		settings.ID = id
		return settings, nil
	}

	settings.ID = existing.ID
	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func validateSettings(s *models.CompanionSettings) error {
	if s.FlirtLevel < 1 || s.FlirtLevel > 10 {
		return fmt.Errorf("flirt_level must be between 1 and 10")
	}
	if s.PostTimeStart < 0 || s.PostTimeStart > 23 || s.PostTimeEnd < 0 || s.PostTimeEnd > 24 {
		return fmt.Errorf("posting window hours are out of range")
	}
	if s.PostTimeStart >= s.PostTimeEnd {
		return fmt.Errorf("post_time_start must be before post_time_end")
	}
	if s.ImagesPerDay < 0 || s.ReelsPerDay < 0 {
		return fmt.Errorf("daily post counts cannot be negative")
	}
	if len(s.ActiveWeekdays()) == 0 {
		return fmt.Errorf("at least one posting day is required")
	}
	return nil
}

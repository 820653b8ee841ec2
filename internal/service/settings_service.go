package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/repository"
)

var reminderTimeFormat = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type SettingsService interface {
	GetSettings(ctx context.Context) (*models.EmailSettings, error)
	UpdateSettings(ctx context.Context, settings *models.EmailSettings) (*models.EmailSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context) (*models.EmailSettings, error) {
	return s.settingsRepo.GetOrCreate(ctx)
}

func (s *settingsService) UpdateSettings(ctx context.Context, in *models.EmailSettings) (*models.EmailSettings, error) {
	if in.WeeklyReminderDay < 0 || in.WeeklyReminderDay > 6 {
		return nil, fmt.Errorf("%w: weekly_reminder_day must be 0..6", ErrValidation)
	}
	if in.WeeklyReminderTime != "" && !reminderTimeFormat.MatchString(in.WeeklyReminderTime) {
		return nil, fmt.Errorf("%w: weekly_reminder_time must be HH:MM", ErrValidation)
	}

	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	in.ID = settings.ID
	if err := s.settingsRepo.Save(ctx, in); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return in, nil
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bgaal/passhub/internal/notify"
	"github.com/bgaal/passhub/internal/repository"
)

// ReminderService sends the weekly reminder mail to every opted-in user. It is
// driven either by an in-process ticker or by a one-shot command; both call
// Run, which decides for itself whether today is the configured day.
type ReminderService struct {
	settingsRepo repository.SettingsRepository
	userRepo     repository.UserRepository
	notifier     *notify.Notifier
}

func NewReminderService(
	settingsRepo repository.SettingsRepository,
	userRepo repository.UserRepository,
	notifier *notify.Notifier,
) *ReminderService {
	return &ReminderService{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

// RunAt is the ticker entry point: it fires only during the configured hour,
// so an hourly tick sends at most once per day. A missing or malformed time
// setting means midnight.
func (s *ReminderService) RunAt(ctx context.Context, now time.Time) (int, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}
	if settings == nil || !settings.WeeklyReminderEnabled {
		return 0, nil
	}

	hour := 0
	if t, err := time.Parse("15:04", settings.WeeklyReminderTime); err == nil {
		hour = t.Hour()
	}
	if now.Hour() != hour {
		return 0, nil
	}

	return s.Run(ctx, now)
}

// Run returns the number of reminders sent. Sending twice on the same day
// sends twice: there is no delivery ledger.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (int, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}
	if settings == nil || !settings.WeeklyReminderEnabled {
		return 0, nil
	}
	if int(now.Weekday()) != settings.WeeklyReminderDay {
		return 0, nil
	}

	text := settings.WeeklyReminderText
	if text == "" {
		text = "Emlékeztető"
	}
	body := notify.BaseTemplate("Heti emlékeztető", text)

	users, err := s.userRepo.FindOptedIn(ctx)
	if err != nil {
		return 0, fmt.Errorf("load recipients: %w", err)
	}

	sent := 0
	for i := range users {
		if s.notifier.SendDirect(ctx, "Heti emlékeztető", body, users[i].Email) {
			sent++
		}
	}

	log.Printf("[ReminderService] weekly reminder: %d of %d sent", sent, len(users))
	return sent, nil
}

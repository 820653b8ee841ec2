package service

import (
	"context"
	"testing"
	"time"

	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/notify"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubSettingsRepo struct {
	settings *models.EmailSettings
}

func (s *stubSettingsRepo) Get(ctx context.Context) (*models.EmailSettings, error) {
	return s.settings, nil
}
func (s *stubSettingsRepo) GetOrCreate(ctx context.Context) (*models.EmailSettings, error) {
	return s.settings, nil
}
func (s *stubSettingsRepo) Save(ctx context.Context, settings *models.EmailSettings) error {
	return nil
}

type stubUserRepo struct {
	optedIn []models.User
	user    *models.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) FindAll(ctx context.Context) ([]models.User, error) { return nil, nil }
func (s *stubUserRepo) FindOptedIn(ctx context.Context) ([]models.User, error) {
	return s.optedIn, nil
}
func (s *stubUserRepo) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) GetDB() *gorm.DB                                     { return nil }

type countingMailer struct {
	sent int
}

func (m *countingMailer) Send(subject, htmlBody, to, from, password string) error {
	m.sent++
	return nil
}

// Wednesday in time.Weekday terms is 3.
var wednesday = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

func newReminderFixture(settings *models.EmailSettings, users []models.User) (*ReminderService, *countingMailer) {
	settingsRepo := &stubSettingsRepo{settings: settings}
	userRepo := &stubUserRepo{optedIn: users}
	m := &countingMailer{}
	n := notify.NewNotifier(settingsRepo, m, "env@example.com", "envpass")
	return NewReminderService(settingsRepo, userRepo, n), m
}

func TestReminderRun_SendsToOptedIn(t *testing.T) {
	svc, m := newReminderFixture(
		&models.EmailSettings{
			EmailFrom:             "cfg@example.com",
			EmailPassword:         "pw",
			WeeklyReminderEnabled: true,
			WeeklyReminderDay:     3,
			WeeklyReminderText:    "Ne felejtsd el a heti edzést!",
		},
		[]models.User{
			{ID: 1, Email: "a@example.com", WeeklyReminderOptIn: true},
			{ID: 2, Email: "b@example.com", WeeklyReminderOptIn: true},
		},
	)

	sent, err := svc.Run(context.Background(), wednesday)
	assert.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 2, m.sent)
}

func TestReminderRun_WrongDay(t *testing.T) {
	svc, m := newReminderFixture(
		&models.EmailSettings{
			EmailFrom:             "cfg@example.com",
			EmailPassword:         "pw",
			WeeklyReminderEnabled: true,
			WeeklyReminderDay:     5,
		},
		[]models.User{{ID: 1, Email: "a@example.com", WeeklyReminderOptIn: true}},
	)

	sent, err := svc.Run(context.Background(), wednesday)
	assert.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, m.sent)
}

func TestReminderRun_Disabled(t *testing.T) {
	svc, m := newReminderFixture(
		&models.EmailSettings{WeeklyReminderEnabled: false, WeeklyReminderDay: 3},
		[]models.User{{ID: 1, Email: "a@example.com", WeeklyReminderOptIn: true}},
	)

	sent, err := svc.Run(context.Background(), wednesday)
	assert.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, m.sent)
}

func TestReminderRun_NoSettingsRow(t *testing.T) {
	svc, m := newReminderFixture(nil, []models.User{{ID: 1, Email: "a@example.com"}})

	sent, err := svc.Run(context.Background(), wednesday)
	assert.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, m.sent)
}

func TestReminderRunAt_HourGate(t *testing.T) {
	settings := &models.EmailSettings{
		EmailFrom:             "cfg@example.com",
		EmailPassword:         "pw",
		WeeklyReminderEnabled: true,
		WeeklyReminderDay:     3,
		WeeklyReminderTime:    "09:00",
	}

	svc, m := newReminderFixture(settings,
		[]models.User{{ID: 1, Email: "a@example.com", WeeklyReminderOptIn: true}})

	// 09:xx on the configured day fires.
	sent, err := svc.RunAt(context.Background(), wednesday)
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)

	// Any other hour is skipped even on the right day.
	sent, err = svc.RunAt(context.Background(), wednesday.Add(3*time.Hour))
	assert.NoError(t, err)
	assert.Zero(t, sent)
	assert.Equal(t, 1, m.sent)
}

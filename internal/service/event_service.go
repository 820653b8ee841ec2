package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/notify"
	"github.com/bgaal/passhub/internal/repository"
	"github.com/bgaal/passhub/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrNoSpots              = errors.New("no spots left for this event")
	ErrAlreadyRegistered    = errors.New("user is already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, id uint, fields *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListWindow(ctx context.Context, today time.Time) ([]models.Event, time.Time, time.Time, error)
	Signup(ctx context.Context, eventID, userID uint) error
	AdminAssign(ctx context.Context, eventID, userID uint) error
	Unregister(ctx context.Context, eventID, userID uint) error
	AdminRemove(ctx context.Context, eventID, userID uint) error
	Participants(ctx context.Context, eventID uint) ([]models.EventRegistration, error)
	RegisteredEventIDs(ctx context.Context, userID uint) ([]uint, error)
	SpotsLeft(ctx context.Context, event *models.Event) (int, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	notifier  *notify.Notifier
	publisher *rabbitmq.Publisher
}

func NewEventService(
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier *notify.Notifier,
	publisher *rabbitmq.Publisher,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		publisher: publisher,
	}
}

func validateEvent(event *models.Event) error {
	if event.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if event.StartTime.IsZero() || event.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrValidation)
	}
	if !event.EndTime.After(event.StartTime) {
		return fmt.Errorf("%w: end_time must be after start_time", ErrValidation)
	}
	if event.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}
	if event.Color != "" && !models.ValidEventColor(event.Color) {
		return fmt.Errorf("%w: unknown color %q", ErrValidation, event.Color)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if event.Color == "" {
		event.Color = "blue"
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.publish("event.created", event)
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id uint, fields *models.Event) (*models.Event, error) {
	if err := validateEvent(fields); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	event.Name = fields.Name
	event.StartTime = fields.StartTime
	event.EndTime = fields.EndTime
	event.Capacity = fields.Capacity
	if fields.Color != "" {
		event.Color = fields.Color
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.publish("event.updated", event)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return ErrEventNotFound
	}
	if err := s.eventRepo.Delete(ctx, event); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.publish("event.deleted", map[string]any{"id": id, "name": event.Name})
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// TwoWeekWindow returns the first and last day of the rolling calendar window:
// today and the thirteen days after it.
func TwoWeekWindow(today time.Time) (time.Time, time.Time) {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return start, start.AddDate(0, 0, 13)
}

func (s *eventService) ListWindow(ctx context.Context, today time.Time) ([]models.Event, time.Time, time.Time, error) {
	start, end := TwoWeekWindow(today)
	endOfWindow := end.Add(24*time.Hour - time.Nanosecond)
	events, err := s.eventRepo.FindBetween(ctx, start, endOfWindow)
	if err != nil {
		return nil, start, end, fmt.Errorf("list events: %w", err)
	}
	return events, start, end, nil
}

func (s *eventService) Signup(ctx context.Context, eventID, userID uint) error {
	return s.register(ctx, eventID, userID, models.KindEventSignupUser)
}

func (s *eventService) AdminAssign(ctx context.Context, eventID, userID uint) error {
	return s.register(ctx, eventID, userID, models.KindEventSignupAdmin)
}

// register holds a row lock on the event while counting registrations, so two
// concurrent signups cannot both take the last spot.
func (s *eventService) register(ctx context.Context, eventID, userID uint, kind models.NotificationKind) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	var event *models.Event
	err = s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err = s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return ErrEventNotFound
		}

		if _, err := s.eventRepo.FindRegistration(ctx, tx, eventID, userID); err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		count, err := s.eventRepo.CountRegistrations(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if count >= int64(event.Capacity) {
			return ErrNoSpots
		}

		reg := &models.EventRegistration{EventID: eventID, UserID: userID}
		return s.eventRepo.CreateRegistration(ctx, tx, reg)
	})
	if err != nil {
		return err
	}

	body := notify.EventSignupUserEmail(user.Username, event)
	if kind == models.KindEventSignupAdmin {
		body = notify.EventSignupAdminEmail(user.Username, event)
	}
	s.notifier.Notify(ctx, kind, "Esemény jelentkezés", body, user.Email)
	s.publish("event.signup", map[string]any{"event_id": eventID, "user_id": userID})

	return nil
}

func (s *eventService) Unregister(ctx context.Context, eventID, userID uint) error {
	return s.removeRegistration(ctx, eventID, userID, models.KindEventUnregisterUser)
}

func (s *eventService) AdminRemove(ctx context.Context, eventID, userID uint) error {
	return s.removeRegistration(ctx, eventID, userID, models.KindEventUnregisterAdmin)
}

func (s *eventService) removeRegistration(ctx context.Context, eventID, userID uint, kind models.NotificationKind) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return ErrEventNotFound
	}

	db := s.eventRepo.GetDB()
	reg, err := s.eventRepo.FindRegistration(ctx, db, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		return err
	}

	if err := s.eventRepo.DeleteRegistration(ctx, reg); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}

	body := notify.EventUnregisterUserEmail(user.Username, event)
	if kind == models.KindEventUnregisterAdmin {
		body = notify.EventUnregisterAdminEmail(user.Username, event)
	}
	s.notifier.Notify(ctx, kind, "Esemény lejelentkezés", body, user.Email)
	s.publish("event.unregister", map[string]any{"event_id": eventID, "user_id": userID})

	return nil
}

func (s *eventService) Participants(ctx context.Context, eventID uint) ([]models.EventRegistration, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, ErrEventNotFound
	}
	return s.eventRepo.FindRegistrationsByEvent(ctx, eventID)
}

// RegisteredEventIDs lists the events the user is signed up for, so the
// calendar can mark them.
func (s *eventService) RegisteredEventIDs(ctx context.Context, userID uint) ([]uint, error) {
	regs, err := s.eventRepo.FindRegistrationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(regs))
	for i := range regs {
		ids = append(ids, regs[i].EventID)
	}
	return ids, nil
}

func (s *eventService) SpotsLeft(ctx context.Context, event *models.Event) (int, error) {
	count, err := s.eventRepo.CountRegistrations(ctx, s.eventRepo.GetDB(), event.ID)
	if err != nil {
		return 0, err
	}
	left := event.Capacity - int(count)
	if left < 0 {
		left = 0
	}
	return left, nil
}

func (s *eventService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[EventService] publish %s: %v", routingKey, err)
	}
}

// GridCell is one event's occupancy of a single day/hour slot on the calendar.
type GridCell struct {
	Event       *models.Event
	Day         int // offset from the window start, 0..13
	Hour        int
	StartMinute int
	EndMinute   int
	IsFirst     bool // first slot of the event, where its label is drawn
}

// GridLayout slices each event into per-hour cells along the two-week window,
// one cell per whole hour the event spans, end hour included. An event running
// 10:15 to 12:45 yields cells (10, 15..60), (11, 0..60) and (12, 0..45), with
// only the first marked IsFirst.
func GridLayout(events []models.Event, windowStart time.Time) []GridCell {
	var cells []GridCell

	for i := range events {
		event := &events[i]
		day := int(startOfDay(event.StartTime).Sub(startOfDay(windowStart)).Hours() / 24)
		if day < 0 || day > 13 {
			continue
		}

		startHour := event.StartTime.Hour()
		endHour := event.EndTime.Hour()
		endMinute := event.EndTime.Minute()

		for hour := startHour; hour <= endHour; hour++ {
			cell := GridCell{
				Event:     event,
				Day:       day,
				Hour:      hour,
				EndMinute: 60,
				IsFirst:   hour == startHour,
			}
			if hour == startHour {
				cell.StartMinute = event.StartTime.Minute()
			}
			if hour == endHour {
				cell.EndMinute = endMinute
			}
			cells = append(cells, cell)
		}
	}

	return cells
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package repository

import (
	"context"
	"time"

	"github.com/bgaal/passhub/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, event *models.Event) error
	CountRegistrations(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	FindRegistration(ctx context.Context, tx *gorm.DB, eventID, userID uint) (*models.EventRegistration, error)
	CreateRegistration(ctx context.Context, tx *gorm.DB, reg *models.EventRegistration) error
	DeleteRegistration(ctx context.Context, reg *models.EventRegistration) error
	FindRegistrationsByUser(ctx context.Context, userID uint) ([]models.EventRegistration, error)
	FindRegistrationsByEvent(ctx context.Context, eventID uint) ([]models.EventRegistration, error)
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the given
// transaction — serializes concurrent signup attempts.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindBetween returns events starting inside [start, end], ordered by start
// time.
func (r *eventRepository) FindBetween(ctx context.Context, start, end time.Time) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?", start, end).
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes the event; its registrations cascade.
func (r *eventRepository) Delete(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Select("Registrations").Delete(event).Error
}

func (r *eventRepository) CountRegistrations(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) FindRegistration(ctx context.Context, tx *gorm.DB, eventID, userID uint) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	err := tx.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *eventRepository) CreateRegistration(ctx context.Context, tx *gorm.DB, reg *models.EventRegistration) error {
	return tx.WithContext(ctx).Create(reg).Error
}

func (r *eventRepository) DeleteRegistration(ctx context.Context, reg *models.EventRegistration) error {
	return r.db.WithContext(ctx).Delete(reg).Error
}

func (r *eventRepository) FindRegistrationsByUser(ctx context.Context, userID uint) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *eventRepository) FindRegistrationsByEvent(ctx context.Context, eventID uint) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

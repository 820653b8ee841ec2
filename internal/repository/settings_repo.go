package repository

import (
	"context"
	"errors"

	"github.com/bgaal/passhub/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the singleton settings row, or (nil, nil) when none exists.
	Get(ctx context.Context) (*models.EmailSettings, error)
	// GetOrCreate returns the singleton row, creating it with defaults on
	// first access.
	GetOrCreate(ctx context.Context) (*models.EmailSettings, error)
	Save(ctx context.Context, settings *models.EmailSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.EmailSettings, error) {
	var settings models.EmailSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) GetOrCreate(ctx context.Context) (*models.EmailSettings, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}
	settings = &models.EmailSettings{}
	if err := r.db.WithContext(ctx).Create(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.EmailSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

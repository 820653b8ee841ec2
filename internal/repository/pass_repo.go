package repository

import (
	"context"

	"github.com/bgaal/passhub/internal/models"
	"gorm.io/gorm"
)

type PassRepository interface {
	Create(ctx context.Context, pass *models.Pass) error
	FindByID(ctx context.Context, id uint) (*models.Pass, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Pass, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Pass, error)
	FindAll(ctx context.Context) ([]models.Pass, error)
	Update(ctx context.Context, tx *gorm.DB, pass *models.Pass) error
	Delete(ctx context.Context, pass *models.Pass) error
	CreateUsage(ctx context.Context, tx *gorm.DB, usage *models.PassUsage) error
	DeleteLatestUsage(ctx context.Context, tx *gorm.DB, passID uint) error
	CountUsages(ctx context.Context, passID uint) (int64, error)
	GetDB() *gorm.DB
}

type passRepository struct {
	db *gorm.DB
}

func NewPassRepository(db *gorm.DB) PassRepository {
	return &passRepository{db: db}
}

func (r *passRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *passRepository) Create(ctx context.Context, pass *models.Pass) error {
	return r.db.WithContext(ctx).Create(pass).Error
}

func (r *passRepository) FindByID(ctx context.Context, id uint) (*models.Pass, error) {
	var pass models.Pass
	if err := r.db.WithContext(ctx).Preload("User").First(&pass, id).Error; err != nil {
		return nil, err
	}
	return &pass, nil
}

// FindByIDForUpdate acquires a row-level lock on the pass within the given
// transaction so use/undo never race on the counter.
func (r *passRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Pass, error) {
	var pass models.Pass
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&pass, id).Error; err != nil {
		return nil, err
	}
	return &pass, nil
}

func (r *passRepository) FindByUser(ctx context.Context, userID uint) ([]models.Pass, error) {
	var passes []models.Pass
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}

func (r *passRepository) FindAll(ctx context.Context) ([]models.Pass, error) {
	var passes []models.Pass
	if err := r.db.WithContext(ctx).Preload("User").Order("id ASC").Find(&passes).Error; err != nil {
		return nil, err
	}
	return passes, nil
}

func (r *passRepository) Update(ctx context.Context, tx *gorm.DB, pass *models.Pass) error {
	return tx.WithContext(ctx).Save(pass).Error
}

// Delete removes the pass; its usage rows cascade.
func (r *passRepository) Delete(ctx context.Context, pass *models.Pass) error {
	return r.db.WithContext(ctx).Select("Usages").Delete(pass).Error
}

func (r *passRepository) CreateUsage(ctx context.Context, tx *gorm.DB, usage *models.PassUsage) error {
	return tx.WithContext(ctx).Create(usage).Error
}

// DeleteLatestUsage drops the most recently stamped usage row for the pass;
// timestamp ties go to the last inserted row.
func (r *passRepository) DeleteLatestUsage(ctx context.Context, tx *gorm.DB, passID uint) error {
	var usage models.PassUsage
	err := tx.WithContext(ctx).
		Where("pass_id = ?", passID).
		Order("used_on DESC, id DESC").
		First(&usage).Error
	if err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&usage).Error
}

func (r *passRepository) CountUsages(ctx context.Context, passID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PassUsage{}).
		Where("pass_id = ?", passID).
		Count(&count).Error
	return count, err
}

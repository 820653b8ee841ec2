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
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

var (
	ErrPassNotFound  = errors.New("pass not found")
	ErrPassNotUsable = errors.New("pass is not usable (exhausted or expired)")
	ErrNoUsages      = errors.New("pass has no usages to undo")
	ErrValidation    = errors.New("validation failed")
)

type PassService interface {
	CreatePass(ctx context.Context, pass *models.Pass) (*models.Pass, error)
	ExtendPass(ctx context.Context, id uint, fields *models.Pass) (*models.Pass, error)
	DeletePass(ctx context.Context, id uint) error
	UsePass(ctx context.Context, id uint) (*models.Pass, error)
	UndoUse(ctx context.Context, id uint) (*models.Pass, error)
	GetPass(ctx context.Context, id uint) (*models.Pass, error)
	ListPasses(ctx context.Context) ([]models.Pass, error)
	ListUserPasses(ctx context.Context, userID uint) ([]models.Pass, error)
	VerifyCode(id uint) ([]byte, error)
}

type passService struct {
	passRepo  repository.PassRepository
	userRepo  repository.UserRepository
	notifier  *notify.Notifier
	publisher *rabbitmq.Publisher
	appURL    string
}

func NewPassService(
	passRepo repository.PassRepository,
	userRepo repository.UserRepository,
	notifier *notify.Notifier,
	publisher *rabbitmq.Publisher,
	appURL string,
) PassService {
	return &passService{
		passRepo:  passRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		publisher: publisher,
		appURL:    appURL,
	}
}

func validatePass(pass *models.Pass) error {
	if pass.Type == "" {
		return fmt.Errorf("%w: type is required", ErrValidation)
	}
	if pass.StartDate.IsZero() || pass.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if pass.TotalUses < 1 {
		return fmt.Errorf("%w: total_uses must be at least 1", ErrValidation)
	}
	if pass.UserID == 0 {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	return nil
}

func (s *passService) CreatePass(ctx context.Context, pass *models.Pass) (*models.Pass, error) {
	if err := validatePass(pass); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, pass.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	pass.Used = 0
	if err := s.passRepo.Create(ctx, pass); err != nil {
		return nil, fmt.Errorf("create pass: %w", err)
	}

	s.notifier.Notify(ctx, models.KindPassCreated, "Új bérlet", notify.PassCreatedEmail(pass), owner.Email)
	s.publish("pass.created", pass)

	pass.User = owner
	return pass, nil
}

// ExtendPass overwrites every mutable field, including the owner. The
// confirmation mail is sent unconditionally, outside the per-kind table.
func (s *passService) ExtendPass(ctx context.Context, id uint, fields *models.Pass) (*models.Pass, error) {
	if err := validatePass(fields); err != nil {
		return nil, err
	}

	pass, err := s.passRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPassNotFound
	}

	owner, err := s.userRepo.FindByID(ctx, fields.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	pass.Type = fields.Type
	pass.StartDate = fields.StartDate
	pass.EndDate = fields.EndDate
	pass.TotalUses = fields.TotalUses
	pass.Comment = fields.Comment
	pass.UserID = fields.UserID

	if err := s.passRepo.Update(ctx, s.passRepo.GetDB(), pass); err != nil {
		return nil, fmt.Errorf("update pass: %w", err)
	}

	s.notifier.SendDirect(ctx, "Bérlet hosszabbítva", notify.PassCreatedEmail(pass), owner.Email)
	s.publish("pass.updated", pass)

	pass.User = owner
	return pass, nil
}

func (s *passService) DeletePass(ctx context.Context, id uint) error {
	pass, err := s.passRepo.FindByID(ctx, id)
	if err != nil {
		return ErrPassNotFound
	}

	// Snapshot the details now: the row is gone once the delete commits.
	ownerEmail := ""
	if pass.User != nil {
		ownerEmail = pass.User.Email
	}
	passType := pass.Type
	start, end := pass.StartDate, pass.EndDate
	used := pass.Used

	if err := s.passRepo.Delete(ctx, pass); err != nil {
		return fmt.Errorf("delete pass: %w", err)
	}

	if ownerEmail != "" {
		s.notifier.Notify(ctx, models.KindPassDeleted, "Bérlet törölve",
			notify.PassDeletedEmail(passType, start, end, used), ownerEmail)
	}
	s.publish("pass.deleted", map[string]any{"id": id, "type": passType})

	return nil
}

// UsePass records one use: counter increment and audit row commit together or
// not at all. The notification goes out only after the commit.
func (s *passService) UsePass(ctx context.Context, id uint) (*models.Pass, error) {
	var result *models.Pass

	err := s.passRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pass, err := s.passRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrPassNotFound
		}

		if !pass.UsableOn(time.Now()) {
			return ErrPassNotUsable
		}

		pass.Used++
		if err := s.passRepo.Update(ctx, tx, pass); err != nil {
			return err
		}

		usage := &models.PassUsage{PassID: pass.ID, UsedOn: time.Now()}
		if err := s.passRepo.CreateUsage(ctx, tx, usage); err != nil {
			return err
		}

		result = pass
		return nil
	})
	if err != nil {
		return nil, err
	}

	if owner, err := s.userRepo.FindByID(ctx, result.UserID); err == nil {
		s.notifier.Notify(ctx, models.KindPassUsed, "Bérlet használat",
			notify.PassUsedEmail(owner.Username, result), owner.Email)
	}
	s.publish("pass.used", result)

	return result, nil
}

// UndoUse reverts the most recent use: decrement plus removal of the
// latest-stamped audit row, atomically.
func (s *passService) UndoUse(ctx context.Context, id uint) (*models.Pass, error) {
	var result *models.Pass

	err := s.passRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pass, err := s.passRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrPassNotFound
		}

		if pass.Used == 0 {
			return ErrNoUsages
		}

		pass.Used--
		if err := s.passRepo.Update(ctx, tx, pass); err != nil {
			return err
		}

		if err := s.passRepo.DeleteLatestUsage(ctx, tx, pass.ID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		result = pass
		return nil
	})
	if err != nil {
		return nil, err
	}

	if owner, err := s.userRepo.FindByID(ctx, result.UserID); err == nil {
		s.notifier.Notify(ctx, models.KindPassUsed, "Bérlet használat visszavonva",
			notify.PassUsageRevertedEmail(owner.Username, result), owner.Email)
	}
	s.publish("pass.used", result)

	return result, nil
}

func (s *passService) GetPass(ctx context.Context, id uint) (*models.Pass, error) {
	pass, err := s.passRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPassNotFound
	}
	return pass, nil
}

func (s *passService) ListPasses(ctx context.Context) ([]models.Pass, error) {
	return s.passRepo.FindAll(ctx)
}

func (s *passService) ListUserPasses(ctx context.Context, userID uint) ([]models.Pass, error) {
	return s.passRepo.FindByUser(ctx, userID)
}

// VerifyCode renders the pass verification URL as a QR PNG.
func (s *passService) VerifyCode(id uint) ([]byte, error) {
	url := fmt.Sprintf("%s/api/v1/passes/%d", s.appURL, id)
	return qrcode.Encode(url, qrcode.Medium, 300)
}

func (s *passService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[PassService] publish %s: %v", routingKey, err)
	}
}

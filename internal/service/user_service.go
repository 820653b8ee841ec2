package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/notify"
	"github.com/bgaal/passhub/internal/repository"
	"github.com/bgaal/passhub/pkg/rabbitmq"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrProtectedUser      = errors.New("the built-in admin account cannot be deleted")
)

type UserInput struct {
	Username            string
	Email               string
	Password            string
	Role                models.Role
	WeeklyReminderOptIn bool
}

type UserService interface {
	CreateUser(ctx context.Context, input UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, input UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	Authenticate(ctx context.Context, username, password string) (string, *models.User, error)
	ForgotPassword(ctx context.Context, email string) error
}

type userService struct {
	userRepo  repository.UserRepository
	notifier  *notify.Notifier
	publisher *rabbitmq.Publisher
	jwtSecret string
}

func NewUserService(
	userRepo repository.UserRepository,
	notifier *notify.Notifier,
	publisher *rabbitmq.Publisher,
	jwtSecret string,
) UserService {
	return &userService{
		userRepo:  userRepo,
		notifier:  notifier,
		publisher: publisher,
		jwtSecret: jwtSecret,
	}
}

func validateUserInput(input UserInput) error {
	if input.Username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if input.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if input.Role != "" && input.Role != models.RoleUser && input.Role != models.RoleAdmin {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, input UserInput) (*models.User, error) {
	if err := validateUserInput(input); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	if taken, err := s.userRepo.UsernameTaken(ctx, input.Username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.userRepo.EmailTaken(ctx, input.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username:            input.Username,
		Email:               input.Email,
		Role:                role,
		WeeklyReminderOptIn: input.WeeklyReminderOptIn,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.notifier.Notify(ctx, models.KindUserCreated, "Sikeres regisztráció",
		notify.RegistrationEmail(user.Username, input.Password), user.Email)
	s.publish("user.created", map[string]any{"id": user.ID, "username": user.Username})

	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, input UserInput) (*models.User, error) {
	if err := validateUserInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if taken, err := s.userRepo.UsernameTaken(ctx, input.Username, id); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.userRepo.EmailTaken(ctx, input.Email, id); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	user.Username = input.Username
	user.Email = input.Email
	user.WeeklyReminderOptIn = input.WeeklyReminderOptIn
	if input.Role != "" {
		user.Role = input.Role
	}
	if input.Password != "" {
		if err := user.SetPassword(input.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.publish("user.updated", map[string]any{"id": user.ID, "username": user.Username})

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return ErrUserNotFound
	}
	if user.Username == "admin" {
		return ErrProtectedUser
	}

	username, email := user.Username, user.Email

	if err := s.userRepo.Delete(ctx, user); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.notifier.Notify(ctx, models.KindUserDeleted, "Fiók törölve",
		notify.UserDeletedEmail(username), email)
	s.publish("user.deleted", map[string]any{"id": id, "username": username})

	return nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// Authenticate checks the credentials and issues a signed token valid for a day.
func (s *userService) Authenticate(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return signed, user, nil
}

// ForgotPassword mails the stored password back. Accounts migrated without a
// stored plaintext get a fresh random one instead.
func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	password := user.PasswordPlain
	if password == "" {
		password, err = randomPassword()
		if err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
		if err := user.SetPassword(password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
	}

	s.notifier.SendDirect(ctx, "Elfelejtett jelszó",
		notify.ForgotPasswordEmail(user.Username, password), user.Email)

	return nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *userService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[UserService] publish %s: %v", routingKey, err)
	}
}

package service

import (
	"context"
	"testing"

	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/notify"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(user *models.User) (UserService, *countingMailer) {
	userRepo := &stubUserRepo{user: user}
	m := &countingMailer{}
	n := notify.NewNotifier(&stubSettingsRepo{}, m, "env@example.com", "envpass")
	return NewUserService(userRepo, n, nil, "test-secret"), m
}

func TestAuthenticate_Success(t *testing.T) {
	user := &models.User{ID: 42, Username: "kiss.anna", Role: models.RoleAdmin}
	require.NoError(t, user.SetPassword("titkos123"))
	svc, _ := newUserFixture(user)

	tokenString, got, err := svc.Authenticate(context.Background(), "kiss.anna", "titkos123")
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.ID)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	user := &models.User{ID: 42, Username: "kiss.anna"}
	require.NoError(t, user.SetPassword("titkos123"))
	svc, _ := newUserFixture(user)

	_, _, err := svc.Authenticate(context.Background(), "kiss.anna", "rossz")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc, _ := newUserFixture(nil)

	_, _, err := svc.Authenticate(context.Background(), "senki", "titkos123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestForgotPassword_SendsStoredPassword(t *testing.T) {
	user := &models.User{ID: 7, Username: "kiss.anna", Email: "anna@example.com"}
	require.NoError(t, user.SetPassword("titkos123"))
	svc, m := newUserFixture(user)

	require.NoError(t, svc.ForgotPassword(context.Background(), "anna@example.com"))
	assert.Equal(t, 1, m.sent)
}

func TestForgotPassword_GeneratesWhenMissing(t *testing.T) {
	// A migrated account carries a hash but no stored plaintext.
	user := &models.User{
		ID:           7,
		Username:     "kiss.anna",
		Email:        "anna@example.com",
		PasswordHash: "$2a$10$legacyhashwithoutplaintext",
	}
	svc, m := newUserFixture(user)

	require.NoError(t, svc.ForgotPassword(context.Background(), "anna@example.com"))

	assert.NotEmpty(t, user.PasswordPlain)
	assert.True(t, user.CheckPassword(user.PasswordPlain))
	assert.Equal(t, 1, m.sent)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc, m := newUserFixture(nil)

	err := svc.ForgotPassword(context.Background(), "senki@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, m.sent)
}

func TestDeleteUser_ProtectsBuiltInAdmin(t *testing.T) {
	user := &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	svc, _ := newUserFixture(user)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 1), ErrProtectedUser)
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _ := newUserFixture(nil)

	_, err := svc.CreateUser(context.Background(), UserInput{Email: "a@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(context.Background(), UserInput{Username: "a", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(context.Background(), UserInput{
		Username: "a", Email: "a@example.com", Password: "x", Role: "superuser",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

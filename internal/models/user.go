package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string `gorm:"size:150;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:256;not null" json:"-"`
	// Plaintext copy kept for the forgot-password mail. Insecure, but the
	// current recovery flow depends on it.
	PasswordPlain       string    `gorm:"size:150" json:"-"`
	Role                Role      `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	WeeklyReminderOptIn bool      `gorm:"default:false" json:"weekly_reminder_opt_in"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Passes        []Pass              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"passes,omitempty"`
	Registrations []EventRegistration `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"registrations,omitempty"`
}

// SetPassword updates the hash and the plaintext copy together so the two
// never diverge.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.PasswordPlain = password
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package dto

import (
	"time"

	"github.com/bgaal/passhub/internal/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type UserRequest struct {
	Username            string `json:"username"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	Role                string `json:"role"`
	WeeklyReminderOptIn bool   `json:"weekly_reminder_opt_in"`
}

type PassRequest struct {
	Type      string    `json:"type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TotalUses int       `json:"total_uses"`
	Comment   string    `json:"comment"`
	UserID    uint      `json:"user_id"`
}

func (r *PassRequest) ToModel() *models.Pass {
	return &models.Pass{
		Type:      r.Type,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		TotalUses: r.TotalUses,
		Comment:   r.Comment,
		UserID:    r.UserID,
	}
}

type EventRequest struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Capacity  int       `json:"capacity"`
	Color     string    `json:"color"`
}

func (r *EventRequest) ToModel() *models.Event {
	return &models.Event{
		Name:      r.Name,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Capacity:  r.Capacity,
		Color:     r.Color,
	}
}

type AssignUserRequest struct {
	UserID uint `json:"user_id"`
}

type NotificationRuleRequest struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
}

type EmailSettingsRequest struct {
	EmailFrom     string `json:"email_from"`
	EmailPassword string `json:"email_password"`

	UserCreated          NotificationRuleRequest `json:"user_created"`
	UserDeleted          NotificationRuleRequest `json:"user_deleted"`
	PassCreated          NotificationRuleRequest `json:"pass_created"`
	PassDeleted          NotificationRuleRequest `json:"pass_deleted"`
	PassUsed             NotificationRuleRequest `json:"pass_used"`
	EventSignupUser      NotificationRuleRequest `json:"event_signup_user"`
	EventSignupAdmin     NotificationRuleRequest `json:"event_signup_admin"`
	EventUnregisterUser  NotificationRuleRequest `json:"event_unregister_user"`
	EventUnregisterAdmin NotificationRuleRequest `json:"event_unregister_admin"`

	WeeklyReminderEnabled bool   `json:"weekly_reminder_enabled"`
	WeeklyReminderText    string `json:"weekly_reminder_text"`
	WeeklyReminderDay     int    `json:"weekly_reminder_day"`
	WeeklyReminderTime    string `json:"weekly_reminder_time"`
}

func (r *EmailSettingsRequest) ToModel() *models.EmailSettings {
	return &models.EmailSettings{
		EmailFrom:     r.EmailFrom,
		EmailPassword: r.EmailPassword,

		UserCreatedEnabled:          r.UserCreated.Enabled,
		UserCreatedText:             r.UserCreated.Text,
		UserDeletedEnabled:          r.UserDeleted.Enabled,
		UserDeletedText:             r.UserDeleted.Text,
		PassCreatedEnabled:          r.PassCreated.Enabled,
		PassCreatedText:             r.PassCreated.Text,
		PassDeletedEnabled:          r.PassDeleted.Enabled,
		PassDeletedText:             r.PassDeleted.Text,
		PassUsedEnabled:             r.PassUsed.Enabled,
		PassUsedText:                r.PassUsed.Text,
		EventSignupUserEnabled:      r.EventSignupUser.Enabled,
		EventSignupUserText:         r.EventSignupUser.Text,
		EventSignupAdminEnabled:     r.EventSignupAdmin.Enabled,
		EventSignupAdminText:        r.EventSignupAdmin.Text,
		EventUnregisterUserEnabled:  r.EventUnregisterUser.Enabled,
		EventUnregisterUserText:     r.EventUnregisterUser.Text,
		EventUnregisterAdminEnabled: r.EventUnregisterAdmin.Enabled,
		EventUnregisterAdminText:    r.EventUnregisterAdmin.Text,

		WeeklyReminderEnabled: r.WeeklyReminderEnabled,
		WeeklyReminderText:    r.WeeklyReminderText,
		WeeklyReminderDay:     r.WeeklyReminderDay,
		WeeklyReminderTime:    r.WeeklyReminderTime,
	}
}

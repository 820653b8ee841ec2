package dto

import (
	"time"

	"github.com/bgaal/passhub/internal/models"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID                  uint        `json:"id"`
	Username            string      `json:"username"`
	Email               string      `json:"email"`
	Role                models.Role `json:"role"`
	WeeklyReminderOptIn bool        `json:"weekly_reminder_opt_in"`
	CreatedAt           time.Time   `json:"created_at"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Role:                u.Role,
		WeeklyReminderOptIn: u.WeeklyReminderOptIn,
		CreatedAt:           u.CreatedAt,
	}
}

type PassResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TotalUses int       `json:"total_uses"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	Usable    bool      `json:"usable"`
	Comment   string    `json:"comment"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToPassResponse(p *models.Pass) PassResponse {
	resp := PassResponse{
		ID:        p.ID,
		Type:      p.Type,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		TotalUses: p.TotalUses,
		Used:      p.Used,
		Remaining: p.Remaining(),
		Usable:    p.UsableOn(time.Now()),
		Comment:   p.Comment,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
	}
	if p.User != nil {
		resp.Username = p.User.Username
	}
	return resp
}

type EventResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	StartTime     time.Time          `json:"start_time"`
	EndTime       time.Time          `json:"end_time"`
	FormattedTime string             `json:"formatted_time"`
	Capacity      int                `json:"capacity"`
	SpotsLeft     int                `json:"spots_left"`
	Color         string             `json:"color"`
	ColorHex      string             `json:"color_hex"`
	Status        models.EventStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

func ToEventResponse(e *models.Event, spotsLeft int) EventResponse {
	return EventResponse{
		ID:            e.ID,
		Name:          e.Name,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		FormattedTime: e.FormattedTime(),
		Capacity:      e.Capacity,
		SpotsLeft:     spotsLeft,
		Color:         e.Color,
		ColorHex:      e.ColorHex(),
		Status:        e.Status(time.Now()),
		CreatedAt:     e.CreatedAt,
	}
}

type RegistrationResponse struct {
	ID       uint      `json:"id"`
	EventID  uint      `json:"event_id"`
	UserID   uint      `json:"user_id"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email,omitempty"`
	SignedAt time.Time `json:"signed_at"`
}

func ToRegistrationResponse(r *models.EventRegistration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:       r.ID,
		EventID:  r.EventID,
		UserID:   r.UserID,
		SignedAt: r.CreatedAt,
	}
	if r.User != nil {
		resp.Username = r.User.Username
		resp.Email = r.User.Email
	}
	return resp
}

// CalendarCell is one day/hour slot of the rendered two-week grid.
type CalendarCell struct {
	EventID     uint   `json:"event_id"`
	Day         int    `json:"day"`
	Hour        int    `json:"hour"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	IsFirst     bool   `json:"is_first"`
	Name        string `json:"name"`
	ColorHex    string `json:"color_hex"`
}

type CalendarResponse struct {
	WindowStart time.Time       `json:"window_start"`
	WindowEnd   time.Time       `json:"window_end"`
	Events      []EventResponse `json:"events"`
	Cells       []CalendarCell  `json:"cells"`
	// Events the caller is signed up for.
	MyEventIDs []uint `json:"my_event_ids"`
}

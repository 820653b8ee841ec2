package models

import (
	"fmt"
	"time"
)

type EventStatus string

const (
	StatusPast     EventStatus = "past"
	StatusOngoing  EventStatus = "ongoing"
	StatusUpcoming EventStatus = "upcoming"
)

type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Color     string    `gorm:"size:20;not null;default:'blue'" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Registrations []EventRegistration `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"registrations,omitempty"`
}

var colorHex = map[string]string{
	"darkgreen": "#006400",
	"red":       "#dc3545",
	"blue":      "#0d6efd",
	"purple":    "#6f42c1",
	"orange":    "#fd7e14",
	"burgundy":  "#800020",
	"darkblue":  "#00008b",
}

// EventColors lists the accepted color names.
func EventColors() []string {
	return []string{"darkgreen", "red", "blue", "purple", "orange", "burgundy", "darkblue"}
}

func ValidEventColor(name string) bool {
	_, ok := colorHex[name]
	return ok
}

// ColorHex maps the color name to its hex code, falling back to blue.
func (e *Event) ColorHex() string {
	if hex, ok := colorHex[e.Color]; ok {
		return hex
	}
	return colorHex["blue"]
}

func (e *Event) Status(now time.Time) EventStatus {
	if e.EndTime.Before(now) {
		return StatusPast
	}
	if !e.StartTime.After(now) {
		return StatusOngoing
	}
	return StatusUpcoming
}

var hungarianDays = []string{"Hétfő", "Kedd", "Szerda", "Csütörtök", "Péntek", "Szombat", "Vasárnap"}

// FormattedTime renders the event time with the Hungarian day name, e.g.
// "2026-03-04 Szerda 10:15 - 12:45".
func (e *Event) FormattedTime() string {
	// time.Weekday counts from Sunday; the day list starts on Monday.
	dayIdx := (int(e.StartTime.Weekday()) + 6) % 7
	return fmt.Sprintf(
		"%s %s %s - %s",
		e.StartTime.Format("2006-01-02"),
		hungarianDays[dayIdx],
		e.StartTime.Format("15:04"),
		e.EndTime.Format("15:04"),
	)
}

type EventRegistration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null" json:"event_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

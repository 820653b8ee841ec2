package models

import "time"

type Pass struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:100;not null" json:"type"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	TotalUses int       `gorm:"not null" json:"total_uses"`
	Used      int       `gorm:"default:0" json:"used"`
	Comment   string    `gorm:"size:255" json:"comment,omitempty"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Usages []PassUsage `gorm:"foreignKey:PassID;constraint:OnDelete:CASCADE" json:"usages,omitempty"`
}

// UsableOn reports whether one more use may be recorded on the given day.
func (p *Pass) UsableOn(day time.Time) bool {
	return p.Used < p.TotalUses && !p.EndDate.Before(truncateToDay(day))
}

func (p *Pass) Remaining() int {
	return p.TotalUses - p.Used
}

type PassUsage struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	PassID uint      `gorm:"not null" json:"pass_id"`
	UsedOn time.Time `gorm:"not null" json:"used_on"`
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

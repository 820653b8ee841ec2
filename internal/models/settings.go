package models

// NotificationKind identifies one of the configurable transactional mails.
type NotificationKind string

const (
	KindUserCreated          NotificationKind = "user_created"
	KindUserDeleted          NotificationKind = "user_deleted"
	KindPassCreated          NotificationKind = "pass_created"
	KindPassDeleted          NotificationKind = "pass_deleted"
	KindPassUsed             NotificationKind = "pass_used"
	KindEventSignupUser      NotificationKind = "event_signup_user"
	KindEventSignupAdmin     NotificationKind = "event_signup_admin"
	KindEventUnregisterUser  NotificationKind = "event_unregister_user"
	KindEventUnregisterAdmin NotificationKind = "event_unregister_admin"
)

// EmailSettings is a zero-or-one row created lazily on first access. Absence
// means "no overrides": default bodies are sent unmodified.
type EmailSettings struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	EmailFrom     string `gorm:"size:150" json:"email_from"`
	EmailPassword string `gorm:"size:150" json:"-"`

	UserCreatedEnabled bool   `gorm:"default:false" json:"user_created_enabled"`
	UserCreatedText    string `gorm:"type:text" json:"user_created_text"`

	UserDeletedEnabled bool   `gorm:"default:false" json:"user_deleted_enabled"`
	UserDeletedText    string `gorm:"type:text" json:"user_deleted_text"`

	PassCreatedEnabled bool   `gorm:"default:false" json:"pass_created_enabled"`
	PassCreatedText    string `gorm:"type:text" json:"pass_created_text"`

	PassDeletedEnabled bool   `gorm:"default:false" json:"pass_deleted_enabled"`
	PassDeletedText    string `gorm:"type:text" json:"pass_deleted_text"`

	PassUsedEnabled bool   `gorm:"default:false" json:"pass_used_enabled"`
	PassUsedText    string `gorm:"type:text" json:"pass_used_text"`

	EventSignupUserEnabled bool   `gorm:"default:false" json:"event_signup_user_enabled"`
	EventSignupUserText    string `gorm:"type:text" json:"event_signup_user_text"`

	EventSignupAdminEnabled bool   `gorm:"default:false" json:"event_signup_admin_enabled"`
	EventSignupAdminText    string `gorm:"type:text" json:"event_signup_admin_text"`

	EventUnregisterUserEnabled bool   `gorm:"default:false" json:"event_unregister_user_enabled"`
	EventUnregisterUserText    string `gorm:"type:text" json:"event_unregister_user_text"`

	EventUnregisterAdminEnabled bool   `gorm:"default:false" json:"event_unregister_admin_enabled"`
	EventUnregisterAdminText    string `gorm:"type:text" json:"event_unregister_admin_text"`

	WeeklyReminderEnabled bool   `gorm:"default:false" json:"weekly_reminder_enabled"`
	WeeklyReminderText    string `gorm:"type:text" json:"weekly_reminder_text"`
	// Day of week, time.Weekday convention (Sunday = 0).
	WeeklyReminderDay  int    `gorm:"default:0" json:"weekly_reminder_day"`
	WeeklyReminderTime string `gorm:"size:5" json:"weekly_reminder_time"`
}

// NotificationRule is one (enabled, custom text) pair from the settings row.
type NotificationRule struct {
	Enabled bool
	Text    string
}

// Rule resolves the notification rule for a kind. Unknown kinds are treated
// as disabled.
func (s *EmailSettings) Rule(kind NotificationKind) NotificationRule {
	rules := map[NotificationKind]NotificationRule{
		KindUserCreated:          {s.UserCreatedEnabled, s.UserCreatedText},
		KindUserDeleted:          {s.UserDeletedEnabled, s.UserDeletedText},
		KindPassCreated:          {s.PassCreatedEnabled, s.PassCreatedText},
		KindPassDeleted:          {s.PassDeletedEnabled, s.PassDeletedText},
		KindPassUsed:             {s.PassUsedEnabled, s.PassUsedText},
		KindEventSignupUser:      {s.EventSignupUserEnabled, s.EventSignupUserText},
		KindEventSignupAdmin:     {s.EventSignupAdminEnabled, s.EventSignupAdminText},
		KindEventUnregisterUser:  {s.EventUnregisterUserEnabled, s.EventUnregisterUserText},
		KindEventUnregisterAdmin: {s.EventUnregisterAdminEnabled, s.EventUnregisterAdminText},
	}
	return rules[kind]
}

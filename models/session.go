package models

import "time"

// Session maps an opaque token handed to the browser to a logged-in
// user. Expired rows count as logged out.
type Session struct {
	Token     string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"column:user_id;index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName overrides the table name used by GORM
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

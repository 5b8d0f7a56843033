package models

import "time"

// MaxMessageLen bounds a bright idea's message column.
const MaxMessageLen = 255

// Post is a single bright idea
type Post struct {
	ID        uint   `gorm:"primaryKey"`
	Message   string `gorm:"size:255"`
	AuthorID  uint   `gorm:"column:author_id;index"`
	Author    User   `gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name used by GORM
func (Post) TableName() string {
	return "posts"
}

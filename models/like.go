package models

import "time"

// Like marks that a user liked a post. One row per (post, user) pair.
type Like struct {
	PostID    uint `gorm:"primaryKey;column:post_id"`
	UserID    uint `gorm:"primaryKey;column:user_id"`
	CreatedAt time.Time
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "likes"
}

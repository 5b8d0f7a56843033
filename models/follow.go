package models

import "time"

// Follow is the directed follower relation between two users.
// FollowerID follows FollowedID.
type Follow struct {
	FollowerID uint `gorm:"primaryKey;column:follower_id"`
	FollowedID uint `gorm:"primaryKey;column:followed_id"`
	CreatedAt  time.Time
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follows"
}

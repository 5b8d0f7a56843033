package repositories

import (
	"errors"
	"time"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/models"
)

// ErrSelfFollow is returned when a user tries to follow themselves.
var ErrSelfFollow = errors.New("a user cannot follow themselves")

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	EmailTaken(email string) (bool, error)
}

type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id uint) (*models.Post, error)
	All() ([]models.Post, error)
	ByAuthor(authorID uint) ([]models.Post, error)
	CountByAuthor(authorID uint) (int64, error)
	UpdateMessage(id uint, message string) error
	// Delete removes the post and every like attached to it.
	Delete(id uint) error
}

type LikeRepository interface {
	// Add records the like; liking the same post twice is a no-op.
	Add(postID, userID uint) error
	Remove(postID, userID uint) error
	Contains(postID, userID uint) (bool, error)
	Likers(postID uint) ([]models.User, error)
	CountByPost(postID uint) (int64, error)
	CountByUser(userID uint) (int64, error)
}

type FollowRepository interface {
	// Add records the relation; duplicates are no-ops and
	// self-follows are rejected with ErrSelfFollow.
	Add(followerID, followedID uint) error
	Remove(followerID, followedID uint) error
	Contains(followerID, followedID uint) (bool, error)
	Followers(userID uint) ([]models.User, error)
	Following(userID uint) ([]models.User, error)
}

type SessionRepository interface {
	// Create issues a fresh token for the user, valid for ttl.
	Create(userID uint, ttl time.Duration) (*models.Session, error)
	// Find resolves a token; expired or unknown tokens report no error
	// and a nil session.
	Find(token string) (*models.Session, error)
	Delete(token string) error
	PurgeExpired() error
}

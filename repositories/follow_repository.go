package repositories

import (
	"gorm.io/gorm"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/models"
)

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Add(followerID, followedID uint) error {
	if followerID == followedID {
		return ErrSelfFollow
	}
	exists, err := r.Contains(followerID, followedID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

func (r *followRepository) Remove(followerID, followedID uint) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) Contains(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) Followers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Table("users").
		Joins("INNER JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Find(&users).Error
	return users, err
}

func (r *followRepository) Following(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Table("users").
		Joins("INNER JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}

package repositories

import (
	"gorm.io/gorm"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/models"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Add(postID, userID uint) error {
	exists, err := r.Contains(postID, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.Create(&models.Like{PostID: postID, UserID: userID}).Error
}

func (r *likeRepository) Remove(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
}

func (r *likeRepository) Contains(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) Likers(postID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Table("users").
		Joins("INNER JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id = ?", postID).
		Find(&users).Error
	return users, err
}

func (r *likeRepository) CountByPost(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

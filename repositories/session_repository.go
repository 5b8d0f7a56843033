package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codingdojo-pna-july-2019/Brett-Anam-Group-Project/models"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(userID uint, ttl time.Duration) (*models.Session, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := r.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Find(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.First(&session, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		// Lazy cleanup; an expired token is equivalent to no token.
		_ = r.db.Delete(&session).Error
		return nil, nil
	}
	return &session, nil
}

func (r *sessionRepository) Delete(token string) error {
	return r.db.Delete(&models.Session{}, "token = ?", token).Error
}

func (r *sessionRepository) PurgeExpired() error {
	return r.db.Where("expires_at <= ?", time.Now()).Delete(&models.Session{}).Error
}

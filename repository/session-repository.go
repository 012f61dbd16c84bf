package repository

import (
	"time"

	"gorm.io/gorm"
)

type AdminSession struct {
	Id        string    `gorm:"primaryKey"`
	UserId    *int      `gorm:"null"`
	Username  string    `gorm:"not null"`
	Role      string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) CreateSession(session *AdminSession) (*AdminSession, error) {
	result := r.DB.Create(session)
	if result.Error != nil {
		return nil, result.Error
	}
	return session, nil
}

func (r *SessionRepository) GetSessionById(id string) (*AdminSession, error) {
	session := AdminSession{}
	result := r.DB.First(&session, &AdminSession{Id: id})
	if result.Error != nil {
		return nil, result.Error
	}
	return &session, nil
}

func (r *SessionRepository) DeleteSession(id string) error {
	return r.DB.Delete(&AdminSession{Id: id}).Error
}

func (r *SessionRepository) DeleteExpiredSessions() error {
	return r.DB.Where("expires_at < ?", time.Now()).Delete(&AdminSession{}).Error
}

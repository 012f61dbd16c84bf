package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SettingOpenAIAPIKey = "openai_api_key"
	SettingSMTPHost     = "smtp_host"
	SettingSMTPPort     = "smtp_port"
	SettingSMTPEmail    = "smtp_email"
	SettingSMTPPassword = "smtp_password"
	SettingSMTPFromName = "smtp_from_name"
)

type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) GetSetting(key string) (string, error) {
	setting := Setting{}
	result := r.DB.First(&setting, &Setting{Key: key})
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", result.Error
	}
	return setting.Value, nil
}

func (r *SettingRepository) GetAllSettings() ([]*Setting, error) {
	settings := make([]*Setting, 0)
	result := r.DB.Order("key ASC").Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}
	return settings, nil
}

func (r *SettingRepository) SetSetting(key string, value string) error {
	setting := &Setting{Key: key, Value: value}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

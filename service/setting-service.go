package service

import (
	"strings"

	"sportsfest/repository"

	"gorm.io/gorm"
)

// secretSettings are masked on read so the admin UI never echoes them back.
var secretSettings = map[string]bool{
	repository.SettingOpenAIAPIKey: true,
	repository.SettingSMTPPassword: true,
}

type SettingService struct {
	settingRepository *repository.SettingRepository
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{
		settingRepository: repository.NewSettingRepository(db),
	}
}

func (s *SettingService) GetSettings() (map[string]string, error) {
	settings, err := s.settingRepository.GetAllSettings()
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		if secretSettings[setting.Key] && setting.Value != "" {
			values[setting.Key] = maskSecret(setting.Value)
			continue
		}
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// SetSettings upserts each supplied key. A masked value round-tripped from
// the UI is ignored so saving the form does not overwrite a secret with its
// mask.
func (s *SettingService) SetSettings(values map[string]string) error {
	for key, value := range values {
		if secretSettings[key] && strings.HasPrefix(value, maskPrefix) {
			continue
		}
		if err := s.settingRepository.SetSetting(key, value); err != nil {
			return err
		}
	}
	return nil
}

const maskPrefix = "••••"

func maskSecret(value string) string {
	if len(value) <= 4 {
		return maskPrefix
	}
	return maskPrefix + value[len(value)-4:]
}

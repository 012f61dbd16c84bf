package service

import (
	"testing"

	"sportsfest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretsAreMaskedOnRead(t *testing.T) {
	db := newTestDB(t)
	service := NewSettingService(db)

	require.NoError(t, service.SetSettings(map[string]string{
		repository.SettingOpenAIAPIKey: "sk-proj-abcdef123456",
		repository.SettingSMTPHost:     "smtp.example.com",
	}))

	settings, err := service.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "••••3456", settings[repository.SettingOpenAIAPIKey])
	assert.Equal(t, "smtp.example.com", settings[repository.SettingSMTPHost])
}

func TestMaskedValueRoundTripDoesNotClobberSecret(t *testing.T) {
	db := newTestDB(t)
	service := NewSettingService(db)
	settingRepository := repository.NewSettingRepository(db)

	require.NoError(t, service.SetSettings(map[string]string{
		repository.SettingSMTPPassword: "app-password",
	}))

	// Saving the settings form echoes the mask back; the stored secret must
	// survive.
	settings, err := service.GetSettings()
	require.NoError(t, err)
	require.NoError(t, service.SetSettings(map[string]string{
		repository.SettingSMTPPassword: settings[repository.SettingSMTPPassword],
		repository.SettingSMTPPort:     "465",
	}))

	stored, err := settingRepository.GetSetting(repository.SettingSMTPPassword)
	require.NoError(t, err)
	assert.Equal(t, "app-password", stored)

	port, err := settingRepository.GetSetting(repository.SettingSMTPPort)
	require.NoError(t, err)
	assert.Equal(t, "465", port)
}

func TestSetSettingsOverwritesWithRealValues(t *testing.T) {
	db := newTestDB(t)
	service := NewSettingService(db)
	settingRepository := repository.NewSettingRepository(db)

	require.NoError(t, service.SetSettings(map[string]string{
		repository.SettingOpenAIAPIKey: "sk-old",
	}))
	require.NoError(t, service.SetSettings(map[string]string{
		repository.SettingOpenAIAPIKey: "sk-new",
	}))

	stored, err := settingRepository.GetSetting(repository.SettingOpenAIAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-new", stored)
}

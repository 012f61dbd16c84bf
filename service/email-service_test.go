package service

import (
	"errors"
	"testing"

	"sportsfest/client"
	"sportsfest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type stubMailSender struct {
	sent    []sentMail
	failFor string
}

func (s *stubMailSender) Send(to string, subject string, htmlBody string) error {
	if to == s.failFor {
		return errors.New("mailbox unavailable")
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func configureSMTP(t *testing.T, settingRepository *repository.SettingRepository) {
	t.Helper()
	require.NoError(t, settingRepository.SetSetting(repository.SettingSMTPHost, "smtp.example.com"))
	require.NoError(t, settingRepository.SetSetting(repository.SettingSMTPEmail, "fest@example.com"))
	require.NoError(t, settingRepository.SetSetting(repository.SettingSMTPPassword, "app-password"))
}

func newStubbedEmailService(t *testing.T) (*EmailService, *stubMailSender, *repository.SettingRepository) {
	t.Helper()
	db := newTestDB(t)
	service := NewEmailService(db)
	sender := &stubMailSender{}
	service.newSender = func(mailConfig client.MailConfig) mailSender {
		return sender
	}
	settingRepository := repository.NewSettingRepository(db)
	configureSMTP(t, settingRepository)

	registrationRepository := repository.NewRegistrationRepository(db)
	for _, registration := range []*repository.Registration{
		{RegNumber: 1, SlipId: "SF-AAAA0001", Name: "Sam", Email: "sam@example.com", Gender: "boys", TeamName: "Thunderbolts", Status: repository.StatusPaid},
		{RegNumber: 2, SlipId: "SF-AAAA0002", Name: "Sam", Email: "sam@example.com", Gender: "boys", TeamName: "Bolts", Status: repository.StatusPaid},
		{RegNumber: 3, SlipId: "SF-AAAA0003", Name: "Nadia", Email: "nadia@example.com", Gender: "girls", TeamName: "Falcons", Status: repository.StatusPendingCash},
	} {
		_, err := registrationRepository.CreateRegistration(registration)
		require.NoError(t, err)
	}
	return service, sender, settingRepository
}

func TestRecipientsFromManualList(t *testing.T) {
	service, _, _ := newStubbedEmailService(t)

	recipients, err := service.Recipients("", "", " a@example.com, b@example.com ,, a@example.com ")
	require.NoError(t, err)
	require.Len(t, recipients, 2)
	assert.Equal(t, "a@example.com", recipients[0].Email)
	assert.Equal(t, "b@example.com", recipients[1].Email)
}

func TestRecipientsFromRegistrationsDeduplicates(t *testing.T) {
	service, _, _ := newStubbedEmailService(t)

	recipients, err := service.Recipients("", "", "")
	require.NoError(t, err)
	assert.Len(t, recipients, 2)

	recipients, err = service.Recipients(repository.StatusPaid, "", "")
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "sam@example.com", recipients[0].Email)
	assert.Equal(t, "Sam", recipients[0].Name)

	recipients, err = service.Recipients("", "girls", "")
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "nadia@example.com", recipients[0].Email)
}

func TestSendBulkPersonalizesAndCountsFailures(t *testing.T) {
	service, sender, _ := newStubbedEmailService(t)
	sender.failFor = "nadia@example.com"

	recipients := []EmailRecipient{
		{Email: "sam@example.com", Name: "Sam"},
		{Email: "nadia@example.com", Name: "Nadia"},
		{Email: "anon@example.com"},
	}
	result, err := service.SendBulk("Fest update", "<p>Hello {name}!</p>", recipients)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[0].body, "Hello Sam!")
	assert.Contains(t, sender.sent[1].body, "Hello Participant!")
	assert.Contains(t, sender.sent[0].body, "Sports Fest")
}

func TestSendBulkValidation(t *testing.T) {
	service, _, _ := newStubbedEmailService(t)

	_, err := service.SendBulk("", "<p>body</p>", []EmailRecipient{{Email: "a@example.com"}})
	assert.ErrorContains(t, err, "Subject and body")

	_, err = service.SendBulk("Subject", "<p>body</p>", nil)
	assert.ErrorContains(t, err, "No recipients")
}

func TestSendRequiresSMTPConfiguration(t *testing.T) {
	db := newTestDB(t)
	service := NewEmailService(db)

	err := service.SendTest("sam@example.com")
	assert.ErrorContains(t, err, "SMTP is not configured")
}

func TestSendTest(t *testing.T) {
	service, sender, _ := newStubbedEmailService(t)

	require.NoError(t, service.SendTest("sam@example.com"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Sports Fest test email", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].body, "SMTP settings work")

	err := service.SendTest("")
	assert.ErrorContains(t, err, "Recipient is required")
}

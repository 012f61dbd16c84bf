package service

import (
	"strconv"
	"strings"

	"sportsfest/app_error"
	"sportsfest/client"
	"sportsfest/config"
	"sportsfest/metrics"
	"sportsfest/repository"
	"sportsfest/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const emailTemplate = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:24px;">
      <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;overflow:hidden;">
        <tr><td style="background:#1a237e;padding:20px;text-align:center;">
          <h1 style="color:#ffffff;margin:0;font-size:22px;">Sports Fest</h1>
        </td></tr>
        <tr><td style="padding:24px;color:#333333;font-size:14px;line-height:1.6;">
          {content}
        </td></tr>
        <tr><td style="background:#eeeeee;padding:16px;text-align:center;color:#888888;font-size:12px;">
          This is an automated message from the Sports Fest registration desk.
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

type mailSender interface {
	Send(to string, subject string, htmlBody string) error
}

type EmailService struct {
	registrationRepository *repository.RegistrationRepository
	settingRepository      *repository.SettingRepository
	logger                 *zap.Logger
	newSender              func(config client.MailConfig) mailSender
}

func NewEmailService(db *gorm.DB) *EmailService {
	return &EmailService{
		registrationRepository: repository.NewRegistrationRepository(db),
		settingRepository:      repository.NewSettingRepository(db),
		logger:                 config.Logger(),
		newSender: func(mailConfig client.MailConfig) mailSender {
			return client.NewMailClient(mailConfig)
		},
	}
}

func (s *EmailService) mailClientFromSettings() (mailSender, error) {
	host, err := s.settingRepository.GetSetting(repository.SettingSMTPHost)
	if err != nil {
		return nil, err
	}
	email, err := s.settingRepository.GetSetting(repository.SettingSMTPEmail)
	if err != nil {
		return nil, err
	}
	password, err := s.settingRepository.GetSetting(repository.SettingSMTPPassword)
	if err != nil {
		return nil, err
	}
	if host == "" || email == "" || password == "" {
		return nil, app_error.New(500, "SMTP is not configured. Set smtp_host, smtp_email and smtp_password in settings first.")
	}
	portValue, err := s.settingRepository.GetSetting(repository.SettingSMTPPort)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portValue)
	if err != nil || port <= 0 {
		port = 587
	}
	fromName, err := s.settingRepository.GetSetting(repository.SettingSMTPFromName)
	if err != nil {
		return nil, err
	}
	if fromName == "" {
		fromName = "Sports Fest"
	}
	return s.newSender(client.MailConfig{
		Host:     host,
		Port:     port,
		Email:    email,
		Password: password,
		FromName: fromName,
	}), nil
}

type EmailRecipient struct {
	Email string
	Name  string
}

// Recipients resolves the target list either from registrations filtered by
// status/gender or from a manual comma-separated list.
func (s *EmailService) Recipients(status string, gender string, manual string) ([]EmailRecipient, error) {
	if strings.TrimSpace(manual) != "" {
		addresses := utils.Filter(
			utils.Map(strings.Split(manual, ","), strings.TrimSpace),
			func(address string) bool { return address != "" },
		)
		return utils.Map(utils.Uniques(addresses), func(address string) EmailRecipient {
			return EmailRecipient{Email: address}
		}), nil
	}
	registrations, err := s.registrationRepository.GetRegistrations(repository.RegistrationFilter{
		Status: status,
		Gender: gender,
	})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	recipients := make([]EmailRecipient, 0)
	for _, registration := range registrations {
		if registration.Email == "" || seen[registration.Email] {
			continue
		}
		seen[registration.Email] = true
		recipients = append(recipients, EmailRecipient{Email: registration.Email, Name: registration.Name})
	}
	return recipients, nil
}

type SendResult struct {
	Sent   int
	Failed int
}

// SendBulk wraps the fragment in the branded template and sends one message
// per recipient, sequentially. Per-recipient failures are counted and
// logged, never aborting the batch.
func (s *EmailService) SendBulk(subject string, htmlFragment string, recipients []EmailRecipient) (*SendResult, error) {
	if subject == "" || htmlFragment == "" {
		return nil, app_error.New(400, "Subject and body are required")
	}
	if len(recipients) == 0 {
		return nil, app_error.New(400, "No recipients selected")
	}
	sender, err := s.mailClientFromSettings()
	if err != nil {
		return nil, err
	}
	result := &SendResult{}
	for _, recipient := range recipients {
		name := recipient.Name
		if name == "" {
			name = "Participant"
		}
		body := strings.ReplaceAll(emailTemplate, "{content}",
			strings.ReplaceAll(htmlFragment, "{name}", name))
		if err := sender.Send(recipient.Email, subject, body); err != nil {
			s.logger.Warn("bulk email failed", zap.String("to", recipient.Email), zap.Error(err))
			metrics.EmailsFailedCounter.Inc()
			result.Failed++
			continue
		}
		metrics.EmailsSentCounter.Inc()
		result.Sent++
	}
	return result, nil
}

// SendTest verifies the relay configuration with a canned message.
func (s *EmailService) SendTest(to string) error {
	if to == "" {
		return app_error.New(400, "Recipient is required")
	}
	sender, err := s.mailClientFromSettings()
	if err != nil {
		return err
	}
	body := strings.ReplaceAll(emailTemplate, "{content}",
		"<p>This is a test message confirming that your SMTP settings work.</p>")
	if err := sender.Send(to, "Sports Fest test email", body); err != nil {
		return app_error.New(500, "Test email failed: %s", err.Error())
	}
	return nil
}

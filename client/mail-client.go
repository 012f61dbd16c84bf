package client

import (
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
	FromName string
}

type MailClient struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewMailClient(config MailConfig) *MailClient {
	return &MailClient{
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Email, config.Password),
		from:     config.Email,
		fromName: config.FromName,
	}
}

func (c *MailClient) Send(to string, subject string, htmlBody string) error {
	message := gomail.NewMessage()
	message.SetAddressHeader("From", c.from, c.fromName)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)
	return c.dialer.DialAndSend(message)
}

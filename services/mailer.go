// File: /services/mailer.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
	"sportsync-api/config"
)

// SendResult reports the outcome of a dispatch. Sending never raises past
// the mailer boundary; failures come back inside the result.
type SendResult struct {
	Delivered bool   `json:"delivered"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Mailer dispatches an email to one or many recipients in a single transport
// call.
type Mailer interface {
	Send(to []string, subject, body string) SendResult
}

// SMTPMailer delivers mail through the configured SMTP relay
type SMTPMailer struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &SMTPMailer{
		config: cfg,
		dialer: dialer,
	}
}

// Send dispatches one message to all recipients at once. An empty recipient
// list short-circuits without contacting the transport.
func (m *SMTPMailer) Send(to []string, subject, body string) SendResult {
	if len(to) == 0 {
		return SendResult{Delivered: false, Error: "no recipients"}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", m.config.FromName, m.config.FromEmail))
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	messageID := uuid.New().String()
	msg.SetHeader("Message-ID", fmt.Sprintf("<%s@sportsync>", messageID))

	if err := m.dialer.DialAndSend(msg); err != nil {
		fmt.Printf("❌ Email error: %v\n", err)
		return SendResult{Delivered: false, Error: err.Error()}
	}

	fmt.Printf("✅ Email sent: %s\n", messageID)
	return SendResult{Delivered: true, MessageID: messageID}
}

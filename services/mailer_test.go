// File: /services/mailer_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"sportsync-api/config"
)

func TestSMTPMailerEmptyRecipientsShortCircuits(t *testing.T) {
	// No SMTP server involved: an empty recipient list must not touch the
	// transport at all.
	mailer := NewSMTPMailer(&config.Config{
		SMTPHost:  "localhost",
		SMTPPort:  2525,
		FromEmail: "noreply@sportsync.app",
		FromName:  "SportSync",
	})

	result := mailer.Send(nil, "subject", "body")

	require.False(t, result.Delivered)
	require.Empty(t, result.MessageID)
	require.Equal(t, "no recipients", result.Error)
}

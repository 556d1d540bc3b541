// File: /services/service_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sportsync-api/models"
	"sportsync-api/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would see a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Activity{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, id, email string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID:       id,
		Name:     id,
		Email:    email,
		Password: "hashed",
	}).Error)
}

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

// fakeMailer records dispatches instead of talking to SMTP
type fakeMailer struct {
	sends []sentMail
	fail  bool
}

func (m *fakeMailer) Send(to []string, subject, body string) SendResult {
	if len(to) == 0 {
		return SendResult{Delivered: false, Error: "no recipients"}
	}
	m.sends = append(m.sends, sentMail{To: to, Subject: subject, Body: body})
	if m.fail {
		return SendResult{Delivered: false, Error: "smtp unavailable"}
	}
	return SendResult{Delivered: true, MessageID: "msg-1"}
}

func newTestNotifications(t *testing.T, db *gorm.DB) (*NotificationService, *fakeMailer) {
	t.Helper()
	mailer := &fakeMailer{}
	resolver := NewRecipientResolver(repositories.NewUserRepository(db))
	return NewNotificationService(resolver, mailer), mailer
}

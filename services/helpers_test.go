package services

import (
	"sync"
	"testing"
	"time"

	"github.com/nourishnet/nourishnet-api/db"
	"github.com/nourishnet/nourishnet-api/models"
	"github.com/nourishnet/nourishnet-api/utils"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

type sentMail struct {
	To, Subject, Body string
}

// recordingMailer captures mail sent from background goroutines.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	ch   chan sentMail
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{ch: make(chan sentMail, 16)}
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	m.mu.Unlock()
	m.ch <- sentMail{to, subject, body}
	return nil
}

func (m *recordingMailer) wait(t *testing.T) sentMail {
	t.Helper()
	select {
	case mail := <-m.ch:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("no email sent")
		return sentMail{}
	}
}

func newTestAuth(t *testing.T, gdb *gorm.DB) (*AuthService, *recordingMailer) {
	t.Helper()
	log, _ := test.NewNullLogger()
	mailer := newRecordingMailer()
	tokens := utils.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(gdb, tokens, mailer, log, "http://localhost:8000", bcrypt.MinCost, time.Hour), mailer
}

// seedUser inserts a verified user with password "Passw0rd!".
func seedUser(t *testing.T, gdb *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: "User " + email, Email: email, PasswordHash: string(hash), Role: role, EmailVerified: true}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func seedRequest(t *testing.T, gdb *gorm.DB, userID string, quantity int) *models.Request {
	t.Helper()
	r := &models.Request{
		UserID:      userID,
		FoodType:    "Vegetarian",
		Quantity:    quantity,
		Location:    "12 Main St",
		MealTime:    "lunch",
		NumChildren: 2,
		PhoneNumber: "555-0100",
	}
	require.NoError(t, gdb.Create(r).Error)
	return r
}

func strPtr(s string) *string { return &s }

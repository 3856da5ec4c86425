package cron

import (
	"context"
	"testing"
	"time"

	"github.com/nourishnet/nourishnet-api/db"
	"github.com/nourishnet/nourishnet-api/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredResetTokens(t *testing.T) {
	gdb, err := db.Open("sqlite", ":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	expired, live := "expired-token", "live-token"
	past, future := now.Add(-time.Minute), now.Add(time.Hour)

	users := []models.User{
		{Name: "A", Email: "a@x.com", PasswordHash: "h", Role: models.RoleDonor, ResetPasswordToken: &expired, ResetPasswordExpires: &past},
		{Name: "B", Email: "b@x.com", PasswordHash: "h", Role: models.RoleDonor, ResetPasswordToken: &live, ResetPasswordExpires: &future},
		{Name: "C", Email: "c@x.com", PasswordHash: "h", Role: models.RoleDonor},
	}
	require.NoError(t, gdb.Create(&users).Error)

	n, err := PurgeExpiredResetTokens(context.Background(), gdb, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var a, b models.User
	require.NoError(t, gdb.First(&a, "email = ?", "a@x.com").Error)
	require.NoError(t, gdb.First(&b, "email = ?", "b@x.com").Error)
	assert.Nil(t, a.ResetPasswordToken)
	assert.Nil(t, a.ResetPasswordExpires)
	require.NotNil(t, b.ResetPasswordToken)
	assert.Equal(t, live, *b.ResetPasswordToken)
}

func TestStartCronJobsRejectsBadSchedule(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := StartCronJobs("not a schedule", nil, log, nil)
	assert.Error(t, err)
}

func TestStartCronJobs(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.InfoLevel)

	c, err := StartCronJobs("@every 1h", nil, log, nil)
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "cron scheduler started", hook.LastEntry().Message)
}

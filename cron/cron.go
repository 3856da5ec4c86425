package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/nourishnet/nourishnet-api/metrics"
	"github.com/nourishnet/nourishnet-api/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StartCronJobs schedules the maintenance jobs and starts the scheduler.
// Callers stop it with Stop() on shutdown.
func StartCronJobs(schedule string, db *gorm.DB, log *logrus.Logger, m *metrics.Metrics) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := PurgeExpiredResetTokens(ctx, db, time.Now())
		if err != nil {
			log.WithError(err).Error("purge expired reset tokens")
			return
		}
		m.ObservePurge(n)
		if n > 0 {
			log.WithField("cleared", n).Info("purged expired reset tokens")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("add purge job: %w", err)
	}
	c.Start()
	log.WithField("schedule", schedule).Info("cron scheduler started")
	return c, nil
}

// PurgeExpiredResetTokens clears reset tokens whose expiry is before now.
func PurgeExpiredResetTokens(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Model(&models.User{}).
		Where("reset_password_token IS NOT NULL AND reset_password_expires < ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

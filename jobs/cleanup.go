package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paydesk/models"
)

// Cleaner is the nightly maintenance job: it closes attendance sessions
// left open from previous days and prunes upload history past the
// configured retention. Retention 0 disables pruning.
type Cleaner struct {
	db            *gorm.DB
	log           *zap.Logger
	retentionDays int
	cron          *cron.Cron
}

func NewCleaner(db *gorm.DB, log *zap.Logger, retentionDays int) *Cleaner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cleaner{db: db, log: log, retentionDays: retentionDays}
}

// Start schedules the job shortly after midnight.
func (c *Cleaner) Start() error {
	c.cron = cron.New()
	if _, err := c.cron.AddFunc("5 0 * * *", func() {
		c.Run(context.Background())
	}); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

func (c *Cleaner) Stop() {
	if c.cron != nil {
		c.cron.Stop()
	}
}

func (c *Cleaner) Run(ctx context.Context) {
	closed, err := c.closeStaleSessions(ctx)
	if err != nil {
		c.log.Error("failed to close stale attendance sessions", zap.Error(err))
	}
	pruned, err := c.pruneUploadHistory(ctx)
	if err != nil {
		c.log.Error("failed to prune upload history", zap.Error(err))
	}
	c.log.Info("nightly cleanup finished",
		zap.Int64("sessions_closed", closed),
		zap.Int64("history_pruned", pruned))
}

// closeStaleSessions force-closes sessions opened before today at the
// midnight following their check-in, so employees who forgot to check out
// do not accumulate open sessions.
func (c *Cleaner) closeStaleSessions(ctx context.Context) (int64, error) {
	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stale []models.Attendance
	err := c.db.WithContext(ctx).
		Where("check_out_time IS NULL AND check_in_time < ?", startOfToday).
		Find(&stale).Error
	if err != nil {
		return 0, err
	}

	var closed int64
	for _, session := range stale {
		in := session.CheckInTime
		endOfDay := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, in.Location()).AddDate(0, 0, 1)
		updates := map[string]interface{}{
			"check_out_time": endOfDay,
			"worked_minutes": endOfDay.Sub(in).Minutes(),
			"status":         "auto_closed",
			"updated_at":     now,
		}
		result := c.db.WithContext(ctx).Model(&models.Attendance{}).
			Where("id = ? AND check_out_time IS NULL", session.ID).
			Updates(updates)
		if result.Error != nil {
			return closed, result.Error
		}
		closed += result.RowsAffected
	}
	return closed, nil
}

func (c *Cleaner) pruneUploadHistory(ctx context.Context) (int64, error) {
	if c.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -c.retentionDays)
	result := c.db.WithContext(ctx).
		Where("processed_at < ?", cutoff).
		Delete(&models.UploadHistory{})
	return result.RowsAffected, result.Error
}

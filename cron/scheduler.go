package cron

import (
	"context"
	"fmt"
	"time"

	"nhap/services/reminder"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// zapCronLogger adapts zap to the cron.Logger interface.
type zapCronLogger struct {
	sugar *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

// StartReminderCron schedules the reminder sweep on schedule (e.g. "@every 24h")
// and stops the scheduler when ctx ends. Overlapping runs are skipped.
func StartReminderCron(ctx context.Context, schedule string, loc *time.Location, sweeper *reminder.Sweeper, logger *zap.Logger) (*robfig.Cron, error) {
	cl := zapCronLogger{sugar: logger.Sugar()}
	c := robfig.New(
		robfig.WithLocation(loc),
		robfig.WithLogger(cl),
		robfig.WithChain(robfig.Recover(cl), robfig.SkipIfStillRunning(cl)),
	)

	_, err := c.AddFunc(schedule, func() {
		if _, err := sweeper.Run(ctx); err != nil {
			logger.Error("Reminder sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}

	c.Start()
	logger.Info("Reminder sweep scheduled", zap.String("schedule", schedule), zap.String("location", loc.String()))

	go func() {
		<-ctx.Done()
		logger.Info("Reminder cron shutdown signal received.")
		<-c.Stop().Done()
	}()
	return c, nil
}

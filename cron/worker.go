package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nhap/config"
	"nhap/models"
	"nhap/services/notification"
	"nhap/services/reminder"
	"nhap/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection shared by the reminder client and worker.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the queued reminder worker in background.
func InitReminderWorker(cfg config.Config, notifSvc notification.NotificationService, loc *time.Location, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(notifSvc, loc, logger))

	go func() {
		logger.Info("[ReminderWorker] starting queued reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("[ReminderWorker] failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("[ReminderWorker] max retry attempts reached, queued reminders are not being delivered")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleReminderTask sends one queued reminder. Missing recipients and tokens
// complete the task; send failures are archived without retry.
func HandleReminderTask(notifSvc notification.NotificationService, loc *time.Location, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ReminderHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		err := reminder.SendReminder(ctx, notifSvc, reminder.BookingFromPayload(p), loc)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, notification.ErrUserNotFound), errors.Is(err, notification.ErrNoPushToken):
			logger.Info("[ReminderHandler] skipping reminder",
				zap.String("bookingId", p.BookingID),
				zap.String("patientId", p.PatientID),
				zap.Error(err),
			)
			return nil
		default:
			logger.Error("[ReminderHandler] failed to send reminder",
				zap.String("bookingId", p.BookingID),
				zap.String("patientId", p.PatientID),
				zap.Error(err),
			)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
	}
}

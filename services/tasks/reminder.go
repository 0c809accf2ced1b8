package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"nhap/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the queue task for one reminder. Reminders are never
// retried by the queue; a failed send is final.
func NewReminderTask(payload models.ReminderPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.MaxRetry(0)}

	return task, opts, nil
}

// TaskClient is the part of *asynq.Client the enqueuer needs.
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqEnqueuer queues reminders for the reminder worker.
type AsynqEnqueuer struct {
	Client TaskClient
}

func (e *AsynqEnqueuer) EnqueueReminder(ctx context.Context, p models.ReminderPayload) error {
	task, opts, err := NewReminderTask(p)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", p.BookingID, err)
	}
	return nil
}

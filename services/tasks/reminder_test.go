package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"nhap/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func TestAsynqEnqueuer(t *testing.T) {
	client := &fakeClient{}
	e := &AsynqEnqueuer{Client: client}
	p := models.ReminderPayload{BookingID: "1", PatientID: "P", DoctorID: "D", BookingDate: 1773480600}

	require.NoError(t, e.EnqueueReminder(context.Background(), p))
	require.Len(t, client.tasks, 1)
	assert.Equal(t, TypeSendReminder, client.tasks[0].Type())

	var got models.ReminderPayload
	require.NoError(t, json.Unmarshal(client.tasks[0].Payload(), &got))
	assert.Equal(t, p, got)
	assert.Contains(t, client.opts[0], asynq.MaxRetry(0))

	client.err = errors.New("redis down")
	assert.Error(t, e.EnqueueReminder(context.Background(), p))
}

package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"nhap/models"
	"nhap/services/notification"
	"nhap/services/notification/notificationtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeBookings struct {
	docs []models.BookingDocument
	err  error
}

func (f *fakeBookings) ForEachDocument(_ context.Context, fn func(doc models.BookingDocument) error) error {
	for _, d := range f.docs {
		if err := fn(d); err != nil {
			return err
		}
	}
	return f.err
}

type fakeEnqueuer struct {
	queued []models.ReminderPayload
	err    error
}

func (f *fakeEnqueuer) EnqueueReminder(_ context.Context, p models.ReminderPayload) error {
	if f.err != nil {
		return f.err
	}
	f.queued = append(f.queued, p)
	return nil
}

var nairobi = time.FixedZone("EAT", 3*60*60)

// 22:15 local on 13 March; tomorrow is 14 March.
var now = time.Date(2026, 3, 13, 22, 15, 0, 0, nairobi)

func TestTomorrowWindow(t *testing.T) {
	start, end := TomorrowWindow(now, nairobi)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, nairobi), start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, nairobi), end)

	assert.True(t, InWindow(start, start, end), "window start is included")
	assert.True(t, InWindow(end.Add(-time.Second), start, end))
	assert.False(t, InWindow(end, start, end), "next midnight is excluded")
	assert.False(t, InWindow(start.Add(-time.Second), start, end))
}

func TestTomorrowWindowAcrossMonthEnd(t *testing.T) {
	start, end := TomorrowWindow(time.Date(2026, 12, 31, 8, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC), end)
}

func booking(id, patient string, date time.Time, status models.BookingStatus) models.Booking {
	return models.Booking{ID: id, PatientID: patient, DoctorID: "D", Date: date, Status: status}
}

func newSweeper(t *testing.T, docs []models.BookingDocument) (*Sweeper, *notificationtest.Gateway) {
	t.Helper()
	users := notificationtest.NewUsers(
		models.User{ID: "P", Name: "Amina", FCMToken: "tok-p"},
		models.User{ID: "Q", Name: "Brian", FCMToken: "tok-q"},
		models.User{ID: "NOTOKEN", Name: "Chen"},
		models.User{ID: "D", Name: "Dr. Otieno", FCMToken: "tok-d"},
	)
	gw := notificationtest.NewGateway()
	svc, err := notification.NewDefaultNotificationService(users, gw, "chat_channel", nil)
	require.NoError(t, err)
	return &Sweeper{
		Bookings:        &fakeBookings{docs: docs},
		Notifier:        svc,
		Location:        nairobi,
		DisplayLocation: nairobi,
		Now:             func() time.Time { return now },
	}, gw
}

func TestSweepWindowBoundaries(t *testing.T) {
	start := time.Date(2026, 3, 14, 0, 0, 0, 0, nairobi)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, nairobi)

	s, gw := newSweeper(t, []models.BookingDocument{
		{PatientID: "P", Bookings: []models.Booking{
			booking("at-start", "P", start, models.StatusActive),
			booking("at-end", "P", end, models.StatusActive),
		}},
	})

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Matched)
	sent := gw.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "at-start", sent[0].Data["bookingId"])
	assert.Equal(t, "reminder", sent[0].Data["type"])
	assert.Equal(t, "tok-p", sent[0].Token)
}

func TestSweepFiltersAndSkips(t *testing.T) {
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, nairobi)
	s, gw := newSweeper(t, []models.BookingDocument{
		{PatientID: "P", Bookings: []models.Booking{
			booking("1", "P", noon, models.StatusActive),
			booking("2", "P", noon, models.StatusPending),
			booking("3", "P", noon.AddDate(0, 0, 2), models.StatusActive),
		}},
		{PatientID: "NOTOKEN", Bookings: []models.Booking{
			booking("4", "NOTOKEN", noon, models.StatusActive),
		}},
		{PatientID: "Q", Bookings: []models.Booking{
			booking("5", "Q", noon, models.StatusActive),
		}},
	})
	s.Limiter = rate.NewLimiter(rate.Inf, 1)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Documents)
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, gw.ToToken("tok-p"), 1)
	assert.Len(t, gw.ToToken("tok-q"), 1)
	assert.Contains(t, gw.ToToken("tok-p")[0].Notification.Body, "Dr. Otieno")
}

func TestSweepRunsAreNotDeduplicated(t *testing.T) {
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, nairobi)
	s, gw := newSweeper(t, []models.BookingDocument{
		{PatientID: "P", Bookings: []models.Booking{booking("1", "P", noon, models.StatusActive)}},
	})

	_, err := s.Run(context.Background())
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, gw.Messages(), 2)
}

func TestSweepEnqueuesWhenQueueConfigured(t *testing.T) {
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, nairobi)
	s, gw := newSweeper(t, []models.BookingDocument{
		{PatientID: "P", Bookings: []models.Booking{booking("1", "P", noon, models.StatusActive)}},
	})
	q := &fakeEnqueuer{}
	s.Enqueuer = q

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Queued)
	assert.Empty(t, gw.Messages())
	require.Len(t, q.queued, 1)
	assert.Equal(t, models.ReminderPayload{BookingID: "1", PatientID: "P", DoctorID: "D", BookingDate: noon.Unix()}, q.queued[0])

	q.err = errors.New("redis down")
	res, err = s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
}

func TestSweepScanErrorIsReturned(t *testing.T) {
	s, _ := newSweeper(t, nil)
	s.Bookings = &fakeBookings{err: errors.New("deadline exceeded")}

	_, err := s.Run(context.Background())
	assert.Error(t, err)
}

func TestPayloadRoundTrip(t *testing.T) {
	b := booking("9", "P", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), models.StatusActive)
	got := BookingFromPayload(PayloadFor(b))

	assert.Equal(t, b.Key(), got.Key())
	assert.Equal(t, b.PatientID, got.PatientID)
	assert.Equal(t, b.DoctorID, got.DoctorID)
	assert.True(t, b.Date.Equal(got.Date))
}

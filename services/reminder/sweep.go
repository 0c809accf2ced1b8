package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "nhap/database/repository/booking"
	"nhap/models"
	"nhap/services/notification"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TomorrowWindow returns the calendar day after now in loc as [start, end).
// end is the following midnight and is not part of the window.
func TomorrowWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	n := now.In(loc)
	start := time.Date(n.Year(), n.Month(), n.Day()+1, 0, 0, 0, 0, loc)
	end := time.Date(n.Year(), n.Month(), n.Day()+2, 0, 0, 0, 0, loc)
	return start, end
}

// InWindow reports whether t lies in [start, end).
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// Enqueuer hands a reminder to the task queue instead of sending it inline.
type Enqueuer interface {
	EnqueueReminder(ctx context.Context, p models.ReminderPayload) error
}

// SweepResult counts what one run did.
type SweepResult struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Documents   int
	Matched     int
	Sent        int
	Queued      int
	Skipped     int
	Failed      int
}

// Sweeper scans every booking document for Active appointments tomorrow and
// reminds their patients. Runs are not de-duplicated: running twice on one
// day reminds twice.
type Sweeper struct {
	Bookings        bookingRepo.BookingRepository
	Notifier        notification.NotificationService
	Enqueuer        Enqueuer      // optional; nil sends inline
	Limiter         *rate.Limiter // optional send pacing
	Location        *time.Location
	DisplayLocation *time.Location
	Logger          *zap.Logger
	Now             func() time.Time
}

// Run performs one sweep. Individual send failures are logged and counted;
// only a failed scan is returned as an error.
func (s *Sweeper) Run(ctx context.Context) (SweepResult, error) {
	logger := s.logger()
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	start, end := TomorrowWindow(now, s.Location)
	res := SweepResult{WindowStart: start, WindowEnd: end}

	err := s.Bookings.ForEachDocument(ctx, func(doc models.BookingDocument) error {
		res.Documents++
		for _, b := range doc.Bookings {
			if b.Status != models.StatusActive || !InWindow(b.Date, start, end) {
				continue
			}
			res.Matched++
			if err := s.pace(ctx); err != nil {
				return err
			}
			s.remind(ctx, b, &res)
		}
		return nil
	})

	logger.Info("reminder sweep finished",
		zap.Time("windowStart", start),
		zap.Time("windowEnd", end),
		zap.Int("documents", res.Documents),
		zap.Int("matched", res.Matched),
		zap.Int("sent", res.Sent),
		zap.Int("queued", res.Queued),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)
	if err != nil {
		return res, fmt.Errorf("reminder sweep: %w", err)
	}
	return res, nil
}

func (s *Sweeper) remind(ctx context.Context, b models.Booking, res *SweepResult) {
	logger := s.logger().With(zap.String("bookingId", b.Key()), zap.String("patientId", b.PatientID))

	if s.Enqueuer != nil {
		if err := s.Enqueuer.EnqueueReminder(ctx, PayloadFor(b)); err != nil {
			res.Failed++
			logger.Error("failed to enqueue reminder", zap.Error(err))
			return
		}
		res.Queued++
		return
	}

	err := SendReminder(ctx, s.Notifier, b, s.DisplayLocation)
	switch {
	case err == nil:
		res.Sent++
	case errors.Is(err, notification.ErrUserNotFound), errors.Is(err, notification.ErrNoPushToken):
		res.Skipped++
		logger.Info("skipping reminder", zap.Error(err))
	default:
		res.Failed++
		logger.Error("failed to send reminder", zap.Error(err))
	}
}

func (s *Sweeper) pace(ctx context.Context) error {
	if s.Limiter == nil {
		return nil
	}
	return s.Limiter.Wait(ctx)
}

func (s *Sweeper) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// SendReminder sends the reminder for b to its patient.
func SendReminder(ctx context.Context, n notification.NotificationService, b models.Booking, loc *time.Location) error {
	doctor := n.DisplayName(ctx, b.DoctorID)
	msg := notification.Compose(models.NotificationReminder, models.RolePatient, b, doctor, loc)
	_, err := n.SendToUser(ctx, b.PatientID, msg)
	return err
}

// PayloadFor is the queued form of a reminder for b.
func PayloadFor(b models.Booking) models.ReminderPayload {
	return models.ReminderPayload{
		BookingID:   b.Key(),
		PatientID:   b.PatientID,
		DoctorID:    b.DoctorID,
		BookingDate: b.Date.Unix(),
	}
}

// BookingFromPayload restores the booking fields a reminder needs.
func BookingFromPayload(p models.ReminderPayload) models.Booking {
	return models.Booking{
		ID:        p.BookingID,
		PatientID: p.PatientID,
		DoctorID:  p.DoctorID,
		Date:      time.Unix(p.BookingDate, 0),
		Status:    models.StatusActive,
	}
}

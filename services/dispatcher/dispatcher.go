package dispatcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"nhap/events"
	"nhap/models"
	"nhap/services/booking"
	"nhap/services/notification"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result summarises one handled write.
type Result struct {
	Changes    int
	Suppressed int
	Deliveries int
	Sent       int
	Skipped    int
	Failed     int
	// Err collects every failed send; skipped recipients are not errors.
	Err error
}

// BookingDispatcher turns booking document writes into push notifications.
type BookingDispatcher struct {
	Notifier    notification.NotificationService
	Logger      *zap.Logger
	Location    *time.Location
	Options     booking.DecideOptions
	Concurrency int
}

// WritePlan is what one write warrants. Suppressed changes touch an element
// that failed to decode and are never delivered.
type WritePlan struct {
	Changes    []booking.Change
	Suppressed []booking.Change
	Deliveries []booking.Delivery
}

// Plan reconciles a write and returns every delivery it warrants, in order.
func (d *BookingDispatcher) Plan(w *events.BookingWrite) WritePlan {
	var before, after []models.Booking
	if w.Before != nil {
		before = w.Before.Bookings
	}
	if w.After != nil {
		after = w.After.Bookings
	}

	var p WritePlan
	p.Changes, p.Suppressed = booking.MalformedIn(w.Before, w.After).Filter(booking.Reconcile(before, after))
	for _, c := range p.Changes {
		p.Deliveries = append(p.Deliveries, booking.Decide(c, d.Options)...)
	}
	return p
}

// HandleBookingWrite sends one message per qualifying change and recipient.
// Deliveries run concurrently; a failure never cancels its siblings.
func (d *BookingDispatcher) HandleBookingWrite(ctx context.Context, w *events.BookingWrite) Result {
	logger := d.logger().With(zap.String("eventId", w.EventID), zap.String("patientId", w.PatientID))
	for _, err := range w.ElementErrors {
		logger.Warn("skipping malformed booking element", zap.Error(err))
	}
	for _, doc := range []*models.BookingDocument{w.Before, w.After} {
		if doc == nil {
			continue
		}
		for _, key := range booking.DuplicateKeys(doc.Bookings) {
			logger.Warn("bookings share a key; only the first is tracked", zap.String("bookingKey", key))
		}
	}

	p := d.Plan(w)
	res := Result{Changes: len(p.Changes), Suppressed: len(p.Suppressed), Deliveries: len(p.Deliveries)}
	for _, c := range p.Suppressed {
		logger.Warn("ignoring change to malformed booking",
			zap.String("bookingId", c.Booking.Key()),
			zap.String("kind", string(c.Kind)),
		)
	}
	if len(p.Deliveries) == 0 {
		logger.Debug("no notification-worthy change", zap.Int("changes", len(p.Changes)))
		return res
	}

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)
	g := new(errgroup.Group)
	if d.Concurrency > 0 {
		g.SetLimit(d.Concurrency)
	}
	for _, dl := range p.Deliveries {
		g.Go(func() error {
			err := d.deliver(ctx, dl)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				res.Sent++
			case errors.Is(err, notification.ErrUserNotFound), errors.Is(err, notification.ErrNoPushToken):
				res.Skipped++
				logger.Info("skipping notification",
					zap.String("bookingId", dl.Booking.Key()),
					zap.String("recipientId", dl.RecipientID),
					zap.String("type", string(dl.Type)),
					zap.Error(err),
				)
			default:
				res.Failed++
				errs = multierror.Append(errs, err)
				logger.Error("failed to send notification",
					zap.String("bookingId", dl.Booking.Key()),
					zap.String("recipientId", dl.RecipientID),
					zap.String("type", string(dl.Type)),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	res.Err = errs.ErrorOrNil()
	logger.Info("booking write handled",
		zap.Int("changes", res.Changes),
		zap.Int("suppressed", res.Suppressed),
		zap.Int("sent", res.Sent),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)
	return res
}

func (d *BookingDispatcher) deliver(ctx context.Context, dl booking.Delivery) error {
	name := d.Notifier.DisplayName(ctx, dl.CounterpartID)
	msg := notification.Compose(dl.Type, dl.Role, dl.Booking, name, d.Location)
	_, err := d.Notifier.SendToUser(ctx, dl.RecipientID, msg)
	return err
}

func (d *BookingDispatcher) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

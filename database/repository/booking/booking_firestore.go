package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"nhap/models"
)

// FirestoreBookingRepo implements BookingRepository on Bookings/{userId} documents.
type FirestoreBookingRepo struct {
	coll   *firestore.CollectionRef
	field  string
	logger *zap.Logger
}

// NewFirestoreBookingRepo creates a BookingRepository scanning collection and
// reading the embedded list stored under field.
func NewFirestoreBookingRepo(client *firestore.Client, collection, field string, logger *zap.Logger) BookingRepository {
	return &FirestoreBookingRepo{
		coll:   client.Collection(collection),
		field:  field,
		logger: logger,
	}
}

// ForEachDocument streams every document; malformed elements are logged and skipped.
func (r *FirestoreBookingRepo) ForEachDocument(ctx context.Context, fn func(doc models.BookingDocument) error) error {
	it := r.coll.Documents(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", r.coll.ID, err)
		}

		doc, decodeErrs := DecodeDocument(snap.Ref.ID, snap.Data(), r.field)
		for _, derr := range decodeErrs {
			r.logger.Warn("skipping malformed booking",
				zap.String("patientId", snap.Ref.ID),
				zap.Error(derr),
			)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
}

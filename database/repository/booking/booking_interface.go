package bookingRepo

import (
	"context"

	"nhap/models"
)

// BookingRepository defines read access to the Bookings collection.
type BookingRepository interface {
	// ForEachDocument calls fn for every booking document in the collection.
	// Returning an error from fn stops the scan and is returned as is.
	ForEachDocument(ctx context.Context, fn func(doc models.BookingDocument) error) error
}

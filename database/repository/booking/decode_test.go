package bookingRepo

import (
	"testing"
	"time"

	"nhap/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var when = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestDecodeDocument(t *testing.T) {
	data := map[string]any{
		"Bookings": []any{
			map[string]any{"id": "b-1", "doctorId": "D", "date": when, "status": "Pending"},
			map[string]any{"id": int64(7), "doctorId": "D", "date": map[string]any{"seconds": when.Unix()}, "status": "Active"},
			map[string]any{"id": float64(8), "doctorId": "D", "date": map[string]any{"_seconds": float64(when.Unix()), "nanoseconds": float64(0)}},
			map[string]any{"doctorId": "D", "date": when},
			map[string]any{"id": "x", "date": when},
			map[string]any{"id": "y", "doctorId": "D"},
			map[string]any{"id": []any{"z"}, "doctorId": "D", "date": when},
			"not a map",
		},
	}

	doc, errs := DecodeDocument("P", data, "Bookings")

	assert.Equal(t, "P", doc.PatientID)
	require.Len(t, doc.Bookings, 4)
	assert.Len(t, errs, 4)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrMalformedBooking)
	}

	assert.Equal(t, models.Booking{ID: "b-1", PatientID: "P", DoctorID: "D", Date: when, Status: models.StatusPending}, doc.Bookings[0])
	assert.Equal(t, "7", doc.Bookings[1].ID)
	assert.True(t, when.Equal(doc.Bookings[1].Date))
	assert.Equal(t, "8", doc.Bookings[2].ID)
	assert.True(t, when.Equal(doc.Bookings[2].Date))
	assert.Equal(t, models.BookingStatus(""), doc.Bookings[2].Status)
	assert.Equal(t, "", doc.Bookings[3].ID)
	assert.Equal(t, "1773480600", doc.Bookings[3].Key(), "id-less element is keyed by its date")

	assert.Equal(t, []string{"x", "y"}, doc.MalformedKeys)
	assert.Equal(t, 2, doc.UnkeyedMalformed, "unreadable id and non-map element have no key")
}

func TestDecodeDocumentKeysMalformedElementByDate(t *testing.T) {
	data := map[string]any{"Bookings": []any{
		map[string]any{"date": when, "status": "Active"},
	}}

	doc, errs := DecodeDocument("P", data, "Bookings")

	assert.Empty(t, doc.Bookings)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"1773480600"}, doc.MalformedKeys)
}

func TestDecodeDocumentMissingOrWrongField(t *testing.T) {
	doc, errs := DecodeDocument("P", map[string]any{}, "Bookings")
	assert.Empty(t, doc.Bookings)
	assert.Empty(t, errs)

	doc, errs = DecodeDocument("P", map[string]any{"Bookings": "oops"}, "Bookings")
	assert.Empty(t, doc.Bookings)
	assert.Equal(t, 1, doc.UnkeyedMalformed)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrMalformedBooking)
}

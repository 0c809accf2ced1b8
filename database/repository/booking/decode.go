package bookingRepo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"nhap/models"
)

// ErrMalformedBooking marks a Bookings array element that cannot be used.
var ErrMalformedBooking = errors.New("malformed booking")

// DecodeDocument builds a BookingDocument from the raw fields of Bookings/{patientID}.
// Elements that cannot be decoded are left out and reported in the returned
// errors; the rest of the list is still usable. The keys of dropped elements
// are kept on the document so callers can tell a dropped element from a
// removed one.
func DecodeDocument(patientID string, data map[string]any, field string) (models.BookingDocument, []error) {
	doc := models.BookingDocument{PatientID: patientID}
	raw, ok := data[field]
	if !ok || raw == nil {
		return doc, nil
	}
	list, ok := raw.([]any)
	if !ok {
		doc.UnkeyedMalformed++
		return doc, []error{fmt.Errorf("%w: field %s is %T, not an array", ErrMalformedBooking, field, raw)}
	}

	var errs []error
	for i, elem := range list {
		b, err := decodeBooking(elem)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", field, i, err))
			if key := elementKey(elem); key != "" {
				doc.MalformedKeys = append(doc.MalformedKeys, key)
			} else {
				doc.UnkeyedMalformed++
			}
			continue
		}
		b.PatientID = patientID
		doc.Bookings = append(doc.Bookings, b)
	}
	return doc, errs
}

func decodeBooking(elem any) (models.Booking, error) {
	m, ok := elem.(map[string]any)
	if !ok {
		return models.Booking{}, fmt.Errorf("%w: element is %T, not a map", ErrMalformedBooking, elem)
	}

	var b models.Booking
	id, err := asIdentifier(m["id"])
	if err != nil {
		return b, err
	}
	b.ID = id

	doctorID, _ := m["doctorId"].(string)
	if doctorID == "" {
		return b, fmt.Errorf("%w: missing doctorId", ErrMalformedBooking)
	}
	b.DoctorID = doctorID

	date, err := asTime(m["date"])
	if err != nil {
		return b, err
	}
	b.Date = date

	status, _ := m["status"].(string)
	b.Status = models.BookingStatus(status)
	return b, nil
}

// elementKey reads the Booking.Key of an element that failed to decode, or "".
func elementKey(elem any) string {
	m, ok := elem.(map[string]any)
	if !ok {
		return ""
	}
	id, err := asIdentifier(m["id"])
	if err != nil {
		return ""
	}
	if id != "" {
		return id
	}
	if t, err := asTime(m["date"]); err == nil {
		return strconv.FormatInt(t.Unix(), 10)
	}
	return ""
}

func asIdentifier(v any) (string, error) {
	switch id := v.(type) {
	case nil:
		return "", nil
	case string:
		return id, nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case int:
		return strconv.Itoa(id), nil
	case float64:
		if id == math.Trunc(id) {
			return strconv.FormatInt(int64(id), 10), nil
		}
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: unsupported id type %T", ErrMalformedBooking, v)
	}
}

// asTime accepts a Firestore timestamp or a {seconds, nanoseconds} map.
func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case map[string]any:
		sec, ok := toInt64(t["seconds"])
		if !ok {
			sec, ok = toInt64(t["_seconds"])
		}
		if !ok {
			return time.Time{}, fmt.Errorf("%w: date map without seconds", ErrMalformedBooking)
		}
		nsec, _ := toInt64(t["nanoseconds"])
		return time.Unix(sec, nsec), nil
	case nil:
		return time.Time{}, fmt.Errorf("%w: missing date", ErrMalformedBooking)
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported date type %T", ErrMalformedBooking, v)
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

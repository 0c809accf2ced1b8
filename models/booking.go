package models

import (
	"strconv"
	"time"
)

// BookingStatus is the lifecycle state stored on a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "Pending"
	StatusActive     BookingStatus = "Active"
	StatusCancelled  BookingStatus = "Cancelled"
	StatusTerminated BookingStatus = "Terminated"
)

// IsClosed reports whether the status ends the booking.
func (s BookingStatus) IsClosed() bool {
	return s == StatusCancelled || s == StatusTerminated
}

// Booking is one appointment in a patient's Bookings array.
type Booking struct {
	ID        string        `firestore:"id" json:"id"`             // Stable identifier; falls back to the date's unix seconds
	PatientID string        `firestore:"-" json:"patientId"`       // Owning document ID
	DoctorID  string        `firestore:"doctorId" json:"doctorId"` // Doctor's user ID
	Date      time.Time     `firestore:"date" json:"date"`         // Scheduled appointment time
	Status    BookingStatus `firestore:"status" json:"status"`
}

// Key returns the identity used to match a booking across document versions.
func (b Booking) Key() string {
	if b.ID != "" {
		return b.ID
	}
	return strconv.FormatInt(b.Date.Unix(), 10)
}

// BookingDocument is the Bookings/{userId} document: a patient and their appointments.
type BookingDocument struct {
	PatientID string    `json:"patientId"`
	Bookings  []Booking `json:"bookings"`

	// MalformedKeys holds the keys of elements that failed to decode but
	// still carried a readable id or date.
	MalformedKeys []string `json:"-"`
	// UnkeyedMalformed counts undecodable elements with no readable key.
	UnkeyedMalformed int `json:"-"`
}

package models

// ReminderPayload is the body of a queued reminder task.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	PatientID   string `json:"patientId"`
	DoctorID    string `json:"doctorId"`
	BookingDate int64  `json:"bookingDate"` // unix seconds
}

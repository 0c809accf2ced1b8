package notification

import (
	"fmt"
	"strconv"
	"time"

	"nhap/models"
)

// AppointmentLayout is how appointment times read in notification bodies.
const AppointmentLayout = "2 January 2006, 3:04 PM"

// FormatAppointment renders t in loc for display.
func FormatAppointment(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(AppointmentLayout)
}

// Compose builds the title, body and routing payload for one message.
// counterpartName is the other party's display name and may be empty.
func Compose(t models.NotificationType, role models.Role, b models.Booking, counterpartName string, loc *time.Location) models.PushNotification {
	when := FormatAppointment(b.Date, loc)
	with := ""
	if counterpartName != "" {
		with = " with " + counterpartName
	}

	var title, body string
	switch t {
	case models.NotificationNewBooking:
		title = "New Booking Request"
		from := "a patient"
		if counterpartName != "" {
			from = counterpartName
		}
		body = fmt.Sprintf("New booking request from %s on %s", from, when)
	case models.NotificationBookingConfirmed:
		title = "Booking Confirmed"
		body = fmt.Sprintf("Your booking%s on %s has been received", with, when)
	case models.NotificationBookingAccepted:
		title = "Booking Accepted"
		body = fmt.Sprintf("Your booking%s on %s has been accepted", with, when)
	case models.NotificationCancelled:
		title = "Booking Cancelled"
		body = fmt.Sprintf("Your booking%s on %s has been cancelled", with, when)
	case models.NotificationReminder:
		title = "Appointment Reminder"
		body = fmt.Sprintf("Your appointment%s is scheduled for %s", with, when)
	default:
		title = "Booking Update"
		body = fmt.Sprintf("Your booking%s on %s has been updated", with, when)
	}

	return models.PushNotification{
		Type:  t,
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":        string(t),
			"role":        string(role),
			"bookingId":   b.Key(),
			"patientId":   b.PatientID,
			"doctorId":    b.DoctorID,
			"bookingDate": strconv.FormatInt(b.Date.Unix(), 10),
		},
	}
}

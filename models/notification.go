package models

// NotificationType is the machine-readable tag the app routes on.
type NotificationType string

const (
	NotificationNewBooking       NotificationType = "new_booking"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingAccepted  NotificationType = "booking_accepted"
	NotificationCancelled        NotificationType = "cancelled"
	NotificationReminder         NotificationType = "reminder"
)

// Role identifies which side of a booking a recipient is on.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// PushNotification is built per event and discarded after it is handed to the gateway.
type PushNotification struct {
	Type  NotificationType  `json:"type"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

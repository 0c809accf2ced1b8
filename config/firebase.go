package config

import (
	"fmt"
	"time"
)

// FirebaseServiceAccountKeyPath is the default location of the service account JSON key.
const FirebaseServiceAccountKeyPath = "config/serviceAccountKey.json"

// Firestore layout: one document per patient under Bookings/{userId},
// holding its appointments in the Bookings array field.
const (
	BookingsCollection = "Bookings"
	BookingsField      = "Bookings"
	UsersCollection    = "Users"
)

// NotificationChannelID matches the Android channel created by the mobile app.
const NotificationChannelID = "chat_channel"

// LoadLocation resolves a configured time zone name. An empty name means Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", name, err)
	}
	return loc, nil
}

// models/user.go
package models

// User is the Users/{userId} document, patient or doctor.
type User struct {
	ID       string `firestore:"-" json:"id"`
	Name     string `firestore:"name" json:"name"`
	FCMToken string `firestore:"fcmToken" json:"fcmToken,omitempty"` // Empty until the app is granted notification permission
}

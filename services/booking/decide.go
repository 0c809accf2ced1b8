// File: services/booking/decide.go
package booking

import "nhap/models"

// Delivery is one message owed to one recipient because of one change.
type Delivery struct {
	RecipientID   string
	Role          models.Role
	CounterpartID string
	Type          models.NotificationType
	Booking       models.Booking
}

// DecideOptions tunes which parties hear about a change.
type DecideOptions struct {
	// NotifyPatientOnCreate also confirms a new booking to the patient.
	NotifyPatientOnCreate bool
}

// Decide maps a change to the deliveries it warrants. Status transitions
// other than Pending→Active and Pending/Active→Cancelled/Terminated yield none.
func Decide(c Change, opts DecideOptions) []Delivery {
	b := c.Booking
	toPatient := func(t models.NotificationType) Delivery {
		return Delivery{RecipientID: b.PatientID, Role: models.RolePatient, CounterpartID: b.DoctorID, Type: t, Booking: b}
	}
	toDoctor := func(t models.NotificationType) Delivery {
		return Delivery{RecipientID: b.DoctorID, Role: models.RoleDoctor, CounterpartID: b.PatientID, Type: t, Booking: b}
	}

	switch c.Kind {
	case ChangeCreated:
		out := []Delivery{toDoctor(models.NotificationNewBooking)}
		if opts.NotifyPatientOnCreate {
			out = append(out, toPatient(models.NotificationBookingConfirmed))
		}
		return out

	case ChangeStatusChanged:
		if c.Previous == nil {
			return nil
		}
		from, to := c.Previous.Status, b.Status
		switch {
		case from == models.StatusPending && to == models.StatusActive:
			return []Delivery{toPatient(models.NotificationBookingAccepted)}
		case (from == models.StatusPending || from == models.StatusActive) && to.IsClosed():
			return []Delivery{toPatient(models.NotificationCancelled)}
		default:
			return nil
		}

	case ChangeDeleted:
		return []Delivery{
			toPatient(models.NotificationCancelled),
			toDoctor(models.NotificationCancelled),
		}
	}
	return nil
}

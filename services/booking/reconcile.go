// File: services/booking/reconcile.go
package booking

import "nhap/models"

// ChangeKind classifies how one booking differs between two document versions.
type ChangeKind string

const (
	ChangeCreated       ChangeKind = "created"
	ChangeStatusChanged ChangeKind = "status_changed"
	ChangeDeleted       ChangeKind = "deleted"
)

// Change is one element-level difference. Previous is the before-state for
// status changes and deletions, nil for creations.
type Change struct {
	Kind     ChangeKind
	Booking  models.Booking
	Previous *models.Booking
}

// Reconcile diffs two versions of a patient's booking list element by element.
// Elements are matched on Booking.Key, so reordering or inserting entries never
// turns into a spurious status change. Unchanged elements produce nothing.
// When a key repeats inside one list only its first occurrence counts.
//
// Output order: created and status changes in after-list order, then
// deletions in before-list order.
func Reconcile(before, after []models.Booking) []Change {
	prev := make(map[string]models.Booking, len(before))
	for _, b := range before {
		if _, dup := prev[b.Key()]; !dup {
			prev[b.Key()] = b
		}
	}

	var changes []Change
	seen := make(map[string]struct{}, len(after))
	for _, b := range after {
		key := b.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		old, existed := prev[key]
		switch {
		case !existed:
			changes = append(changes, Change{Kind: ChangeCreated, Booking: b})
		case old.Status != b.Status:
			o := old
			changes = append(changes, Change{Kind: ChangeStatusChanged, Booking: b, Previous: &o})
		}
	}

	deleted := make(map[string]struct{})
	for _, b := range before {
		key := b.Key()
		if _, still := seen[key]; still {
			continue
		}
		if _, done := deleted[key]; done {
			continue
		}
		deleted[key] = struct{}{}
		o := b
		changes = append(changes, Change{Kind: ChangeDeleted, Booking: b, Previous: &o})
	}
	return changes
}

package booking

import "nhap/models"

// Malformed describes booking elements that failed to decode in either
// version of a document. Changes touching them are not trustworthy: a dropped
// element looks exactly like a removed or newly added one.
type Malformed struct {
	Keys    map[string]struct{}
	Unkeyed bool
}

// MalformedIn collects the malformed elements of the given documents; nil
// documents are ignored.
func MalformedIn(docs ...*models.BookingDocument) Malformed {
	m := Malformed{Keys: make(map[string]struct{})}
	for _, d := range docs {
		if d == nil {
			continue
		}
		for _, k := range d.MalformedKeys {
			m.Keys[k] = struct{}{}
		}
		if d.UnkeyedMalformed > 0 {
			m.Unkeyed = true
		}
	}
	return m
}

// Empty reports whether both versions decoded cleanly.
func (m Malformed) Empty() bool {
	return len(m.Keys) == 0 && !m.Unkeyed
}

// Filter splits changes into those safe to act on and those suppressed.
// A change whose key is malformed on either side is suppressed. When some
// element had no readable key at all, every creation and deletion is
// suppressed too, since any of them may be that element; status changes
// matched in both versions stay.
func (m Malformed) Filter(changes []Change) (kept, suppressed []Change) {
	if m.Empty() {
		return changes, nil
	}
	for _, c := range changes {
		_, bad := m.Keys[c.Booking.Key()]
		if !bad && m.Unkeyed && c.Kind != ChangeStatusChanged {
			bad = true
		}
		if bad {
			suppressed = append(suppressed, c)
			continue
		}
		kept = append(kept, c)
	}
	return kept, suppressed
}

// DuplicateKeys returns every key that occurs more than once in list, in
// first-seen order. Reconcile only honours the first occurrence of each.
func DuplicateKeys(list []models.Booking) []string {
	seen := make(map[string]int, len(list))
	var dups []string
	for _, b := range list {
		k := b.Key()
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

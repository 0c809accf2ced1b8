// Package events decodes Firestore document-write trigger payloads.
package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/protobuf/encoding/protojson"

	"nhap/database"
	bookingRepo "nhap/database/repository/booking"
	"nhap/models"
)

// ErrMalformedEvent is returned when a payload cannot describe a booking write.
var ErrMalformedEvent = errors.New("malformed event")

// Envelope is the background-function event delivery body. Data holds the
// Firestore payload; a bare payload without the envelope is accepted too.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Context EventContext    `json:"context"`

	OldValue json.RawMessage `json:"oldValue"`
	Value    json.RawMessage `json:"value"`
}

// EventContext carries the delivery metadata.
type EventContext struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Timestamp string          `json:"timestamp"`
	Resource  json.RawMessage `json:"resource"`
}

// DocumentEvent is the Firestore part of a write trigger.
type DocumentEvent struct {
	OldValue   json.RawMessage `json:"oldValue"`
	Value      json.RawMessage `json:"value"`
	UpdateMask struct {
		FieldPaths []string `json:"fieldPaths"`
	} `json:"updateMask"`
}

// BookingWrite is one write to a Bookings/{userId} document. Before is nil on
// create, After is nil on delete.
type BookingWrite struct {
	EventID    string
	EventType  string
	OccurredAt time.Time
	PatientID  string
	Before     *models.BookingDocument
	After      *models.BookingDocument
	// ElementErrors lists array elements that were dropped as malformed.
	ElementErrors []error
}

// Decoder turns raw trigger bodies into BookingWrites for one collection layout.
type Decoder struct {
	Collection string
	Field      string
}

var unmarshalDoc = protojson.UnmarshalOptions{DiscardUnknown: true}

// Decode parses a trigger body.
func (d Decoder) Decode(body []byte) (*BookingWrite, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	payload := DocumentEvent{OldValue: env.OldValue, Value: env.Value}
	if !isEmptyJSON(env.Data) {
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, fmt.Errorf("%w: data: %v", ErrMalformedEvent, err)
		}
	}

	before, err := decodeDocument(payload.OldValue)
	if err != nil {
		return nil, fmt.Errorf("%w: oldValue: %v", ErrMalformedEvent, err)
	}
	after, err := decodeDocument(payload.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: value: %v", ErrMalformedEvent, err)
	}
	if before == nil && after == nil {
		return nil, fmt.Errorf("%w: neither oldValue nor value present", ErrMalformedEvent)
	}

	name := resourceName(env.Context.Resource)
	if after != nil && after.GetName() != "" {
		name = after.GetName()
	} else if before != nil && before.GetName() != "" {
		name = before.GetName()
	}
	patientID, err := d.documentID(name)
	if err != nil {
		return nil, err
	}

	w := &BookingWrite{
		EventID:   env.Context.EventID,
		EventType: env.Context.EventType,
		PatientID: patientID,
	}
	if ts, err := time.Parse(time.RFC3339Nano, env.Context.Timestamp); err == nil {
		w.OccurredAt = ts
	}
	if before != nil {
		doc, errs := bookingRepo.DecodeDocument(patientID, database.FromProtoFields(before.GetFields()), d.Field)
		w.Before = &doc
		w.ElementErrors = append(w.ElementErrors, errs...)
	}
	if after != nil {
		doc, errs := bookingRepo.DecodeDocument(patientID, database.FromProtoFields(after.GetFields()), d.Field)
		w.After = &doc
		w.ElementErrors = append(w.ElementErrors, errs...)
	}
	return w, nil
}

// documentID checks that name is <collection>/{id} and returns the id.
func (d Decoder) documentID(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: no document name", ErrMalformedEvent)
	}
	path := name
	if i := strings.Index(name, "/documents/"); i >= 0 {
		path = name[i+len("/documents/"):]
	}
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] != d.Collection || parts[1] == "" {
		return "", fmt.Errorf("%w: document %q is not in %s/{userId}", ErrMalformedEvent, name, d.Collection)
	}
	return parts[1], nil
}

// decodeDocument returns nil for an absent document ({} or null).
func decodeDocument(raw json.RawMessage) (*firestorepb.Document, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}
	var doc firestorepb.Document
	if err := unmarshalDoc.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.GetName() == "" && len(doc.GetFields()) == 0 {
		return nil, nil
	}
	return &doc, nil
}

// resourceName accepts both the string and the {service, name} resource forms.
func resourceName(raw json.RawMessage) string {
	if isEmptyJSON(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Name
	}
	return ""
}

func isEmptyJSON(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null")) || bytes.Equal(t, []byte("{}"))
}

package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gpjeong/wedding/internal/store"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type Error struct {
	Message string `json:"message"`
}

// Attendance values accepted on an RSVP.
const (
	AttendanceAttending = "attending"
	AttendanceUndecided = "undecided"
	AttendanceDeclined  = "declined"
)

// Guest count bounds on an RSVP.
const (
	MinGuests = 1
	MaxGuests = 5
)

// GuestbookCreate is the submission body for a new guestbook entry.
type GuestbookCreate struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Message  string `json:"message"`
}

// GuestbookDelete carries the author password for a delete.
type GuestbookDelete struct {
	Password string `json:"password"`
}

// GuestbookEntry is an entry as served to guests. The stored password
// never leaves the server on this surface.
type GuestbookEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// guestbookFields is the document payload as stored.
type guestbookFields struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Message  string `json:"message"`
}

type RsvpCreate struct {
	Name       string `json:"name"`
	Attendance string `json:"attendance"`
	Meal       *bool  `json:"meal"`
	Guests     int    `json:"guests"`
}

type RsvpResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Attendance string    `json:"attendance"`
	Meal       bool      `json:"meal"`
	Guests     int       `json:"guests"`
	CreatedAt  time.Time `json:"createdAt"`
}

// rsvpFields is the document payload as stored.
type rsvpFields struct {
	Name       string `json:"name"`
	Attendance string `json:"attendance"`
	Meal       bool   `json:"meal"`
	Guests     int    `json:"guests"`
}

func entryFromDocument(doc store.Document) (GuestbookEntry, error) {
	var fields guestbookFields
	if err := json.Unmarshal(doc.Data, &fields); err != nil {
		return GuestbookEntry{}, fmt.Errorf("decoding guestbook document %s: %w", doc.ID, err)
	}
	return GuestbookEntry{
		ID:        doc.ID,
		Name:      fields.Name,
		Message:   fields.Message,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func entriesFromSnapshot(snap store.Snapshot) ([]GuestbookEntry, error) {
	entries := make([]GuestbookEntry, 0, len(snap))
	for _, doc := range snap {
		entry, err := entryFromDocument(doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func rsvpFromDocument(doc store.Document) (RsvpResponse, error) {
	var fields rsvpFields
	if err := json.Unmarshal(doc.Data, &fields); err != nil {
		return RsvpResponse{}, fmt.Errorf("decoding rsvp document %s: %w", doc.ID, err)
	}
	return RsvpResponse{
		ID:         doc.ID,
		Name:       fields.Name,
		Attendance: fields.Attendance,
		Meal:       fields.Meal,
		Guests:     fields.Guests,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

func rsvpsFromSnapshot(snap store.Snapshot) ([]RsvpResponse, error) {
	responses := make([]RsvpResponse, 0, len(snap))
	for _, doc := range snap {
		r, err := rsvpFromDocument(doc)
		if err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, nil
}

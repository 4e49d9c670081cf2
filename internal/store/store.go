package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Collections served by the public API.
const (
	Guestbook = "guestbook"
	RSVP      = "rsvp"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// ErrUnknownCollection is returned for a collection the store was not
// opened with.
var ErrUnknownCollection = errors.New("unknown collection")

// Document is one record in a collection. Data carries the submitted
// fields; ID and CreatedAt are assigned by the store inside the commit,
// so every stored document has a resolved server timestamp.
type Document struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

// Snapshot is the full contents of a collection, newest first.
type Snapshot []Document

// CollectionStore is a document-collection style store: create with a
// server-assigned id and timestamp, delete by id, list ordered by creation
// time descending.
type CollectionStore interface {
	Create(ctx context.Context, collection string, data json.RawMessage) (Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string) (Snapshot, error)
	ReplaceAll(ctx context.Context, collection string, docs []Document) error
	Close() error
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

var collections = []string{Guestbook, RSVP}

// BBoltStore keeps each collection in its own bucket, one JSON document
// per key.
type BBoltStore struct {
	db  *bolt.DB
	now func() time.Time
}

func NewBBoltStore(path string) (*BBoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db at %s: %w", path, err)
	}

	// Reason: buckets must exist before any read/write operations
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range collections {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("creating %s bucket: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BBoltStore{db: db, now: time.Now}, nil
}

// Create stores data as a new document. The id and creation timestamp are
// assigned inside the write transaction, so a stored document can never be
// seen without them.
func (s *BBoltStore) Create(_ context.Context, collection string, data json.RawMessage) (Document, error) {
	doc := Document{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Data:      data,
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}

		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling %s document: %w", collection, err)
		}
		if err := b.Put([]byte(doc.ID), raw); err != nil {
			return fmt.Errorf("writing %s document %s: %w", collection, doc.ID, err)
		}
		return nil
	})
	if err != nil {
		return Document{}, err
	}

	return doc, nil
}

func (s *BBoltStore) Get(_ context.Context, collection, id string) (Document, error) {
	var doc Document

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}

		raw := b.Get([]byte(id))
		if raw == nil {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("unmarshaling %s document %s: %w", collection, id, err)
		}
		return nil
	})
	if err != nil {
		return Document{}, err
	}

	return doc, nil
}

func (s *BBoltStore) Delete(_ context.Context, collection, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}

		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
		}
		if err := b.Delete([]byte(id)); err != nil {
			return fmt.Errorf("deleting %s document %s: %w", collection, id, err)
		}
		return nil
	})
}

// List returns the whole collection ordered by creation time descending.
// Equal timestamps order by id so the result is deterministic.
func (s *BBoltStore) List(_ context.Context, collection string) (Snapshot, error) {
	var docs Snapshot

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}

		return b.ForEach(func(k, v []byte) error {
			var doc Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("unmarshaling %s document %s: %w", collection, string(k), err)
			}
			docs = append(docs, doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})

	return docs, nil
}

// ReplaceAll swaps the entire collection for docs. Used by the admin
// surface for backup restores.
func (s *BBoltStore) ReplaceAll(_ context.Context, collection string, docs []Document) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(collection)) == nil {
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}

		if err := tx.DeleteBucket([]byte(collection)); err != nil {
			return fmt.Errorf("deleting %s bucket: %w", collection, err)
		}
		b, err := tx.CreateBucket([]byte(collection))
		if err != nil {
			return fmt.Errorf("recreating %s bucket: %w", collection, err)
		}

		for _, doc := range docs {
			raw, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshaling %s document %s: %w", collection, doc.ID, err)
			}
			if err := b.Put([]byte(doc.ID), raw); err != nil {
				return fmt.Errorf("writing %s document %s: %w", collection, doc.ID, err)
			}
		}
		return nil
	})
}

// SeedDocuments loads documents that carry their own ids and timestamps,
// skipping ids that already exist.
func (s *BBoltStore) SeedDocuments(collection string, docs []Document) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}

		for _, doc := range docs {
			if b.Get([]byte(doc.ID)) != nil {
				log.WithField("id", doc.ID).Debug("seed: document already exists, skipping")
				continue
			}
			raw, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshaling seed document %s: %w", doc.ID, err)
			}
			if err := b.Put([]byte(doc.ID), raw); err != nil {
				return fmt.Errorf("seeding document %s: %w", doc.ID, err)
			}
			log.WithFields(log.Fields{"collection": collection, "id": doc.ID}).Info("seeded document")
		}
		return nil
	})
}

func (s *BBoltStore) Close() error {
	return s.db.Close()
}

package store

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Hub layers live subscriptions over a CollectionStore. Every write
// redelivers the full ordered collection to every subscriber, so a
// subscriber's view is always "whatever the store holds now", never a
// partially applied diff.
//
// Writes and deliveries happen under one lock, which makes deliveries
// monotonic: a later snapshot is never older than an earlier one.
// Subscriber channels hold a single snapshot and the latest value wins,
// so intermediate states may be skipped but never reordered.
type Hub struct {
	store CollectionStore

	mu     sync.Mutex
	subs   map[string]map[int]chan Snapshot
	nextID int
}

func NewHub(s CollectionStore) *Hub {
	return &Hub{
		store: s,
		subs:  make(map[string]map[int]chan Snapshot),
	}
}

// Subscribe returns the current snapshot, a channel of follow-up snapshots,
// and a release function. The release function must be called when the
// subscriber goes away; a forgotten release is a leak.
func (h *Hub) Subscribe(ctx context.Context, collection string) (Snapshot, <-chan Snapshot, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap, err := h.store.List(ctx, collection)
	if err != nil {
		return nil, nil, nil, err
	}

	ch := make(chan Snapshot, 1)
	id := h.nextID
	h.nextID++

	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]chan Snapshot)
	}
	h.subs[collection][id] = ch

	var once sync.Once
	release := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[collection], id)
			h.mu.Unlock()
		})
	}

	return snap, ch, release, nil
}

// Create writes a new document and redelivers the collection.
func (h *Hub) Create(ctx context.Context, collection string, data json.RawMessage) (Document, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, err := h.store.Create(ctx, collection, data)
	if err != nil {
		return Document{}, err
	}
	h.broadcast(ctx, collection)
	return doc, nil
}

// Delete removes a document and redelivers the collection.
func (h *Hub) Delete(ctx context.Context, collection, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Delete(ctx, collection, id); err != nil {
		return err
	}
	h.broadcast(ctx, collection)
	return nil
}

// ReplaceAll swaps the collection wholesale and redelivers it.
func (h *Hub) ReplaceAll(ctx context.Context, collection string, docs []Document) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.ReplaceAll(ctx, collection, docs); err != nil {
		return err
	}
	h.broadcast(ctx, collection)
	return nil
}

// Get reads a single document.
func (h *Hub) Get(ctx context.Context, collection, id string) (Document, error) {
	return h.store.Get(ctx, collection, id)
}

// List reads the full ordered collection.
func (h *Hub) List(ctx context.Context, collection string) (Snapshot, error) {
	return h.store.List(ctx, collection)
}

// broadcast is called with h.mu held.
func (h *Hub) broadcast(ctx context.Context, collection string) {
	snap, err := h.store.List(ctx, collection)
	if err != nil {
		log.WithError(err).WithField("collection", collection).Error("failed to list collection for broadcast")
		return
	}

	for _, ch := range h.subs[collection] {
		// Latest wins: drop the undelivered snapshot, never block the writer.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

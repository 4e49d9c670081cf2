package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/gpjeong/wedding/internal/store"
)

// StreamGuestbook pushes the full guestbook as an SSE event on connect and
// again after every change, passwords stripped.
func (h *Handler) StreamGuestbook(c *gin.Context) {
	h.streamCollection(c, store.Guestbook, func(snap store.Snapshot) (any, error) {
		entries, err := entriesFromSnapshot(snap)
		return entries, err
	})
}

// StreamRsvp pushes the full RSVP list as an SSE event on connect and again
// after every change.
func (h *Handler) StreamRsvp(c *gin.Context) {
	h.streamCollection(c, store.RSVP, func(snap store.Snapshot) (any, error) {
		responses, err := rsvpsFromSnapshot(snap)
		return responses, err
	})
}

func (h *Handler) streamCollection(c *gin.Context, collection string, view func(store.Snapshot) (any, error)) {
	logger := log.WithField("collection", collection)

	snap, updates, release, err := h.hub.Subscribe(c.Request.Context(), collection)
	if err != nil {
		logger.WithError(err).Error("failed to subscribe")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}
	// The subscription is tied to this request; releasing on every exit path
	// is what keeps the hub from leaking registrations.
	defer release()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	if !h.sendSnapshot(c, logger, view, snap) {
		return
	}

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case next := <-updates:
			if !h.sendSnapshot(c, logger, view, next) {
				return
			}
		}
	}
}

func (h *Handler) sendSnapshot(c *gin.Context, logger *log.Entry, view func(store.Snapshot) (any, error), snap store.Snapshot) bool {
	payload, err := view(snap)
	if err != nil {
		logger.WithError(err).Error("failed to decode snapshot")
		return false
	}

	c.SSEvent("snapshot", payload)
	c.Writer.Flush()
	return true
}

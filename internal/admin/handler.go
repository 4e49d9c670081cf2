package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/gpjeong/wedding/internal/store"
)

// Store defines the store operations the admin surface needs. The Hub
// satisfies it, so replace operations reach live subscribers too.
type Store interface {
	List(ctx context.Context, collection string) (store.Snapshot, error)
	ReplaceAll(ctx context.Context, collection string, docs []store.Document) error
}

type Handler struct {
	store Store
}

func NewHandler(s Store) *Handler {
	return &Handler{store: s}
}

type Error struct {
	Message string `json:"message"`
}

// Summary is a roll-up of the RSVP collection for the couple.
type Summary struct {
	Attending     int `json:"attending"`
	Undecided     int `json:"undecided"`
	Declined      int `json:"declined"`
	MealCount     int `json:"mealCount"`
	ExpectedSeats int `json:"expectedSeats"`
}

func RegisterHandlers(r *gin.Engine, h *Handler) {
	r.GET("/admin/guestbook", h.dump(store.Guestbook))
	r.PUT("/admin/guestbook", h.replace(store.Guestbook))
	r.GET("/admin/rsvp", h.dump(store.RSVP))
	r.PUT("/admin/rsvp", h.replace(store.RSVP))
	r.GET("/admin/rsvp/summary", h.GetRsvpSummary)
}

// dump returns the raw collection, stored passwords included. This surface
// is bound to the private admin port.
func (h *Handler) dump(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := h.store.List(c.Request.Context(), collection)
		if err != nil {
			log.WithError(err).WithField("collection", collection).Error("failed to list collection")
			c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

func (h *Handler) replace(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var docs []store.Document
		if err := c.ShouldBindJSON(&docs); err != nil {
			c.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
			return
		}

		if err := h.store.ReplaceAll(c.Request.Context(), collection, docs); err != nil {
			log.WithError(err).WithField("collection", collection).Error("failed to replace collection")
			c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
			return
		}

		log.WithFields(log.Fields{"collection": collection, "count": len(docs)}).Info("collection replaced")
		c.JSON(http.StatusOK, docs)
	}
}

func (h *Handler) GetRsvpSummary(c *gin.Context) {
	docs, err := h.store.List(c.Request.Context(), store.RSVP)
	if err != nil {
		log.WithError(err).Error("failed to list rsvp")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	var sum Summary
	for _, doc := range docs {
		var fields struct {
			Attendance string `json:"attendance"`
			Meal       bool   `json:"meal"`
			Guests     int    `json:"guests"`
		}
		if err := json.Unmarshal(doc.Data, &fields); err != nil {
			log.WithError(err).WithField("id", doc.ID).Error("failed to decode rsvp")
			c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
			return
		}

		switch fields.Attendance {
		case "attending":
			sum.Attending++
			sum.ExpectedSeats += fields.Guests
			if fields.Meal {
				sum.MealCount += fields.Guests
			}
		case "undecided":
			sum.Undecided++
		case "declined":
			sum.Declined++
		}
	}

	c.JSON(http.StatusOK, sum)
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/gpjeong/wedding/internal/config"
	"github.com/gpjeong/wedding/internal/countdown"
	"github.com/gpjeong/wedding/internal/gate"
	"github.com/gpjeong/wedding/internal/store"
)

// Handler serves the public invitation surface.
type Handler struct {
	hub     *store.Hub
	wedding *config.Wedding
	intro   *gate.Gate
	now     func() time.Time
}

func NewHandler(hub *store.Hub, wedding *config.Wedding) *Handler {
	return &Handler{
		hub:     hub,
		wedding: wedding,
		intro:   gate.New(),
		now:     time.Now,
	}
}

// RegisterHandlers wires the routes. Feature toggles decide which sections
// exist at all: a disabled feature has no route, not an empty response.
func RegisterHandlers(r *gin.Engine, h *Handler) {
	r.GET("/health", h.GetHealth)
	r.GET("/invitation", h.GetInvitation)
	r.POST("/intro/open", h.OpenIntro)

	if h.wedding.Features.Countdown {
		r.GET("/countdown", h.GetCountdown)
	}
	if h.wedding.Features.Guestbook {
		r.GET("/guestbook", h.ListGuestbook)
		r.POST("/guestbook", h.CreateGuestbookEntry)
		r.DELETE("/guestbook/:id", h.DeleteGuestbookEntry)
		r.GET("/guestbook/live", h.StreamGuestbook)
	}
	if h.wedding.Features.RSVP {
		r.POST("/rsvp", h.CreateRsvp)
		r.GET("/rsvp/live", h.StreamRsvp)
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) GetCountdown(c *gin.Context) {
	c.JSON(http.StatusOK, countdown.Until(h.wedding.When(), h.now()))
}

func (h *Handler) OpenIntro(c *gin.Context) {
	if h.intro.Open() {
		log.Info("intro opened")
	}
	c.JSON(http.StatusOK, gin.H{"opened": true})
}

func (h *Handler) ListGuestbook(c *gin.Context) {
	snap, err := h.hub.List(c.Request.Context(), store.Guestbook)
	if err != nil {
		log.WithError(err).Error("failed to list guestbook")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	entries, err := entriesFromSnapshot(snap)
	if err != nil {
		log.WithError(err).Error("failed to decode guestbook")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *Handler) CreateGuestbookEntry(c *gin.Context) {
	var body GuestbookCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
		return
	}

	fields := guestbookFields{
		Name:     strings.TrimSpace(body.Name),
		Password: strings.TrimSpace(body.Password),
		Message:  strings.TrimSpace(body.Message),
	}
	if fields.Name == "" || fields.Password == "" || fields.Message == "" {
		c.JSON(http.StatusBadRequest, Error{Message: "name, password and message are required"})
		return
	}

	data, err := json.Marshal(fields)
	if err != nil {
		log.WithError(err).Error("failed to encode guestbook entry")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	doc, err := h.hub.Create(c.Request.Context(), store.Guestbook, data)
	if err != nil {
		log.WithError(err).Error("failed to create guestbook entry")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	log.WithField("id", doc.ID).Info("guestbook entry created")
	c.JSON(http.StatusCreated, GuestbookEntry{
		ID:        doc.ID,
		Name:      fields.Name,
		Message:   fields.Message,
		CreatedAt: doc.CreatedAt,
	})
}

func (h *Handler) DeleteGuestbookEntry(c *gin.Context) {
	id := c.Param("id")
	logger := log.WithField("id", id)

	var body GuestbookDelete
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
		return
	}

	doc, err := h.hub.Get(c.Request.Context(), store.Guestbook, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, Error{Message: "entry not found"})
		return
	}
	if err != nil {
		logger.WithError(err).Error("failed to load guestbook entry")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	var fields guestbookFields
	if err := json.Unmarshal(doc.Data, &fields); err != nil {
		logger.WithError(err).Error("failed to decode guestbook entry")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	// Exact plain-text comparison, as the page has always worked. Refused
	// before any store mutation.
	if body.Password != fields.Password {
		c.JSON(http.StatusForbidden, Error{Message: "password mismatch"})
		return
	}

	if err := h.hub.Delete(c.Request.Context(), store.Guestbook, id); err != nil {
		logger.WithError(err).Error("failed to delete guestbook entry")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	logger.Info("guestbook entry deleted")
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateRsvp(c *gin.Context) {
	var body RsvpCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Error{Message: "invalid request body"})
		return
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, Error{Message: "name is required"})
		return
	}
	switch body.Attendance {
	case AttendanceAttending, AttendanceUndecided, AttendanceDeclined:
	default:
		c.JSON(http.StatusBadRequest, Error{Message: "attendance must be attending, undecided or declined"})
		return
	}
	if body.Meal == nil {
		c.JSON(http.StatusBadRequest, Error{Message: "meal is required"})
		return
	}
	if body.Guests < MinGuests || body.Guests > MaxGuests {
		c.JSON(http.StatusBadRequest, Error{Message: "guests must be between 1 and 5"})
		return
	}

	fields := rsvpFields{
		Name:       name,
		Attendance: body.Attendance,
		Meal:       *body.Meal,
		Guests:     body.Guests,
	}
	data, err := json.Marshal(fields)
	if err != nil {
		log.WithError(err).Error("failed to encode rsvp")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	doc, err := h.hub.Create(c.Request.Context(), store.RSVP, data)
	if err != nil {
		log.WithError(err).Error("failed to create rsvp")
		c.JSON(http.StatusInternalServerError, Error{Message: "internal error"})
		return
	}

	log.WithFields(log.Fields{"id": doc.ID, "attendance": fields.Attendance}).Info("rsvp recorded")
	c.JSON(http.StatusCreated, RsvpResponse{
		ID:         doc.ID,
		Name:       fields.Name,
		Attendance: fields.Attendance,
		Meal:       fields.Meal,
		Guests:     fields.Guests,
		CreatedAt:  doc.CreatedAt,
	})
}

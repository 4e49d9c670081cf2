package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gpjeong/wedding/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *store.Hub) {
	t.Helper()

	s, err := store.NewBBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	hub := store.NewHub(s)
	h := NewHandler(hub)
	r := gin.New()
	RegisterHandlers(r, h)
	return r, hub
}

func createRsvp(t *testing.T, hub *store.Hub, attendance string, meal bool, guests int) {
	t.Helper()
	data, _ := json.Marshal(map[string]any{
		"name": "guest", "attendance": attendance, "meal": meal, "guests": guests,
	})
	if _, err := hub.Create(context.Background(), store.RSVP, data); err != nil {
		t.Fatalf("failed to create rsvp: %v", err)
	}
}

func TestAdmin_DumpIncludesStoredFields(t *testing.T) {
	r, hub := setupTestRouter(t)

	data, _ := json.Marshal(map[string]string{"name": "a", "password": "secret", "message": "hi"})
	if _, err := hub.Create(context.Background(), store.Guestbook, data); err != nil {
		t.Fatalf("failed to create entry: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/guestbook", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("secret")) {
		t.Fatal("expected admin dump to include stored password")
	}
}

func TestAdmin_ReplaceAll(t *testing.T) {
	r, hub := setupTestRouter(t)

	docs := []store.Document{
		{ID: "g-1", CreatedAt: time.Now().UTC(), Data: json.RawMessage(`{"name":"a","password":"p","message":"m"}`)},
	}
	body, _ := json.Marshal(docs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/guestbook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	snap, err := hub.List(context.Background(), store.Guestbook)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap) != 1 || snap[0].ID != "g-1" {
		t.Fatalf("expected replaced contents, got %v", snap)
	}
}

func TestAdmin_ReplaceAll_InvalidBody(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/rsvp", bytes.NewReader([]byte(`{"not":"a list"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAdmin_RsvpSummary(t *testing.T) {
	r, hub := setupTestRouter(t)

	createRsvp(t, hub, "attending", true, 2)
	createRsvp(t, hub, "attending", false, 3)
	createRsvp(t, hub, "undecided", true, 1)
	createRsvp(t, hub, "declined", false, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/rsvp/summary", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var sum Summary
	if err := json.NewDecoder(w.Body).Decode(&sum); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if sum.Attending != 2 || sum.Undecided != 1 || sum.Declined != 1 {
		t.Fatalf("unexpected attendance counts: %+v", sum)
	}
	if sum.ExpectedSeats != 5 {
		t.Fatalf("expected 5 seats, got %d", sum.ExpectedSeats)
	}
	if sum.MealCount != 2 {
		t.Fatalf("expected meal count 2, got %d", sum.MealCount)
	}
}

func TestAdmin_SummaryEmpty(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/rsvp/summary", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var sum Summary
	if err := json.NewDecoder(w.Body).Decode(&sum); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if sum != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

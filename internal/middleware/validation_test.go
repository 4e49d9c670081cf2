package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gpjeong/wedding/internal/api"
)

func setupValidationRouter(t *testing.T) *gin.Engine {
	t.Helper()

	spec, err := api.GetSwagger()
	if err != nil {
		t.Fatalf("failed to load embedded openapi spec: %v", err)
	}

	mw, err := NewOpenAPIValidator(spec)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

	r := gin.New()
	r.Use(mw)
	r.GET("/health", ok)
	r.POST("/rsvp", ok)
	r.POST("/guestbook", ok)
	r.DELETE("/guestbook/:id", ok)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestValidation_ValidRsvp(t *testing.T) {
	r := setupValidationRouter(t)

	w := postJSON(t, r, "/rsvp", map[string]any{
		"name": "Kim", "attendance": "attending", "meal": true, "guests": 2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestValidation_RsvpBadAttendance(t *testing.T) {
	r := setupValidationRouter(t)

	w := postJSON(t, r, "/rsvp", map[string]any{
		"name": "Kim", "attendance": "maybe", "meal": true, "guests": 2,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad attendance, got %d: %s", w.Code, w.Body.String())
	}
}

func TestValidation_RsvpGuestsOutOfRange(t *testing.T) {
	r := setupValidationRouter(t)

	for _, guests := range []int{0, 6} {
		w := postJSON(t, r, "/rsvp", map[string]any{
			"name": "Kim", "attendance": "attending", "meal": true, "guests": guests,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("guests=%d: expected 400, got %d: %s", guests, w.Code, w.Body.String())
		}
	}
}

func TestValidation_RsvpMissingMeal(t *testing.T) {
	r := setupValidationRouter(t)

	w := postJSON(t, r, "/rsvp", map[string]any{
		"name": "Kim", "attendance": "attending", "guests": 2,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing meal, got %d: %s", w.Code, w.Body.String())
	}
}

func TestValidation_GuestbookMissingMessage(t *testing.T) {
	r := setupValidationRouter(t)

	w := postJSON(t, r, "/guestbook", map[string]any{
		"name": "김민수", "password": "abc",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing message, got %d: %s", w.Code, w.Body.String())
	}
}

func TestValidation_GuestbookDeleteRequiresPassword(t *testing.T) {
	r := setupValidationRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/guestbook/some-id", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d: %s", w.Code, w.Body.String())
	}
}

func TestValidation_UnknownRoute(t *testing.T) {
	r := setupValidationRouter(t)

	w := postJSON(t, r, "/unknown", map[string]any{})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d: %s", w.Code, w.Body.String())
	}
}

func TestValidation_HealthPassesThrough(t *testing.T) {
	r := setupValidationRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for health, got %d: %s", w.Code, w.Body.String())
	}
}

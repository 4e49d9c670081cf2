package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// readEvent scans the SSE stream until one data line arrives.
func readEvent(t *testing.T, scanner *bufio.Scanner) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "data:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
	t.Fatal("no SSE data line received")
	return ""
}

func TestStreamGuestbook_InitialAndUpdate(t *testing.T) {
	r, _ := setupTestRouter(t, "")
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/guestbook/live", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)

	// First event: the current (empty) snapshot.
	first := readEvent(t, scanner)
	var entries []GuestbookEntry
	if err := json.Unmarshal([]byte(first), &entries); err != nil {
		t.Fatalf("failed to decode initial snapshot %q: %v", first, err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty initial snapshot, got %d entries", len(entries))
	}

	// A write redelivers the whole list.
	w := doJSON(t, r, http.MethodPost, "/guestbook", GuestbookCreate{Name: "김민수", Password: "p", Message: "축하합니다"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	second := readEvent(t, scanner)
	if err := json.Unmarshal([]byte(second), &entries); err != nil {
		t.Fatalf("failed to decode snapshot %q: %v", second, err)
	}
	if len(entries) != 1 || entries[0].Name != "김민수" {
		t.Fatalf("expected redelivered snapshot with the new entry, got %q", second)
	}
	if strings.Contains(second, "password") {
		t.Fatal("stream must not leak passwords")
	}
}

func TestStreamRsvp_ReceivesSubmissions(t *testing.T) {
	r, _ := setupTestRouter(t, "")
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/rsvp/live", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	_ = readEvent(t, scanner) // initial empty snapshot

	meal := false
	w := doJSON(t, r, http.MethodPost, "/rsvp", RsvpCreate{Name: "Kim", Attendance: AttendanceDeclined, Meal: &meal, Guests: 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	event := readEvent(t, scanner)
	var responses []RsvpResponse
	if err := json.Unmarshal([]byte(event), &responses); err != nil {
		t.Fatalf("failed to decode snapshot %q: %v", event, err)
	}
	if len(responses) != 1 || responses[0].Attendance != AttendanceDeclined {
		t.Fatalf("expected the declined rsvp in the snapshot, got %q", event)
	}
}

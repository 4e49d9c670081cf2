package seed

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/gpjeong/wedding/internal/store"
)

type SeedData struct {
	Guestbook []store.Document `json:"guestbook"`
	RSVP      []store.Document `json:"rsvp"`
}

// LoadFromFile reads seed data from a JSON file and populates the store,
// e.g. when restoring a backup into a fresh deployment. Documents keep
// their original ids and timestamps; existing ids are skipped.
// Returns nil if path is empty (seeding disabled).
func LoadFromFile(path string, s *store.BBoltStore) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var sd SeedData
	if err := json.Unmarshal(data, &sd); err != nil {
		return fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"guestbook": len(sd.Guestbook),
		"rsvp":      len(sd.RSVP),
	}).Info("seeding from file")

	if err := s.SeedDocuments(store.Guestbook, sd.Guestbook); err != nil {
		return err
	}
	return s.SeedDocuments(store.RSVP, sd.RSVP)
}

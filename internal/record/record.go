package record

import (
	"crypto/rand"
	"encoding/hex"
)

// Record is anything a Collection can persist. RecordID must be stable and
// unique within one collection.
type Record interface {
	RecordID() string
}

// Store is a shop the user can walk to.
type Store struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Distance      string `json:"distance"`      // display label, e.g. "550 m"
	EstimatedTime int    `json:"estimatedTime"` // walking time in minutes
}

func (s Store) RecordID() string { return s.ID }

// Contact is a person the user may want to call.
type Contact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

func (c Contact) RecordID() string { return c.ID }

// Plan is a free-text outing suggestion.
type Plan struct {
	ID   string `json:"id"`
	Plan string `json:"plan"`
}

func (p Plan) RecordID() string { return p.ID }

// Medicine is one scheduled medication. The name doubles as the ID, so saving
// a medicine with an existing name updates it in place.
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	TimeOfDay string `json:"timeOfDay"` // 24h "HH:MM"
	Frequency string `json:"frequency"`
	Notes     string `json:"notes,omitempty"`
}

func (m Medicine) RecordID() string { return m.Name }

// NewID creates a short random hex ID for a new record.
func NewID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

package remind

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReminderType distinguishes one-shot vs daily repeating reminders.
type ReminderType string

const (
	TypeOnce  ReminderType = "once"
	TypeDaily ReminderType = "daily"
)

// Reminder is a single scheduled notification.
type Reminder struct {
	ID    string       `json:"id"`
	Type  ReminderType `json:"type"`
	Title string       `json:"title"`
	Body  string       `json:"body"`

	// TypeOnce: fire at this absolute time.
	At *time.Time `json:"at,omitempty"`

	// TypeDaily: fire every day at this local time.
	Hour   int `json:"hour,omitempty"`
	Minute int `json:"minute,omitempty"`

	// Source tags who created the reminder, e.g. "chat" or
	// "medicine:Metformin", so it can be replaced when its origin changes.
	Source string `json:"source,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	Enabled   bool      `json:"enabled"`
}

// Store persists reminders as a single JSON file.
type Store struct {
	path string
}

// NewStore creates a reminder store at dir/reminders.json.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "reminders.json")}
}

// Load reads all reminders. Returns an empty slice if the file does not exist
// yet; a corrupted file also reads as empty rather than failing startup.
func (st *Store) Load() ([]*Reminder, error) {
	data, err := os.ReadFile(st.path)
	if os.IsNotExist(err) {
		return []*Reminder{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reminders: %w", err)
	}
	var reminders []*Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		return []*Reminder{}, nil
	}
	return reminders, nil
}

// Save atomically writes the full reminder list.
func (st *Store) Save(reminders []*Reminder) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := json.MarshalIndent(reminders, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reminders: %w", err)
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Add generates an ID for the reminder and appends it.
func (st *Store) Add(r *Reminder) error {
	if r.ID == "" {
		r.ID = generateReminderID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	reminders, err := st.Load()
	if err != nil {
		return err
	}
	reminders = append(reminders, r)
	return st.Save(reminders)
}

// Remove deletes the reminder with the given ID. Unknown IDs are a no-op.
func (st *Store) Remove(id string) error {
	reminders, err := st.Load()
	if err != nil {
		return err
	}
	filtered := reminders[:0]
	for _, r := range reminders {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	return st.Save(filtered)
}

// RemoveBySource deletes every reminder whose Source has the given prefix.
func (st *Store) RemoveBySource(prefix string) error {
	reminders, err := st.Load()
	if err != nil {
		return err
	}
	filtered := reminders[:0]
	for _, r := range reminders {
		if !strings.HasPrefix(r.Source, prefix) {
			filtered = append(filtered, r)
		}
	}
	return st.Save(filtered)
}

// generateReminderID creates a short random hex ID.
func generateReminderID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

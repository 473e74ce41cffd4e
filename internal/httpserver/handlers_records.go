package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"elmora/internal/record"
	"elmora/internal/remind"
)

// resource wires one record collection to its pair of routes:
// /{name} (GET list, POST upsert) and /{name}/{id} (GET, DELETE).
type resource[T record.Record] struct {
	name     string
	col      *record.Collection[T]
	validate func(*T) error // checks required fields, assigns missing IDs
	onChange func()         // nil when nothing depends on edits
}

// registerResource mounts a collection on the server's mux.
func registerResource[T record.Record](s *HTTPServer, name string, col *record.Collection[T], validate func(*T) error, onChange func()) {
	rs := resource[T]{name: name, col: col, validate: validate, onChange: onChange}
	s.mux.HandleFunc("/"+name, loggingMiddleware(s.authMiddleware(jsonContentTypeMiddleware(rs.handleCollection))))
	s.mux.HandleFunc("/"+name+"/", loggingMiddleware(s.authMiddleware(rs.handleItem)))
}

// handleCollection handles GET /{name} and POST /{name}.
func (rs resource[T]) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records := rs.col.List()
		if records == nil {
			records = []T{}
		}
		respondJSON(w, http.StatusOK, records)

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var rec T
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
			return
		}
		if err := rs.validate(&rec); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := rs.col.Save(rec); err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save %s: %v", rs.name, err))
			return
		}
		if rs.onChange != nil {
			rs.onChange()
		}
		respondJSON(w, http.StatusCreated, rec)

	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleItem handles GET /{name}/{id} and DELETE /{name}/{id}.
func (rs resource[T]) handleItem(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[1] == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid path format (expected /%s/{id})", rs.name))
		return
	}
	id := parts[1]

	switch r.Method {
	case http.MethodGet:
		rec, ok := rs.col.Get(id)
		if !ok {
			respondError(w, http.StatusNotFound, fmt.Sprintf("%s %q not found", strings.TrimSuffix(rs.name, "s"), id))
			return
		}
		respondJSON(w, http.StatusOK, rec)

	case http.MethodDelete:
		if _, ok := rs.col.Get(id); !ok {
			respondError(w, http.StatusNotFound, fmt.Sprintf("%s %q not found", strings.TrimSuffix(rs.name, "s"), id))
			return
		}
		if err := rs.col.Delete(id); err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete: %v", err))
			return
		}
		if rs.onChange != nil {
			rs.onChange()
		}
		respondJSON(w, http.StatusOK, map[string]string{"deleted": id})

	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func validateStore(s *record.Store) error {
	if s.Name == "" {
		return fmt.Errorf("field 'name' is required")
	}
	if s.EstimatedTime < 0 {
		return fmt.Errorf("field 'estimatedTime' must not be negative")
	}
	if s.ID == "" {
		s.ID = record.NewID()
	}
	return nil
}

func validateContact(c *record.Contact) error {
	if c.Name == "" {
		return fmt.Errorf("field 'name' is required")
	}
	if c.Number == "" {
		return fmt.Errorf("field 'number' is required")
	}
	if c.ID == "" {
		c.ID = record.NewID()
	}
	return nil
}

func validatePlan(p *record.Plan) error {
	if p.Plan == "" {
		return fmt.Errorf("field 'plan' is required")
	}
	if p.ID == "" {
		p.ID = record.NewID()
	}
	return nil
}

func validateMedicine(m *record.Medicine) error {
	if m.Name == "" {
		return fmt.Errorf("field 'name' is required")
	}
	if m.TimeOfDay == "" {
		return fmt.Errorf("field 'timeOfDay' is required")
	}
	return nil
}

// handleListReminders handles GET /reminders.
func (s *HTTPServer) handleListReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.reminders == nil {
		respondJSON(w, http.StatusOK, []*remind.Reminder{})
		return
	}
	reminders, err := s.reminders.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list reminders: %v", err))
		return
	}
	if reminders == nil {
		reminders = []*remind.Reminder{}
	}
	respondJSON(w, http.StatusOK, reminders)
}

// handleDeleteReminder handles DELETE /reminders/{id}.
func (s *HTTPServer) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.reminders == nil {
		respondError(w, http.StatusServiceUnavailable, "reminder scheduler not running")
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[1] == "" {
		respondError(w, http.StatusBadRequest, "invalid path format (expected /reminders/{id})")
		return
	}

	if err := s.reminders.Cancel(parts[1]); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to cancel reminder: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": parts[1]})
}

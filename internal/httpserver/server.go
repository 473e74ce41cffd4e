// Package httpserver exposes the assistant over a local HTTP API: the
// conversation itself, the record collections behind it, and the reminder
// queue. One server owns one dialogue engine; every chat request is
// serialized through a single mutex because the engine does no locking of
// its own.
package httpserver

import (
	"context"
	"log"
	"net/http"
	"sync"

	"elmora/internal/chat"
	"elmora/internal/record"
	"elmora/internal/remind"
)

// HTTPServer represents the HTTP API server
type HTTPServer struct {
	mux     *http.ServeMux
	tokens  []string
	version string

	engineMu sync.Mutex
	engine   *chat.Engine

	records   *record.Stores
	reminders *remind.Scheduler

	wsMu      sync.Mutex
	wsClients map[*wsClient]bool

	srv *http.Server
}

// NewHTTPServer creates a new HTTP server instance. reminders may be nil;
// medicine edits then skip the reminder re-sync.
func NewHTTPServer(tokens []string, version string, engine *chat.Engine, records *record.Stores, reminders *remind.Scheduler) *HTTPServer {
	s := &HTTPServer{
		mux:       http.NewServeMux(),
		tokens:    tokens,
		version:   version,
		engine:    engine,
		records:   records,
		reminders: reminders,
		wsClients: make(map[*wsClient]bool),
	}

	s.registerRoutes()

	return s
}

// registerRoutes sets up all HTTP routes with middleware
func (s *HTTPServer) registerRoutes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/health", loggingMiddleware(s.handleHealth))

	// Conversation
	s.mux.HandleFunc("/chat", loggingMiddleware(s.authMiddleware(jsonContentTypeMiddleware(s.handleChat))))
	s.mux.HandleFunc("/chat/resolve", loggingMiddleware(s.authMiddleware(jsonContentTypeMiddleware(s.handleChatResolve))))
	s.mux.HandleFunc("/chat/messages", loggingMiddleware(s.authMiddleware(s.handleChatMessages)))
	s.mux.HandleFunc("/chat/options", loggingMiddleware(s.authMiddleware(s.handleChatOptions)))
	s.mux.HandleFunc("/chat/ws", loggingMiddleware(s.authMiddleware(s.handleChatWS)))
	s.mux.HandleFunc("/suggestion", loggingMiddleware(s.authMiddleware(s.handleSuggestion)))

	// Record collections
	registerResource(s, "stores", s.records.Stores, validateStore, nil)
	registerResource(s, "contacts", s.records.Contacts, validateContact, nil)
	registerResource(s, "plans", s.records.Plans, validatePlan, nil)
	registerResource(s, "medicines", s.records.Medicines, validateMedicine, s.syncMedicineReminders)

	// Reminder queue
	s.mux.HandleFunc("/reminders", loggingMiddleware(s.authMiddleware(s.handleListReminders)))
	s.mux.HandleFunc("/reminders/", loggingMiddleware(s.authMiddleware(s.handleDeleteReminder)))
}

// syncMedicineReminders rebuilds the daily medicine reminders after any
// medicine edit.
func (s *HTTPServer) syncMedicineReminders() {
	if s.reminders == nil {
		return
	}
	if err := s.reminders.SyncMedicines(s.records.Medicines.List()); err != nil {
		log.Printf("[HTTP] medicine reminder sync failed: %v", err)
	}
}

// ListenAndServe starts the HTTP server on the given address
func (s *HTTPServer) ListenAndServe(addr string) error {
	log.Printf("[HTTP] Starting server on %s", addr)
	log.Printf("[HTTP] Registered %d valid tokens", len(s.tokens))
	s.srv = &http.Server{Addr: addr, Handler: s.mux}
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops a running server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"elmora/internal/chat"
)

// handleHealth handles GET /health
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.version,
	})
}

// handleChat handles POST /chat: one user utterance in, the appended
// messages out.
func (s *HTTPServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "field 'text' is required")
		return
	}

	s.engineMu.Lock()
	appended := s.engine.Advance(req.Text)
	pending := s.engine.Pending()
	s.engineMu.Unlock()

	s.broadcast(appended, string(pending))

	respondJSON(w, http.StatusOK, ChatResponse{
		Messages: appended,
		Pending:  string(pending),
		Options:  s.optionsFor(pending),
	})
}

// handleChatResolve handles POST /chat/resolve: the structured answer to the
// live pending action (a tapped store, a yes/no, a contact).
func (s *HTTPServer) handleChatResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	if req.Action == "" {
		respondError(w, http.StatusBadRequest, "field 'action' is required")
		return
	}

	s.engineMu.Lock()

	pending := s.engine.Pending()
	if string(pending) != req.Action {
		s.engineMu.Unlock()
		respondError(w, http.StatusConflict, fmt.Sprintf("no %q choice is pending", req.Action))
		return
	}

	var appended []chat.Message
	switch pending {
	case chat.AwaitingShopChoice:
		store, ok := s.records.Stores.Get(req.StoreID)
		if !ok {
			s.engineMu.Unlock()
			respondError(w, http.StatusNotFound, "store not found")
			return
		}
		appended = s.engine.ResolveShopSelection(store)

	case chat.AwaitingHomeCheck:
		appended = s.engine.ResolvePantryCheck(req.Answer)

	case chat.AwaitingOutingChoice:
		appended = s.engine.ResolveOutingWanted(req.Answer)

	case chat.AwaitingBedtimeChoice:
		appended = s.engine.ResolveSleep(req.Answer, req.UsualTime)

	case chat.AwaitingReminderChoice:
		appended = s.engine.ResolveReminderChoice(req.Answer)

	case chat.AwaitingDialChoice:
		contact, ok := s.records.Contacts.Get(req.ContactID)
		if !ok {
			s.engineMu.Unlock()
			respondError(w, http.StatusNotFound, "contact not found")
			return
		}
		appended = s.engine.ResolveDialSelection(contact)

	default:
		s.engineMu.Unlock()
		// Acks and plan picks resolve through a spoken "yes"/"thanks", not here.
		respondError(w, http.StatusBadRequest, fmt.Sprintf("action %q resolves through /chat", req.Action))
		return
	}

	after := s.engine.Pending()
	s.engineMu.Unlock()

	s.broadcast(appended, string(after))

	respondJSON(w, http.StatusOK, ChatResponse{
		Messages: appended,
		Pending:  string(after),
		Options:  s.optionsFor(after),
	})
}

// handleChatMessages handles GET /chat/messages: the full transcript.
func (s *HTTPServer) handleChatMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.engineMu.Lock()
	messages := s.engine.Messages()
	pending := s.engine.Pending()
	s.engineMu.Unlock()

	if messages == nil {
		messages = []chat.Message{}
	}
	respondJSON(w, http.StatusOK, TranscriptResponse{
		Messages: messages,
		Pending:  string(pending),
	})
}

// handleChatOptions handles GET /chat/options: what the client should offer
// for the live pending action.
func (s *HTTPServer) handleChatOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.engineMu.Lock()
	pending := s.engine.Pending()
	s.engineMu.Unlock()

	opts := s.optionsFor(pending)
	if opts == nil {
		opts = &OptionsResponse{Action: string(pending)}
	}
	respondJSON(w, http.StatusOK, opts)
}

// handleSuggestion handles GET /suggestion: a random input hint.
func (s *HTTPServer) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	suggestions := chat.LoadSuggestions(chat.SuggestionsPath(s.records.Dir()))
	respondJSON(w, http.StatusOK, SuggestionResponse{Suggestion: chat.Suggestion(suggestions)})
}

// optionsFor maps a pending action to the choice data the client needs.
// Returns nil when the action needs no pick.
func (s *HTTPServer) optionsFor(pending chat.PendingAction) *OptionsResponse {
	opts := &OptionsResponse{Action: string(pending)}
	switch pending {
	case chat.AwaitingShopChoice:
		opts.Stores = s.records.Stores.List()
	case chat.AwaitingDialChoice:
		opts.Contacts = s.records.Contacts.List()
	case chat.AwaitingOutingConfirmation:
		opts.Plans = s.records.Plans.List()
	case chat.AwaitingMedicineAck:
		opts.Medicines = s.records.Medicines.List()
	case chat.AwaitingHomeCheck, chat.AwaitingOutingChoice, chat.AwaitingReminderChoice:
		opts.YesNo = true
	case chat.AwaitingBedtimeChoice:
		opts.YesNo = true
		opts.UsualTime = true
	default:
		return nil
	}
	return opts
}

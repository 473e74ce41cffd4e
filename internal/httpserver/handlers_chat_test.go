package httpserver

import (
	"net/http"
	"os"
	"strings"
	"testing"

	"elmora/internal/chat"
	"elmora/internal/record"
)

func TestChatGreeting(t *testing.T) {
	s := newTestServer(t)

	var resp ChatResponse
	w := doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "hello"}, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	if len(resp.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(resp.Messages))
	}
	if resp.Messages[1].Content != "Hey there! How can I assist you today?" {
		t.Errorf("unexpected reply: %q", resp.Messages[1].Content)
	}
	if resp.Pending != "" {
		t.Errorf("Expected no pending action, got %q", resp.Pending)
	}
	if resp.Options != nil {
		t.Errorf("Expected no options, got %+v", resp.Options)
	}
}

func TestChatEmptyText(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "   "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestChatShoppingFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	store := record.Store{ID: "st1", Name: "Kirana Store", Distance: "550 m", EstimatedTime: 5}
	if err := s.records.Stores.Save(store); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var resp ChatResponse
	w := doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "I want to buy some groceries"}, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if resp.Pending != "shopChoice" {
		t.Fatalf("Expected pending shopChoice, got %q", resp.Pending)
	}
	if resp.Options == nil || len(resp.Options.Stores) != 1 || resp.Options.Stores[0].ID != "st1" {
		t.Fatalf("Expected the seeded store as an option, got %+v", resp.Options)
	}

	// Pick the store.
	var resolved ChatResponse
	w = doJSON(t, s, http.MethodPost, "/chat/resolve", ResolveRequest{Action: "shopChoice", StoreID: "st1"}, &resolved)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	if len(resolved.Messages) != 1 || !strings.Contains(resolved.Messages[0].Content, "it will take 5 mins") {
		t.Fatalf("unexpected resolve reply: %+v", resolved.Messages)
	}
	if resolved.Pending != "reminderChoice" {
		t.Fatalf("Expected pending reminderChoice, got %q", resolved.Pending)
	}
	if resolved.Options == nil || !resolved.Options.YesNo {
		t.Fatalf("Expected yes/no options, got %+v", resolved.Options)
	}

	// Accept the reminder; it lands in the reminder queue.
	w = doJSON(t, s, http.MethodPost, "/chat/resolve", ResolveRequest{Action: "reminderChoice", Answer: true}, &resolved)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if resolved.Pending != "" {
		t.Errorf("Expected flow to end, pending %q", resolved.Pending)
	}

	reminders, err := s.reminders.List()
	if err != nil {
		t.Fatalf("List reminders: %v", err)
	}
	if len(reminders) != 1 || reminders[0].Title != "Hey there!" {
		t.Fatalf("Expected the reach-home reminder to be queued, got %+v", reminders)
	}
}

func TestChatResolveWrongAction(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/chat/resolve", ResolveRequest{Action: "shopChoice", StoreID: "x"}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

func TestChatResolveUnknownStore(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "I want to buy bread"}, nil)

	w := doJSON(t, s, http.MethodPost, "/chat/resolve", ResolveRequest{Action: "shopChoice", StoreID: "missing"}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	// The choice stays live for a retry.
	var resp OptionsResponse
	doJSON(t, s, http.MethodGet, "/chat/options", nil, &resp)
	if resp.Action != "shopChoice" {
		t.Errorf("Expected shopChoice to remain pending, got %q", resp.Action)
	}
}

func TestChatMessagesTranscript(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "hello"}, nil)
	doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "I feel sleepy"}, nil)

	var resp TranscriptResponse
	w := doJSON(t, s, http.MethodGet, "/chat/messages", nil, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if len(resp.Messages) != 4 {
		t.Fatalf("Expected 4 transcript messages, got %d", len(resp.Messages))
	}
	if resp.Pending != "bedtimeChoice" {
		t.Errorf("Expected pending bedtimeChoice, got %q", resp.Pending)
	}
}

func TestChatOptionsBedtime(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "I feel sleepy"}, nil)

	var resp OptionsResponse
	doJSON(t, s, http.MethodGet, "/chat/options", nil, &resp)
	if !resp.YesNo || !resp.UsualTime {
		t.Errorf("Expected yes/no plus usual-time options, got %+v", resp)
	}
}

func TestChatDialResolve(t *testing.T) {
	s := newTestServer(t)
	if err := s.records.Contacts.Save(record.Contact{ID: "c1", Name: "Asha", Number: "555-0101"}); err != nil {
		t.Fatalf("seed contact: %v", err)
	}

	var resp ChatResponse
	doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "can you call my daughter"}, &resp)
	if resp.Pending != "dialChoice" {
		t.Fatalf("Expected pending dialChoice, got %q", resp.Pending)
	}
	if resp.Options == nil || len(resp.Options.Contacts) != 1 {
		t.Fatalf("Expected contact options, got %+v", resp.Options)
	}

	var resolved ChatResponse
	w := doJSON(t, s, http.MethodPost, "/chat/resolve", ResolveRequest{Action: "dialChoice", ContactID: "c1"}, &resolved)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	// Dialing adds nothing to the transcript.
	if len(resolved.Messages) != 0 {
		t.Errorf("Expected no new messages, got %+v", resolved.Messages)
	}
	if resolved.Pending != "" {
		t.Errorf("Expected pending cleared, got %q", resolved.Pending)
	}
}

func TestSuggestionEndpoint(t *testing.T) {
	s := newTestServer(t)

	var resp SuggestionResponse
	w := doJSON(t, s, http.MethodGet, "/suggestion", nil, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if resp.Suggestion == "" {
		t.Error("Expected a non-empty suggestion")
	}
}

func TestSuggestionHonorsDataDir(t *testing.T) {
	s := newTestServer(t)

	override := "suggestions:\n  - Water the plants\n"
	if err := os.WriteFile(chat.SuggestionsPath(s.records.Dir()), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	var resp SuggestionResponse
	w := doJSON(t, s, http.MethodGet, "/suggestion", nil, &resp)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if resp.Suggestion != `"Water the plants"` {
		t.Errorf("Suggestion = %s, want the override entry", resp.Suggestion)
	}
}

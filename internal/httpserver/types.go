package httpserver

import (
	"elmora/internal/chat"
	"elmora/internal/record"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Text string `json:"text"`
}

// ChatResponse carries the messages a request appended plus the resulting
// pending action. Options is present only when that action needs a pick.
type ChatResponse struct {
	Messages []chat.Message   `json:"messages"`
	Pending  string           `json:"pending"`
	Options  *OptionsResponse `json:"options,omitempty"`
}

// TranscriptResponse is the body of GET /chat/messages.
type TranscriptResponse struct {
	Messages []chat.Message `json:"messages"`
	Pending  string         `json:"pending"`
}

// ResolveRequest is the body of POST /chat/resolve. Action must match the
// engine's live pending action; the remaining fields depend on it.
type ResolveRequest struct {
	Action    string `json:"action"`
	StoreID   string `json:"storeId,omitempty"`   // shopChoice
	ContactID string `json:"contactId,omitempty"` // dialChoice
	Answer    bool   `json:"answer,omitempty"`    // yes/no choices
	UsualTime bool   `json:"usualTime,omitempty"` // bedtimeChoice: alarm at the usual hour
}

// OptionsResponse describes what the client should offer the user for the
// live pending action.
type OptionsResponse struct {
	Action    string            `json:"action"`
	Stores    []record.Store    `json:"stores,omitempty"`
	Contacts  []record.Contact  `json:"contacts,omitempty"`
	Plans     []record.Plan     `json:"plans,omitempty"`
	Medicines []record.Medicine `json:"medicines,omitempty"`
	YesNo     bool              `json:"yesNo,omitempty"`
	UsualTime bool              `json:"usualTime,omitempty"` // a third "usual time" answer exists
}

// SuggestionResponse is the body of GET /suggestion.
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

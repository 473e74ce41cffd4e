package mcpserver

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"elmora/internal/chat"
	"elmora/internal/record"
	"elmora/internal/remind"
)

// choiceOptions mirrors what a client should offer for a pending action.
type choiceOptions struct {
	Action    string            `json:"action"`
	Stores    []record.Store    `json:"stores,omitempty"`
	Contacts  []record.Contact  `json:"contacts,omitempty"`
	Plans     []record.Plan     `json:"plans,omitempty"`
	Medicines []record.Medicine `json:"medicines,omitempty"`
	YesNo     bool              `json:"yesNo,omitempty"`
	UsualTime bool              `json:"usualTime,omitempty"`
}

// optionsForLocked builds the choice options for a pending action. Callers
// hold s.mu.
func (s *service) optionsForLocked(pending chat.PendingAction) *choiceOptions {
	opts := &choiceOptions{Action: string(pending)}
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

// send_message

type sendMessageInput struct {
	Text string `json:"text" jsonschema:"The user's utterance"`
}

type sendMessageOutput struct {
	Messages []chat.Message `json:"messages"`
	Pending  string         `json:"pending"`
	Options  *choiceOptions `json:"options,omitempty"`
}

func (s *service) sendMessageHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input sendMessageInput) (*mcpsdk.CallToolResult, sendMessageOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, sendMessageOutput{}, fmt.Errorf("text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appended := s.engine.Advance(input.Text)
	pending := s.engine.Pending()
	return nil, sendMessageOutput{
		Messages: appended,
		Pending:  string(pending),
		Options:  s.optionsForLocked(pending),
	}, nil
}

// resolve_choice

type resolveChoiceInput struct {
	Action    string `json:"action" jsonschema:"The pending action being answered, e.g. shopChoice"`
	StoreID   string `json:"storeId,omitempty" jsonschema:"Store ID for shopChoice"`
	ContactID string `json:"contactId,omitempty" jsonschema:"Contact ID for dialChoice"`
	Answer    bool   `json:"answer,omitempty" jsonschema:"The yes/no answer"`
	UsualTime bool   `json:"usualTime,omitempty" jsonschema:"For bedtimeChoice: set the alarm for the usual wake time"`
}

func (s *service) resolveChoiceHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input resolveChoiceInput) (*mcpsdk.CallToolResult, sendMessageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.engine.Pending()
	if string(pending) != input.Action {
		return nil, sendMessageOutput{}, fmt.Errorf("no %q choice is pending", input.Action)
	}

	var appended []chat.Message
	switch pending {
	case chat.AwaitingShopChoice:
		store, ok := s.records.Stores.Get(input.StoreID)
		if !ok {
			return nil, sendMessageOutput{}, fmt.Errorf("store %q not found", input.StoreID)
		}
		appended = s.engine.ResolveShopSelection(store)
	case chat.AwaitingHomeCheck:
		appended = s.engine.ResolvePantryCheck(input.Answer)
	case chat.AwaitingOutingChoice:
		appended = s.engine.ResolveOutingWanted(input.Answer)
	case chat.AwaitingBedtimeChoice:
		appended = s.engine.ResolveSleep(input.Answer, input.UsualTime)
	case chat.AwaitingReminderChoice:
		appended = s.engine.ResolveReminderChoice(input.Answer)
	case chat.AwaitingDialChoice:
		contact, ok := s.records.Contacts.Get(input.ContactID)
		if !ok {
			return nil, sendMessageOutput{}, fmt.Errorf("contact %q not found", input.ContactID)
		}
		appended = s.engine.ResolveDialSelection(contact)
	default:
		return nil, sendMessageOutput{}, fmt.Errorf("action %q resolves through send_message", input.Action)
	}

	after := s.engine.Pending()
	return nil, sendMessageOutput{
		Messages: appended,
		Pending:  string(after),
		Options:  s.optionsForLocked(after),
	}, nil
}

// get_transcript

type getTranscriptInput struct{}

type getTranscriptOutput struct {
	Messages []chat.Message `json:"messages"`
	Pending  string         `json:"pending"`
}

func (s *service) getTranscriptHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input getTranscriptInput) (*mcpsdk.CallToolResult, getTranscriptOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := s.engine.Messages()
	if messages == nil {
		messages = []chat.Message{}
	}
	return nil, getTranscriptOutput{
		Messages: messages,
		Pending:  string(s.engine.Pending()),
	}, nil
}

// get_pending

type getPendingInput struct{}

type getPendingOutput struct {
	Pending string         `json:"pending"`
	Options *choiceOptions `json:"options,omitempty"`
}

func (s *service) getPendingHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input getPendingInput) (*mcpsdk.CallToolResult, getPendingOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.engine.Pending()
	return nil, getPendingOutput{
		Pending: string(pending),
		Options: s.optionsForLocked(pending),
	}, nil
}

// suggest_prompt

type suggestPromptInput struct{}

type suggestPromptOutput struct {
	Suggestion string `json:"suggestion"`
}

func (s *service) suggestPromptHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input suggestPromptInput) (*mcpsdk.CallToolResult, suggestPromptOutput, error) {
	suggestions := chat.LoadSuggestions(chat.SuggestionsPath(s.records.Dir()))
	return nil, suggestPromptOutput{Suggestion: chat.Suggestion(suggestions)}, nil
}

// list_reminders

type listRemindersInput struct{}

type listRemindersOutput struct {
	Reminders []*remind.Reminder `json:"reminders"`
}

func (s *service) listRemindersHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input listRemindersInput) (*mcpsdk.CallToolResult, listRemindersOutput, error) {
	reminders, err := s.reminders.List()
	if err != nil {
		return nil, listRemindersOutput{}, fmt.Errorf("failed to list reminders: %w", err)
	}
	if reminders == nil {
		reminders = []*remind.Reminder{}
	}
	return nil, listRemindersOutput{Reminders: reminders}, nil
}

// cancel_reminder

type cancelReminderInput struct {
	ID string `json:"id" jsonschema:"Reminder ID to cancel"`
}

type cancelReminderOutput struct {
	Cancelled bool `json:"cancelled"`
}

func (s *service) cancelReminderHandler(ctx context.Context, req *mcpsdk.CallToolRequest, input cancelReminderInput) (*mcpsdk.CallToolResult, cancelReminderOutput, error) {
	if input.ID == "" {
		return nil, cancelReminderOutput{}, fmt.Errorf("id is required")
	}
	if err := s.reminders.Cancel(input.ID); err != nil {
		return nil, cancelReminderOutput{}, fmt.Errorf("failed to cancel reminder: %w", err)
	}
	return nil, cancelReminderOutput{Cancelled: true}, nil
}

// Package mcpserver exposes the assistant as MCP tools over stdio, so an MCP
// client can hold the conversation and manage the record collections.
package mcpserver

import (
	"context"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"elmora/internal/chat"
	"elmora/internal/record"
	"elmora/internal/remind"
)

// service carries the shared state every tool handler works against. The
// engine does no locking of its own, so every handler that touches it holds mu.
type service struct {
	mu        sync.Mutex
	engine    *chat.Engine
	records   *record.Stores
	reminders *remind.Scheduler
}

// RunServer starts the MCP server over stdio transport.
func RunServer(engine *chat.Engine, records *record.Stores, reminders *remind.Scheduler, version string) error {
	svc := &service{
		engine:    engine,
		records:   records,
		reminders: reminders,
	}

	server := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "elmora",
			Version: version,
		},
		nil,
	)

	// Conversation tools
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "send_message",
		Description: "Send one user utterance to the assistant and get the appended messages back",
	}, svc.sendMessageHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "resolve_choice",
		Description: "Answer the pending choice (store pick, yes/no, contact pick) left by the last assistant message",
	}, svc.resolveChoiceHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_transcript",
		Description: "Get the full conversation transcript and the pending action",
	}, svc.getTranscriptHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_pending",
		Description: "Get the pending action and the choices available to answer it",
	}, svc.getPendingHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "suggest_prompt",
		Description: "Get a random suggested prompt to offer the user",
	}, svc.suggestPromptHandler)

	// Record tools
	svc.registerRecordTools(server)

	// Reminder tools
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_reminders",
		Description: "List all queued reminders and alarms",
	}, svc.listRemindersHandler)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "cancel_reminder",
		Description: "Cancel a queued reminder by ID",
	}, svc.cancelReminderHandler)

	return server.Run(context.Background(), &mcpsdk.StdioTransport{})
}

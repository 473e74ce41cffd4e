package httpserver

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"elmora/internal/chat"
)

// wsClient wraps a connection with a write lock. gorilla/websocket allows
// only one concurrent writer per connection, and both the broadcast loop and
// the per-client read loop write to it.
type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// wsIncoming is a message from a WebSocket client.
type wsIncoming struct {
	Type    string `json:"type"` // "user_message" or "resolve"
	Content string `json:"content,omitempty"`

	// resolve payload, same shape as POST /chat/resolve
	Action    string `json:"action,omitempty"`
	StoreID   string `json:"storeId,omitempty"`
	ContactID string `json:"contactId,omitempty"`
	Answer    bool   `json:"answer,omitempty"`
	UsualTime bool   `json:"usualTime,omitempty"`
}

// wsOutgoing is a message to a WebSocket client.
type wsOutgoing struct {
	Type     string         `json:"type"` // "messages", "pending", "error"
	Messages []chat.Message `json:"messages,omitempty"`
	Pending  string         `json:"pending,omitempty"`
	Message  string         `json:"message,omitempty"`
}

// upgrader configures the WebSocket handshake.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; auth is handled at the HTTP layer.
	},
}

// handleChatWS upgrades GET /chat/ws and streams transcript updates. Every
// connected client sees every appended message, whichever surface produced it.
func (s *HTTPServer) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HTTP] websocket upgrade error: %v", err)
		return
	}

	client := &wsClient{conn: conn}
	s.addClient(client)

	// Send the transcript so far.
	s.engineMu.Lock()
	snapshot := wsOutgoing{
		Type:     "messages",
		Messages: s.engine.Messages(),
		Pending:  string(s.engine.Pending()),
	}
	s.engineMu.Unlock()
	if data, err := json.Marshal(snapshot); err == nil {
		client.write(data)
	}

	go func() {
		defer func() {
			s.removeClient(client)
			conn.Close()
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
				) {
					log.Printf("[HTTP] ws read error: %v", err)
				}
				return
			}

			s.handleClientMessage(client, raw)
		}
	}()
}

// handleClientMessage processes a single incoming WebSocket message.
func (s *HTTPServer) handleClientMessage(client *wsClient, raw []byte) {
	var msg wsIncoming
	if err := json.Unmarshal(raw, &msg); err != nil {
		sendWSError(client, "invalid JSON: "+err.Error())
		return
	}

	switch msg.Type {
	case "user_message":
		if strings.TrimSpace(msg.Content) == "" {
			sendWSError(client, "content is required for user_message")
			return
		}
		s.engineMu.Lock()
		appended := s.engine.Advance(msg.Content)
		pending := s.engine.Pending()
		s.engineMu.Unlock()
		s.broadcast(appended, string(pending))

	case "resolve":
		appended, pending, errMsg := s.resolveFromWS(msg)
		if errMsg != "" {
			sendWSError(client, errMsg)
			return
		}
		s.broadcast(appended, pending)

	default:
		sendWSError(client, "unknown message type: "+msg.Type)
	}
}

// resolveFromWS applies a resolve message, mirroring POST /chat/resolve.
func (s *HTTPServer) resolveFromWS(msg wsIncoming) (appended []chat.Message, pendingAfter, errMsg string) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	pending := s.engine.Pending()
	if string(pending) != msg.Action {
		return nil, "", "no " + msg.Action + " choice is pending"
	}

	switch pending {
	case chat.AwaitingShopChoice:
		store, ok := s.records.Stores.Get(msg.StoreID)
		if !ok {
			return nil, "", "store not found"
		}
		appended = s.engine.ResolveShopSelection(store)
	case chat.AwaitingHomeCheck:
		appended = s.engine.ResolvePantryCheck(msg.Answer)
	case chat.AwaitingOutingChoice:
		appended = s.engine.ResolveOutingWanted(msg.Answer)
	case chat.AwaitingBedtimeChoice:
		appended = s.engine.ResolveSleep(msg.Answer, msg.UsualTime)
	case chat.AwaitingReminderChoice:
		appended = s.engine.ResolveReminderChoice(msg.Answer)
	case chat.AwaitingDialChoice:
		contact, ok := s.records.Contacts.Get(msg.ContactID)
		if !ok {
			return nil, "", "contact not found"
		}
		appended = s.engine.ResolveDialSelection(contact)
	default:
		return nil, "", "action " + msg.Action + " resolves through a user_message"
	}
	return appended, string(s.engine.Pending()), ""
}

func (s *HTTPServer) addClient(client *wsClient) {
	s.wsMu.Lock()
	s.wsClients[client] = true
	s.wsMu.Unlock()
}

func (s *HTTPServer) removeClient(client *wsClient) {
	s.wsMu.Lock()
	delete(s.wsClients, client)
	s.wsMu.Unlock()
}

// broadcast pushes newly appended messages to every connected client.
// Callers pass the pending action they observed under the engine lock.
func (s *HTTPServer) broadcast(messages []chat.Message, pending string) {
	if len(messages) == 0 {
		return
	}

	out := wsOutgoing{
		Type:     "messages",
		Messages: messages,
		Pending:  pending,
	}

	data, err := json.Marshal(out)
	if err != nil {
		return
	}

	s.wsMu.Lock()
	defer s.wsMu.Unlock()
	for client := range s.wsClients {
		if err := client.write(data); err != nil {
			log.Printf("[HTTP] ws write error, dropping client: %v", err)
			client.conn.Close()
			delete(s.wsClients, client)
		}
	}
}

// sendWSError sends an error message to a single WebSocket client.
func sendWSError(client *wsClient, message string) {
	out := wsOutgoing{
		Type:    "error",
		Message: message,
	}
	if data, err := json.Marshal(out); err == nil {
		client.write(data)
	}
}

package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	header := http.Header{"Authorization": []string{"Bearer " + testToken}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWSReceivesChatBroadcast(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.mux)
	defer srv.Close()

	conn := dialTestWS(t, srv)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// First frame is the (empty) transcript snapshot.
	var snapshot wsOutgoing
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snapshot.Type != "messages" {
		t.Fatalf("snapshot type = %q, want messages", snapshot.Type)
	}

	// A /chat request on the HTTP side fans out to the socket.
	w := doJSON(t, s, http.MethodPost, "/chat", ChatRequest{Text: "hello"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /chat: %d (%s)", w.Code, w.Body.String())
	}

	var update wsOutgoing
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if update.Type != "messages" || len(update.Messages) != 2 {
		t.Fatalf("unexpected broadcast: %+v", update)
	}
	if update.Messages[0].Content != "hello" {
		t.Errorf("broadcast echoes %q, want the user message", update.Messages[0].Content)
	}
}

// Clients connecting (and hitting the read-loop error path) while broadcasts
// are in flight must not write to a connection concurrently with the
// broadcast loop.
func TestWSBroadcastDuringConnect(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	header := http.Header{"Authorization": []string{"Bearer " + testToken}}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for i := 0; i < 30; i++ {
			s.engineMu.Lock()
			appended := s.engine.Advance("hello")
			pending := s.engine.Pending()
			s.engineMu.Unlock()
			s.broadcast(appended, string(pending))
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
			if err != nil {
				t.Errorf("dial: %v", err)
				return
			}
			defer conn.Close()

			// Malformed JSON makes the read loop answer with an error
			// frame, concurrently with the broadcasts above.
			if err := conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
				t.Errorf("write: %v", err)
				return
			}

			sawError := false
			conn.SetReadDeadline(time.Now().Add(time.Second))
			for {
				var out wsOutgoing
				if err := conn.ReadJSON(&out); err != nil {
					break
				}
				switch out.Type {
				case "messages":
				case "error":
					sawError = true
				default:
					t.Errorf("unexpected frame type %q", out.Type)
				}
			}
			if !sawError {
				t.Error("no error frame for the malformed payload")
			}
		}()
	}
	wg.Wait()
	<-writerDone
}

package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMultiNotifier_Send(t *testing.T) {
	var called []string

	n1 := &mockNotifier{name: "desktop", sendFn: func(n Notification) error {
		called = append(called, "desktop")
		return nil
	}}
	n2 := &mockNotifier{name: "caregiver", sendFn: func(n Notification) error {
		called = append(called, "caregiver")
		return nil
	}}

	m := NewMultiNotifier(n1, n2)
	err := m.Send(Notification{Title: "Good Morning!", Message: "Wakey Wakey it's time to wake up!"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(called) != 2 || called[0] != "desktop" || called[1] != "caregiver" {
		t.Fatalf("expected both senders called, got: %v", called)
	}
}

func TestMultiNotifier_Name(t *testing.T) {
	m := NewMultiNotifier(
		&mockNotifier{name: "x"},
		&mockNotifier{name: "y"},
	)
	got := m.Name()
	want := "multi(x,y)"
	if got != want {
		t.Fatalf("Name() = %q, want %q", got, want)
	}
}

func TestWebhookNotifier_Slack(t *testing.T) {
	var received map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	wh := NewWebhookNotifier(srv.URL, "slack", nil)
	err := wh.Send(Notification{Title: "Hey there!", Message: "Did you reach home safely?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received["text"] != "Hey there!: Did you reach home safely?" {
		t.Fatalf("unexpected payload: %v", received)
	}
}

func TestWebhookNotifier_Telegram(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	extra := map[string]string{"chat_id": "123456"}
	wh := NewWebhookNotifier(srv.URL, "telegram", extra)
	err := wh.Send(Notification{Title: "Medicine Reminder", Message: "Time to take 500 mg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received["chat_id"] != "123456" {
		t.Fatalf("expected chat_id=123456, got: %v", received["chat_id"])
	}
	if received["text"] != "Medicine Reminder: Time to take 500 mg" {
		t.Fatalf("unexpected text: %v", received["text"])
	}
}

func TestWebhookNotifier_Custom(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	extra := map[string]string{
		"template": `{"body": "{{.Title}} - {{.Message}}", "combined": "{{.Text}}"}`,
	}
	wh := NewWebhookNotifier(srv.URL, "custom", extra)
	err := wh.Send(Notification{Title: "alarm", Message: "7:00 AM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received["body"] != "alarm - 7:00 AM" {
		t.Fatalf("unexpected body: %v", received["body"])
	}
	if received["combined"] != "alarm: 7:00 AM" {
		t.Fatalf("unexpected combined: %v", received["combined"])
	}
}

func TestWebhookNotifier_Custom_MissingTemplate(t *testing.T) {
	wh := NewWebhookNotifier("http://localhost", "custom", nil)
	err := wh.Send(Notification{Title: "test", Message: "msg"})
	if err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestWebhookNotifier_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	wh := NewWebhookNotifier(srv.URL, "slack", nil)
	err := wh.Send(Notification{Title: "test", Message: "msg"})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestNewDesktopNotifier(t *testing.T) {
	n := NewDesktopNotifier()
	if n == nil {
		t.Fatal("NewDesktopNotifier returned nil")
	}
	if n.Name() == "" {
		t.Fatal("notifier Name() is empty")
	}
}

// mockNotifier is a test helper.
type mockNotifier struct {
	name   string
	sendFn func(Notification) error
}

func (m *mockNotifier) Send(n Notification) error {
	if m.sendFn != nil {
		return m.sendFn(n)
	}
	return nil
}

func (m *mockNotifier) Name() string { return m.name }

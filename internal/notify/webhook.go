package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"
	"time"
)

// WebhookNotifier posts notifications to a caregiver channel: a family
// member's Slack or Telegram, or any endpoint via a custom JSON template.
type WebhookNotifier struct {
	URL    string            // webhook endpoint
	Format string            // "slack", "telegram", "custom"
	Extra  map[string]string // format-specific parameters (chat_id, template)
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier for the given URL and format.
func NewWebhookNotifier(url, format string, extra map[string]string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:    url,
		Format: format,
		Extra:  extra,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the notification to the configured webhook.
func (w *WebhookNotifier) Send(n Notification) error {
	var payload any

	text := fmt.Sprintf("%s: %s", n.Title, n.Message)

	switch w.Format {
	case "telegram":
		payload = map[string]any{
			"chat_id":    w.Extra["chat_id"],
			"text":       text,
			"parse_mode": "HTML",
		}
	case "custom":
		tmplStr := w.Extra["template"]
		if tmplStr == "" {
			return fmt.Errorf("webhook custom format: missing 'template' in extra")
		}
		tmpl, err := template.New("webhook").Parse(tmplStr)
		if err != nil {
			return fmt.Errorf("webhook custom template parse: %w", err)
		}
		data := map[string]string{
			"Title":   n.Title,
			"Message": n.Message,
			"Text":    text,
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("webhook custom template execute: %w", err)
		}
		// The rendered template must itself be valid JSON.
		if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
			return fmt.Errorf("webhook custom template produced invalid JSON: %w", err)
		}
	default: // "slack" and anything unrecognized
		payload = map[string]string{
			"text": text,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook marshal: %w", err)
	}

	resp, err := w.client.Post(w.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Name returns the name of this notifier.
func (w *WebhookNotifier) Name() string { return "webhook" }

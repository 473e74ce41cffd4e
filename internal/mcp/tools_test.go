package mcpserver

import (
	"context"
	"os"
	"testing"

	"elmora/internal/chat"
	"elmora/internal/record"
	"elmora/internal/remind"
	"elmora/internal/timefmt"
)

func newTestService(t *testing.T) *service {
	t.Helper()
	dir := t.TempDir()
	records := record.Open(dir)
	reminders := remind.New(remind.NewStore(dir), nil)
	t.Cleanup(reminders.Stop)

	return &service{
		engine:    chat.NewEngine(reminders, nil, timefmt.Minutes{}),
		records:   records,
		reminders: reminders,
	}
}

func TestSendMessageTool(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.sendMessageHandler(context.Background(), nil, sendMessageInput{Text: "hello"})
	if err != nil {
		t.Fatalf("sendMessage: %v", err)
	}
	if len(out.Messages) != 2 || out.Pending != "" {
		t.Fatalf("unexpected output: %+v", out)
	}

	_, _, err = svc.sendMessageHandler(context.Background(), nil, sendMessageInput{Text: "  "})
	if err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestResolveChoiceTool(t *testing.T) {
	svc := newTestService(t)
	if err := svc.records.Stores.Save(record.Store{ID: "st1", Name: "Kirana Store", EstimatedTime: 5}); err != nil {
		t.Fatal(err)
	}

	_, out, err := svc.sendMessageHandler(context.Background(), nil, sendMessageInput{Text: "I want to buy bread"})
	if err != nil {
		t.Fatalf("sendMessage: %v", err)
	}
	if out.Pending != "shopChoice" {
		t.Fatalf("expected shopChoice pending, got %q", out.Pending)
	}
	if out.Options == nil || len(out.Options.Stores) != 1 {
		t.Fatalf("expected store options, got %+v", out.Options)
	}

	_, resolved, err := svc.resolveChoiceHandler(context.Background(), nil, resolveChoiceInput{Action: "shopChoice", StoreID: "st1"})
	if err != nil {
		t.Fatalf("resolveChoice: %v", err)
	}
	if resolved.Pending != "reminderChoice" {
		t.Fatalf("expected reminderChoice pending, got %q", resolved.Pending)
	}

	// Wrong action while something else is pending.
	_, _, err = svc.resolveChoiceHandler(context.Background(), nil, resolveChoiceInput{Action: "dialChoice", ContactID: "x"})
	if err == nil {
		t.Fatal("expected error for mismatched action")
	}
}

func TestMedicineToolsSyncReminders(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.addMedicineHandler(context.Background(), nil, addMedicineInput{
		Name: "Metformin", Dosage: "500 mg", TimeOfDay: "08:00", Frequency: "daily",
	})
	if err != nil {
		t.Fatalf("addMedicine: %v", err)
	}

	reminders, _ := svc.reminders.List()
	if len(reminders) != 1 || reminders[0].Source != "medicine:Metformin" {
		t.Fatalf("expected a medicine reminder, got %+v", reminders)
	}

	_, _, err = svc.removeMedicineHandler(context.Background(), nil, removeMedicineInput{Name: "Metformin"})
	if err != nil {
		t.Fatalf("removeMedicine: %v", err)
	}
	reminders, _ = svc.reminders.List()
	if len(reminders) != 0 {
		t.Fatalf("expected reminders cleared, got %+v", reminders)
	}
}

func TestSuggestPromptTool(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.suggestPromptHandler(context.Background(), nil, suggestPromptInput{})
	if err != nil {
		t.Fatalf("suggestPrompt: %v", err)
	}
	if out.Suggestion == "" {
		t.Error("expected a non-empty suggestion")
	}
}

func TestSuggestPromptHonorsDataDir(t *testing.T) {
	svc := newTestService(t)

	override := "suggestions:\n  - Water the plants\n"
	if err := os.WriteFile(chat.SuggestionsPath(svc.records.Dir()), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	_, out, err := svc.suggestPromptHandler(context.Background(), nil, suggestPromptInput{})
	if err != nil {
		t.Fatalf("suggestPrompt: %v", err)
	}
	if out.Suggestion != `"Water the plants"` {
		t.Errorf("Suggestion = %s, want the override entry", out.Suggestion)
	}
}

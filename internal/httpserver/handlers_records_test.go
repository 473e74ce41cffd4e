package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"elmora/internal/record"
	"elmora/internal/remind"
)

func TestStoreCRUD(t *testing.T) {
	s := newTestServer(t)

	var created record.Store
	w := doJSON(t, s, http.MethodPost, "/stores", record.Store{Name: "Kirana Store", Distance: "550 m", EstimatedTime: 5}, &created)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (body: %s)", w.Code, w.Body.String())
	}
	if created.ID == "" {
		t.Fatal("Expected an ID to be assigned")
	}

	var list []record.Store
	doJSON(t, s, http.MethodGet, "/stores", nil, &list)
	if len(list) != 1 || list[0].Name != "Kirana Store" {
		t.Fatalf("unexpected list: %+v", list)
	}

	var got record.Store
	w = doJSON(t, s, http.MethodGet, "/stores/"+created.ID, nil, &got)
	if w.Code != http.StatusOK || got.ID != created.ID {
		t.Fatalf("GET item failed: %d %+v", w.Code, got)
	}

	w = doJSON(t, s, http.MethodDelete, "/stores/"+created.ID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on delete, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/stores/"+created.ID, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", w.Code)
	}
}

func TestStoreValidation(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/stores", record.Store{Distance: "1 km"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing name, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "name") {
		t.Errorf("Expected the error to name the missing field, got %s", w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/stores", record.Store{Name: "X", EstimatedTime: -1}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for negative time, got %d", w.Code)
	}
}

func TestContactValidation(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/contacts", record.Contact{Name: "Asha"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing number, got %d", w.Code)
	}
}

func TestDeleteUnknownRecord(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodDelete, "/plans/nope", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestRecordMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodDelete, "/stores", nil, nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestMedicineUpsertSyncsReminders(t *testing.T) {
	s := newTestServer(t)

	med := record.Medicine{Name: "Metformin", Dosage: "500 mg", TimeOfDay: "08:00", Frequency: "daily"}
	w := doJSON(t, s, http.MethodPost, "/medicines", med, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (body: %s)", w.Code, w.Body.String())
	}

	var reminders []*remind.Reminder
	doJSON(t, s, http.MethodGet, "/reminders", nil, &reminders)
	if len(reminders) != 1 || reminders[0].Source != "medicine:Metformin" {
		t.Fatalf("Expected one medicine reminder, got %+v", reminders)
	}
	if reminders[0].Hour != 8 || reminders[0].Minute != 0 {
		t.Errorf("unexpected reminder time: %+v", reminders[0])
	}

	// Same name updates in place rather than duplicating.
	med.TimeOfDay = "09:30"
	doJSON(t, s, http.MethodPost, "/medicines", med, nil)

	var meds []record.Medicine
	doJSON(t, s, http.MethodGet, "/medicines", nil, &meds)
	if len(meds) != 1 || meds[0].TimeOfDay != "09:30" {
		t.Fatalf("Expected in-place update, got %+v", meds)
	}

	doJSON(t, s, http.MethodGet, "/reminders", nil, &reminders)
	if len(reminders) != 1 || reminders[0].Hour != 9 || reminders[0].Minute != 30 {
		t.Fatalf("Expected the reminder to follow the new time, got %+v", reminders)
	}

	// Deleting the medicine clears its reminder.
	w = doJSON(t, s, http.MethodDelete, "/medicines/Metformin", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	doJSON(t, s, http.MethodGet, "/reminders", nil, &reminders)
	if len(reminders) != 0 {
		t.Errorf("Expected no reminders after delete, got %+v", reminders)
	}
}

func TestCancelReminder(t *testing.T) {
	s := newTestServer(t)

	doJSON(t, s, http.MethodPost, "/medicines", record.Medicine{Name: "Aspirin", Dosage: "75 mg", TimeOfDay: "21:00", Frequency: "daily"}, nil)

	var reminders []*remind.Reminder
	doJSON(t, s, http.MethodGet, "/reminders", nil, &reminders)
	if len(reminders) != 1 {
		t.Fatalf("Expected one reminder, got %d", len(reminders))
	}

	w := doJSON(t, s, http.MethodDelete, "/reminders/"+reminders[0].ID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	doJSON(t, s, http.MethodGet, "/reminders", nil, &reminders)
	if len(reminders) != 0 {
		t.Errorf("Expected the reminder to be gone, got %+v", reminders)
	}
}

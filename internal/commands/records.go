package commands

import (
	"fmt"

	"elmora/internal/config"
	"elmora/internal/output"
	"elmora/internal/record"
	"elmora/internal/ui"
)

// loadConfigOrExit loads the config, exiting on failure.
func loadConfigOrExit() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		output.PrintError(err)
	}
	return cfg
}

// syncMedicines rebuilds the medicine reminders after a CLI edit.
func syncMedicines(cfg *config.Config, records *record.Stores) {
	scheduler := openScheduler(cfg)
	defer scheduler.Stop()
	if err := scheduler.SyncMedicines(records.Medicines.List()); err != nil {
		ui.ShowWarning("medicine reminder sync failed: %v", err)
	}
}

// RunMedicineAdd adds or updates a medicine and its daily reminder.
func RunMedicineAdd(name, dosage, timeOfDay, frequency, notes string) {
	cfg := loadConfigOrExit()
	records := openRecords(cfg)

	med := record.Medicine{
		Name:      name,
		Dosage:    dosage,
		TimeOfDay: timeOfDay,
		Frequency: frequency,
		Notes:     notes,
	}
	if err := records.Medicines.Save(med); err != nil {
		output.PrintError(err)
	}
	syncMedicines(cfg, records)

	output.Print(med, func() {
		ui.ShowSuccess("Saved medicine %s (%s at %s)", med.Name, med.Dosage, med.TimeOfDay)
	})
}

// RunMedicineList lists all medicines.
func RunMedicineList() {
	cfg := loadConfigOrExit()
	medicines := openRecords(cfg).Medicines.List()

	output.Print(medicines, func() {
		if len(medicines) == 0 {
			ui.ShowInfo("No medicines yet. Add one with: elmora medicine add <name> --time HH:MM")
			return
		}
		ui.ShowHeader("Medicines")
		for i, m := range medicines {
			detail := m.Dosage + " at " + m.TimeOfDay
			if m.Notes != "" {
				detail += " — " + m.Notes
			}
			ui.ShowOption(i+1, m.Name, detail)
		}
	})
}

// RunMedicineRemove removes a medicine and its daily reminder.
func RunMedicineRemove(name string) {
	cfg := loadConfigOrExit()
	records := openRecords(cfg)

	if _, ok := records.Medicines.Get(name); !ok {
		output.PrintError(fmt.Errorf("medicine %q not found", name))
	}
	if err := records.Medicines.Delete(name); err != nil {
		output.PrintError(err)
	}
	syncMedicines(cfg, records)

	output.Print(map[string]string{"removed": name}, func() {
		ui.ShowSuccess("Removed medicine %s", name)
	})
}

// RunContactAdd adds a contact.
func RunContactAdd(name, number string) {
	cfg := loadConfigOrExit()
	records := openRecords(cfg)

	contact := record.Contact{ID: record.NewID(), Name: name, Number: number}
	if err := records.Contacts.Save(contact); err != nil {
		output.PrintError(err)
	}
	output.Print(contact, func() {
		ui.ShowSuccess("Saved contact %s (%s)", contact.Name, contact.Number)
	})
}

// RunContactList lists all contacts.
func RunContactList() {
	cfg := loadConfigOrExit()
	contacts := openRecords(cfg).Contacts.List()

	output.Print(contacts, func() {
		if len(contacts) == 0 {
			ui.ShowInfo("No contacts yet. Add one with: elmora contact add <name> <number>")
			return
		}
		ui.ShowHeader("Contacts")
		for i, c := range contacts {
			ui.ShowOption(i+1, c.Name, c.Number+"  id="+c.ID)
		}
	})
}

// RunContactRemove removes a contact by ID.
func RunContactRemove(id string) {
	cfg := loadConfigOrExit()
	records := openRecords(cfg)

	if _, ok := records.Contacts.Get(id); !ok {
		output.PrintError(fmt.Errorf("contact %q not found", id))
	}
	if err := records.Contacts.Delete(id); err != nil {
		output.PrintError(err)
	}
	output.Print(map[string]string{"removed": id}, func() {
		ui.ShowSuccess("Removed contact %s", id)
	})
}

// RunStoreAdd adds a store.
func RunStoreAdd(name, distance string, minutes int) {
	if minutes < 0 {
		output.PrintError(fmt.Errorf("minutes must not be negative"))
	}
	cfg := loadConfigOrExit()
	records := openRecords(cfg)

	store := record.Store{ID: record.NewID(), Name: name, Distance: distance, EstimatedTime: minutes}
	if err := records.Stores.Save(store); err != nil {
		output.PrintError(err)
	}
	output.Print(store, func() {
		ui.ShowSuccess("Saved store %s (%d min walk)", store.Name, store.EstimatedTime)
	})
}

// RunStoreList lists all stores.
func RunStoreList() {
	cfg := loadConfigOrExit()
	stores := openRecords(cfg).Stores.List()

	output.Print(stores, func() {
		if len(stores) == 0 {
			ui.ShowInfo("No stores yet. Add one with: elmora store add <name> --minutes N")
			return
		}
		ui.ShowHeader("Stores")
		for i, s := range stores {
			detail := fmt.Sprintf("%s, %d min walk  id=%s", s.Distance, s.EstimatedTime, s.ID)
			ui.ShowOption(i+1, s.Name, detail)
		}
	})
}

// RunStoreRemove removes a store by ID.
func RunStoreRemove(id string) {
	cfg := loadConfigOrExit()
	records := openRecords(cfg)

	if _, ok := records.Stores.Get(id); !ok {
		output.PrintError(fmt.Errorf("store %q not found", id))
	}
	if err := records.Stores.Delete(id); err != nil {
		output.PrintError(err)
	}
	output.Print(map[string]string{"removed": id}, func() {
		ui.ShowSuccess("Removed store %s", id)
	})
}

// RunPlanAdd adds an outing plan suggestion.
func RunPlanAdd(text string) {
	cfg := loadConfigOrExit()
	records := openRecords(cfg)

	plan := record.Plan{ID: record.NewID(), Plan: text}
	if err := records.Plans.Save(plan); err != nil {
		output.PrintError(err)
	}
	output.Print(plan, func() {
		ui.ShowSuccess("Saved plan: %s", plan.Plan)
	})
}

// RunPlanList lists all outing plans.
func RunPlanList() {
	cfg := loadConfigOrExit()
	plans := openRecords(cfg).Plans.List()

	output.Print(plans, func() {
		if len(plans) == 0 {
			ui.ShowInfo("No plans yet. Add one with: elmora plan add <text>")
			return
		}
		ui.ShowHeader("Outing plans")
		for i, p := range plans {
			ui.ShowOption(i+1, p.Plan, "id="+p.ID)
		}
	})
}

// RunPlanRemove removes an outing plan by ID.
func RunPlanRemove(id string) {
	cfg := loadConfigOrExit()
	records := openRecords(cfg)

	if _, ok := records.Plans.Get(id); !ok {
		output.PrintError(fmt.Errorf("plan %q not found", id))
	}
	if err := records.Plans.Delete(id); err != nil {
		output.PrintError(err)
	}
	output.Print(map[string]string{"removed": id}, func() {
		ui.ShowSuccess("Removed plan %s", id)
	})
}

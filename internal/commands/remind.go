package commands

import (
	"fmt"

	"elmora/internal/output"
	"elmora/internal/remind"
	"elmora/internal/timefmt"
	"elmora/internal/ui"
)

// RunRemindList lists all queued reminders.
func RunRemindList() {
	cfg := loadConfigOrExit()
	scheduler := openScheduler(cfg)
	defer scheduler.Stop()

	reminders, err := scheduler.List()
	if err != nil {
		output.PrintError(err)
	}

	output.Print(reminders, func() {
		if len(reminders) == 0 {
			ui.ShowInfo("No reminders queued")
			return
		}
		ui.ShowHeader("Reminders")
		for i, r := range reminders {
			var when string
			switch r.Type {
			case remind.TypeDaily:
				when = fmt.Sprintf("daily at %02d:%02d", r.Hour, r.Minute)
			case remind.TypeOnce:
				if r.At != nil {
					when = "once at " + timefmt.Clock(*r.At)
				}
			}
			ui.ShowOption(i+1, r.Title, when+"  id="+r.ID)
		}
	})
}

// RunRemindCancel cancels a reminder by ID.
func RunRemindCancel(id string) {
	cfg := loadConfigOrExit()
	scheduler := openScheduler(cfg)
	defer scheduler.Stop()

	if err := scheduler.Cancel(id); err != nil {
		output.PrintError(err)
	}
	output.Print(map[string]string{"cancelled": id}, func() {
		ui.ShowSuccess("Cancelled reminder %s", id)
	})
}

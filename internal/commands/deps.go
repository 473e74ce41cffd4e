package commands

import (
	"elmora/internal/chat"
	"elmora/internal/config"
	"elmora/internal/notify"
	"elmora/internal/record"
	"elmora/internal/remind"
	"elmora/internal/telephony"
	"elmora/internal/timefmt"
)

// openRecords opens the record collections under the configured data dir.
func openRecords(cfg *config.Config) *record.Stores {
	dir := cfg.DataDir
	if dir == "" {
		dir = record.DefaultDir()
	}
	return record.Open(dir)
}

// newNotifier builds the delivery stack: the desktop always, plus the
// caregiver webhook when configured.
func newNotifier(cfg *config.Config) notify.Notifier {
	desktop := notify.NewDesktopNotifier()
	if cfg.Caregiver == nil || cfg.Caregiver.URL == "" {
		return desktop
	}
	webhook := notify.NewWebhookNotifier(cfg.Caregiver.URL, cfg.Caregiver.Format, cfg.Caregiver.Extra)
	return notify.NewMultiNotifier(desktop, webhook)
}

// openScheduler builds the reminder scheduler over the configured data dir.
// The caller decides whether to Start it.
func openScheduler(cfg *config.Config) *remind.Scheduler {
	dir := cfg.DataDir
	if dir == "" {
		dir = record.DefaultDir()
	}
	return remind.New(remind.NewStore(dir), newNotifier(cfg))
}

// newEngine builds a dialogue engine wired to the local collaborators.
func newEngine(cfg *config.Config, scheduler *remind.Scheduler, dialer chat.Dialer) *chat.Engine {
	hour, minute := cfg.WakeTime()
	return chat.NewEngine(scheduler, dialer, timefmt.Minutes{}, chat.WithUsualWakeTime(hour, minute))
}

// localDialer is the dialer used by the interactive surfaces.
func localDialer() chat.Dialer {
	return telephony.NewLauncher()
}

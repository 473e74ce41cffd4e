// Package remind schedules reminders and alarms: one-shot timers for "did
// you reach home" checks and wake-up alarms, cron-driven daily entries for
// medicines. Firing a reminder hands it to a notify.Notifier; delivery
// failures are logged and swallowed so the conversation never notices.
package remind

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"elmora/internal/notify"
	"elmora/internal/record"
)

// Scheduler manages one-shot and daily reminders.
type Scheduler struct {
	store    *Store
	notifier notify.Notifier

	mu     sync.Mutex
	cron   *cron.Cron    // drives TypeDaily reminders
	timers []*time.Timer // drives TypeOnce reminders
	done   chan struct{}
}

// New creates a Scheduler backed by the given store, delivering through the
// given notifier.
func New(store *Store, notifier notify.Notifier) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: notifier,
		done:     make(chan struct{}),
	}
}

// Start loads all enabled reminders from disk and begins dispatching them.
// Call Start once; use Reload to refresh at runtime.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron = cron.New()
	if err := s.loadLocked(); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[remind] started")
	return nil
}

// Stop cancels all pending timers and shuts down the cron runner.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.cron = nil
	}

	select {
	case <-s.done:
	default:
		close(s.done)
	}

	log.Printf("[remind] stopped")
}

// Reload re-reads reminders from disk and re-registers everything.
func (s *Scheduler) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	s.cron = cron.New()

	if err := s.loadLocked(); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Schedule queues a one-shot notification at the given time. This is the
// dialogue engine's fire-and-forget entry point: persistence or registration
// failures are logged, never returned.
func (s *Scheduler) Schedule(title, body string, at time.Time) {
	r := &Reminder{
		Type:    TypeOnce,
		Title:   title,
		Body:    body,
		At:      &at,
		Source:  "chat",
		Enabled: true,
	}
	if err := s.store.Add(r); err != nil {
		log.Printf("[remind] failed to persist reminder: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerOnce(r, time.Now())
}

// ScheduleDaily adds a repeating daily reminder.
func (s *Scheduler) ScheduleDaily(title, body, source string, hour, minute int) error {
	r := &Reminder{
		Type:    TypeDaily,
		Title:   title,
		Body:    body,
		Hour:    hour,
		Minute:  minute,
		Source:  source,
		Enabled: true,
	}
	if err := s.store.Add(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.registerDaily(r)
	}
	return nil
}

// List returns all persisted reminders.
func (s *Scheduler) List() ([]*Reminder, error) {
	return s.store.Load()
}

// Cancel removes a reminder by ID and re-registers the rest.
func (s *Scheduler) Cancel(id string) error {
	if err := s.store.Remove(id); err != nil {
		return err
	}
	return s.Reload()
}

// SyncMedicines replaces every medicine reminder with one daily entry per
// stored medicine, at its time of day. Called after any medicine change.
func (s *Scheduler) SyncMedicines(medicines []record.Medicine) error {
	if err := s.store.RemoveBySource("medicine:"); err != nil {
		return err
	}
	for _, m := range medicines {
		hour, minute, err := parseTimeOfDay(m.TimeOfDay)
		if err != nil {
			log.Printf("[remind] medicine %q has bad time %q, skipping: %v", m.Name, m.TimeOfDay, err)
			continue
		}
		body := fmt.Sprintf("Time to take %s", m.Dosage)
		if m.Notes != "" {
			body += " - " + m.Notes
		}
		r := &Reminder{
			Type:    TypeDaily,
			Title:   "Medicine Reminder | " + m.Name,
			Body:    body,
			Hour:    hour,
			Minute:  minute,
			Source:  "medicine:" + m.Name,
			Enabled: true,
		}
		if err := s.store.Add(r); err != nil {
			return err
		}
	}
	return s.Reload()
}

// loadLocked registers all enabled reminders. Must be called with s.mu held.
func (s *Scheduler) loadLocked() error {
	reminders, err := s.store.Load()
	if err != nil {
		return err
	}

	now := time.Now()
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		switch r.Type {
		case TypeOnce:
			s.registerOnce(r, now)
		case TypeDaily:
			s.registerDaily(r)
		default:
			log.Printf("[remind] unknown reminder type %q for id=%s, skipping", r.Type, r.ID)
		}
	}
	return nil
}

// registerOnce schedules a one-shot timer. Must be called with s.mu held.
func (s *Scheduler) registerOnce(r *Reminder, now time.Time) {
	if r.At == nil {
		log.Printf("[remind] once reminder id=%s has no 'at' time, skipping", r.ID)
		return
	}
	delay := r.At.Sub(now)
	if delay <= 0 {
		// Already in the past; fire immediately then clean up.
		log.Printf("[remind] once reminder id=%s is in the past, firing immediately", r.ID)
		go s.fireOnce(r)
		return
	}

	id := r.ID
	title := r.Title
	body := r.Body

	t := time.AfterFunc(delay, func() {
		log.Printf("[remind] once reminder id=%s fired", id)
		s.deliver(title, body)
		if err := s.store.Remove(id); err != nil {
			log.Printf("[remind] failed to remove once reminder id=%s: %v", id, err)
		}
	})
	s.timers = append(s.timers, t)
	log.Printf("[remind] registered once reminder id=%s fires in %s", id, delay.Round(time.Second))
}

// fireOnce delivers a past-due one-shot reminder and removes it from disk.
func (s *Scheduler) fireOnce(r *Reminder) {
	s.deliver(r.Title, r.Body)
	if err := s.store.Remove(r.ID); err != nil {
		log.Printf("[remind] failed to remove once reminder id=%s: %v", r.ID, err)
	}
}

// registerDaily registers a cron-driven reminder. Must be called with s.mu held.
func (s *Scheduler) registerDaily(r *Reminder) {
	id := r.ID
	title := r.Title
	body := r.Body

	expr := fmt.Sprintf("%d %d * * *", r.Minute, r.Hour)
	_, err := s.cron.AddFunc(expr, func() {
		log.Printf("[remind] daily reminder id=%s fired", id)
		s.deliver(title, body)
	})
	if err != nil {
		log.Printf("[remind] failed to register cron for reminder id=%s expr=%q: %v", id, expr, err)
		return
	}
	log.Printf("[remind] registered daily reminder id=%s at %02d:%02d", id, r.Hour, r.Minute)
}

// deliver hands the notification to the sender. Failures never propagate.
func (s *Scheduler) deliver(title, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(notify.Notification{Title: title, Message: body, Sound: true}); err != nil {
		log.Printf("[remind] delivery failed: %v", err)
	}
}

// parseTimeOfDay parses "HH:MM" in 24-hour form.
func parseTimeOfDay(v string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(v, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("out of range")
	}
	return hour, minute, nil
}

// Package notify delivers reminders and alarms to the user's desktop and,
// optionally, to a caregiver's messaging channel.
package notify

import "strings"

// Notification is one deliverable alert.
type Notification struct {
	Title   string
	Message string
	Sound   bool
}

// Notifier sends notifications. Senders are best effort: a failed delivery is
// the sender's problem to log, never the conversation's.
type Notifier interface {
	Send(n Notification) error
	Name() string
}

// NewDesktopNotifier returns the platform-specific desktop notification sender.
func NewDesktopNotifier() Notifier {
	return newPlatformNotifier()
}

// MultiNotifier fans a notification out to several senders, e.g. the desktop
// plus a caregiver webhook. All senders are attempted; the first error wins.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a MultiNotifier from the given senders.
func NewMultiNotifier(ns ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: ns}
}

// Send dispatches the notification to all registered senders.
func (m *MultiNotifier) Send(n Notification) error {
	var firstErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Name returns the combined sender name.
func (m *MultiNotifier) Name() string {
	names := make([]string, len(m.notifiers))
	for i, n := range m.notifiers {
		names[i] = n.Name()
	}
	return "multi(" + strings.Join(names, ",") + ")"
}

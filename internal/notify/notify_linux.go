//go:build linux

package notify

import (
	"log"
	"os/exec"
)

type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return &linuxNotifier{}
}

func (l *linuxNotifier) Send(n Notification) error {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		log.Printf("notify: notify-send not found, skipping desktop notification")
		return nil
	}

	// Reminders stay on screen until dismissed; an elderly user may not be
	// at the machine the moment they fire.
	args := []string{"--urgency=critical", n.Title, n.Message}
	if n.Sound {
		args = append(args, "--hint=string:sound-name:alarm-clock-elapsed")
	}
	return exec.Command(path, args...).Run()
}

func (l *linuxNotifier) Name() string { return "linux" }

// Package timefmt renders durations and clock times the way the assistant
// speaks them.
package timefmt

import (
	"fmt"
	"time"
)

// FormatMinutes renders a minute count as spoken text: "5 mins", "1 min",
// "2 hours", "1 hour 5 mins". Each unit pluralizes independently.
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min%s", minutes, plural(minutes))
	}

	hours := minutes / 60
	remaining := minutes % 60
	if remaining == 0 {
		return fmt.Sprintf("%d hour%s", hours, plural(hours))
	}
	return fmt.Sprintf("%d hour%s %d min%s", hours, plural(hours), remaining, plural(remaining))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Clock renders a time as "3:04 PM".
func Clock(t time.Time) string {
	return t.Format("3:04 PM")
}

// NextOccurrence returns the next time of day hh:mm after now, today if still
// ahead, otherwise tomorrow.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Minutes is the duration formatter handed to the dialogue engine.
type Minutes struct{}

func (Minutes) Format(minutes int) string { return FormatMinutes(minutes) }

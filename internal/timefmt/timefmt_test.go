package timefmt

import (
	"testing"
	"time"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{1, "1 min"},
		{5, "5 mins"},
		{59, "59 mins"},
		{60, "1 hour"},
		{61, "1 hour 1 min"},
		{65, "1 hour 5 mins"},
		{120, "2 hours"},
		{125, "2 hours 5 mins"},
		{121, "2 hours 1 min"},
	}

	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestClock(t *testing.T) {
	at := time.Date(2025, 3, 1, 16, 5, 0, 0, time.UTC)
	if got := Clock(at); got != "4:05 PM" {
		t.Fatalf("Clock() = %q, want %q", got, "4:05 PM")
	}
	at = time.Date(2025, 3, 2, 4, 30, 0, 0, time.UTC)
	if got := Clock(at); got != "4:30 AM" {
		t.Fatalf("Clock() = %q, want %q", got, "4:30 AM")
	}
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2025, 3, 1, 21, 30, 0, 0, time.UTC)

	// 7:00 already passed today — expect tomorrow.
	got := NextOccurrence(now, 7, 0)
	want := time.Date(2025, 3, 2, 7, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("NextOccurrence() = %v, want %v", got, want)
	}

	// 22:00 is still ahead today.
	got = NextOccurrence(now, 22, 0)
	want = time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("NextOccurrence() = %v, want %v", got, want)
	}

	// Exactly now rolls to tomorrow.
	got = NextOccurrence(now, 21, 30)
	want = time.Date(2025, 3, 2, 21, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("NextOccurrence() = %v, want %v", got, want)
	}
}

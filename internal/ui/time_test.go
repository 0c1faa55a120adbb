package ui

import (
	"testing"
	"time"
)

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m"},
		{59 * time.Minute, "59m"},
		{2 * time.Hour, "2h"},
		{26 * time.Hour, "1d"},
		{-time.Minute, "0s"},
	}

	for _, tc := range cases {
		if got := FormatDurationShort(tc.duration); got != tc.want {
			t.Errorf("FormatDurationShort(%v) = %q, want %q", tc.duration, got, tc.want)
		}
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := FormatTimeAgo(time.Time{}, now); got != "-" {
		t.Errorf("zero time = %q, want -", got)
	}
	if got := FormatTimeAgo(now.Add(-5*time.Minute), now); got != "5m ago" {
		t.Errorf("got %q, want 5m ago", got)
	}
}

func TestFormatDue(t *testing.T) {
	t.Setenv("TERM", "dumb")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	if got := FormatDue(nil, false, now); got != "-" {
		t.Errorf("nil due = %q, want -", got)
	}
	if got := FormatDue(&future, false, now); got != "2025-06-03" {
		t.Errorf("future due = %q", got)
	}
	if got := FormatDue(&past, false, now); got != "2025-05-30 (2d overdue)" {
		t.Errorf("overdue = %q", got)
	}
	if got := FormatDue(&past, true, now); got != "2025-05-30" {
		t.Errorf("completed overdue should not alert, got %q", got)
	}
}

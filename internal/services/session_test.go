package services

import (
	"errors"
	"testing"
	"time"

	"github.com/teamtempo/engage-backend/internal/types"
)

func TestValidateSessionWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		start   time.Time
		until   time.Time
		wantErr error
	}{
		{name: "valid_future_window", start: now.Add(time.Hour), until: now.Add(2 * time.Hour), wantErr: nil},
		{name: "starts_now", start: now, until: now.Add(time.Hour), wantErr: nil},
		{name: "start_equals_until", start: now.Add(time.Hour), until: now.Add(time.Hour), wantErr: ErrSessionChronology},
		{name: "start_after_until", start: now.Add(2 * time.Hour), until: now.Add(time.Hour), wantErr: ErrSessionChronology},
		{name: "starts_in_past", start: now.Add(-time.Minute), until: now.Add(time.Hour), wantErr: ErrSessionStartsInPast},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSessionWindow(tc.start, tc.until, now)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("validateSessionWindow: got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSessionAliveAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session := &types.Session{
		Start: now.Add(-time.Hour),
		Until: now.Add(time.Hour),
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "mid_window", at: now, want: true},
		{name: "exactly_start", at: session.Start, want: true},
		{name: "before_start", at: session.Start.Add(-time.Second), want: false},
		{name: "exactly_until_is_closed", at: session.Until, want: false},
		{name: "after_until", at: session.Until.Add(time.Second), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sessionAliveAt(session, tc.at); got != tc.want {
				t.Fatalf("sessionAliveAt(%v)=%v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

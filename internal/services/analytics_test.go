package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/types"
)

func TestSessionValue(t *testing.T) {
	if got := sessionValue(nil, 1); got != nil {
		t.Fatalf("sessionValue(no records)=%v, want nil", *got)
	}

	got := sessionValue([]float64{50, 100}, 1)
	if got == nil || *got != 75 {
		t.Fatalf("sessionValue([50 100], 1)=%v, want 75", got)
	}

	got = sessionValue([]float64{50, 100}, 1.5)
	if got == nil || *got != 112.5 {
		t.Fatalf("sessionValue([50 100], 1.5)=%v, want 112.5", got)
	}

	// A single zero-valued record is still data; only the absence of
	// records yields nil.
	got = sessionValue([]float64{0}, 1)
	if got == nil || *got != 0 {
		t.Fatalf("sessionValue([0], 1)=%v, want 0", got)
	}
}

func TestChartDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := chartDate(now.Add(-time.Hour), now); !got.Equal(now.Add(-time.Hour)) {
		t.Fatalf("ended session should be stamped with until, got %v", got)
	}
	if got := chartDate(now.Add(time.Hour), now); !got.Equal(now) {
		t.Fatalf("live session should be stamped with now, got %v", got)
	}
	if got := chartDate(now, now); !got.Equal(now) {
		t.Fatalf("session ending exactly now should be stamped with until, got %v", got)
	}
}

func TestLatestSessionPerTheme(t *testing.T) {
	themeA := uuid.New()
	themeB := uuid.New()
	now := time.Now().UTC()

	// Newest first, matching the repo's ordering.
	sessions := []*types.Session{
		{ID: uuid.New(), ThemeID: themeA, Until: now},
		{ID: uuid.New(), ThemeID: themeB, Until: now.Add(-24 * time.Hour)},
		{ID: uuid.New(), ThemeID: themeA, Until: now.Add(-48 * time.Hour)},
	}

	got := latestSessionPerTheme(sessions)
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].ID != sessions[0].ID {
		t.Fatalf("expected newest session of theme A to win")
	}
	if got[1].ID != sessions[1].ID {
		t.Fatalf("expected sole session of theme B to survive")
	}

	if got := latestSessionPerTheme(nil); len(got) != 0 {
		t.Fatalf("expected empty reduction, got %d", len(got))
	}
}

package progress

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		t.Fatalf("bad test time %q: %v", s, err)
	}
	return ts
}

func TestAdvance_FirstCompletionStartsAtOne(t *testing.T) {
	got := Advance(Streak{}, day(t, "2024-03-10 09:00"), time.UTC)
	if got.Current != 1 {
		t.Errorf("expected streak 1, got %d", got.Current)
	}
	if got.LastCompleted != "2024-03-10" {
		t.Errorf("expected last completed 2024-03-10, got %q", got.LastCompleted)
	}
}

func TestAdvance_ThreeConsecutiveDays(t *testing.T) {
	s := Streak{}
	s = Advance(s, day(t, "2024-03-10 09:00"), time.UTC)
	s = Advance(s, day(t, "2024-03-11 23:59"), time.UTC)
	s = Advance(s, day(t, "2024-03-12 00:01"), time.UTC)

	if s.Current != 3 {
		t.Errorf("expected streak 3 after three consecutive days, got %d", s.Current)
	}
}

func TestAdvance_GapResets(t *testing.T) {
	s := Advance(Streak{}, day(t, "2024-03-10 12:00"), time.UTC)
	s = Advance(s, day(t, "2024-03-12 12:00"), time.UTC) // skipped the 11th

	if s.Current != 1 {
		t.Errorf("expected streak reset to 1 after a gap, got %d", s.Current)
	}
	if s.LastCompleted != "2024-03-12" {
		t.Errorf("expected last completed 2024-03-12, got %q", s.LastCompleted)
	}
}

func TestAdvance_SameDayUnchanged(t *testing.T) {
	s := Advance(Streak{}, day(t, "2024-03-10 08:00"), time.UTC)
	s = Advance(s, day(t, "2024-03-11 08:00"), time.UTC)
	before := s

	s = Advance(s, day(t, "2024-03-11 20:00"), time.UTC)
	if s != before {
		t.Errorf("second completion on the same day changed the streak: %+v -> %+v", before, s)
	}
}

func TestAdvance_MonthBoundary(t *testing.T) {
	s := Advance(Streak{}, day(t, "2024-02-29 12:00"), time.UTC)
	s = Advance(s, day(t, "2024-03-01 12:00"), time.UTC)

	if s.Current != 2 {
		t.Errorf("expected streak 2 across month boundary, got %d", s.Current)
	}
}

func TestAdvance_TimezoneDefinesToday(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 23:30 UTC on the 10th is already the 11th in Tokyo.
	event := day(t, "2024-03-10 23:30")

	utcStreak := Advance(Streak{}, event, time.UTC)
	tokyoStreak := Advance(Streak{}, event, tokyo)

	if utcStreak.LastCompleted != "2024-03-10" {
		t.Errorf("UTC day = %q, want 2024-03-10", utcStreak.LastCompleted)
	}
	if tokyoStreak.LastCompleted != "2024-03-11" {
		t.Errorf("Tokyo day = %q, want 2024-03-11", tokyoStreak.LastCompleted)
	}
}

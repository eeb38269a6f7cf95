package entities

import (
	"testing"
	"time"
)

func TestIsFixedSlot(t *testing.T) {
	for number := 1; number <= SessionsPerRoundtable; number++ {
		s := &Session{SessionNumber: number}
		want := number == 1 || number == SessionsPerRoundtable
		if s.IsFixedSlot() != want {
			t.Errorf("session %d: IsFixedSlot = %v, want %v", number, !want, want)
		}
	}
}

func TestIsDelivered(t *testing.T) {
	cases := map[SessionStatus]bool{
		SessionStatusPlanned:      false,
		SessionStatusScheduled:    false,
		SessionStatusCompleted:    true,
		SessionStatusFeedbackSent: true,
		SessionStatusCancelled:    false,
	}
	for status, want := range cases {
		s := &Session{Status: status}
		if s.IsDelivered() != want {
			t.Errorf("IsDelivered for %s: got %v, want %v", status, !want, want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	past := now.Add(-3 * time.Hour)

	s := &Session{Status: SessionStatusScheduled, ScheduledAt: &past, DurationMin: 90}
	if !s.IsOverdue(now) {
		t.Error("scheduled session past its end should be overdue")
	}

	delivered := &Session{Status: SessionStatusCompleted, ScheduledAt: &past, DurationMin: 90}
	if delivered.IsOverdue(now) {
		t.Error("delivered session should never be overdue")
	}

	cancelled := &Session{Status: SessionStatusCancelled, ScheduledAt: &past, DurationMin: 90}
	if cancelled.IsOverdue(now) {
		t.Error("cancelled session should never be overdue")
	}

	undated := &Session{Status: SessionStatusPlanned}
	if undated.IsOverdue(now) {
		t.Error("undated session should never be overdue")
	}

	running := now.Add(-time.Hour)
	inWindow := &Session{Status: SessionStatusScheduled, ScheduledAt: &running, DurationMin: 90}
	if inWindow.IsOverdue(now) {
		t.Error("session still inside its duration should not be overdue")
	}
}

package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
	"github.com/roundtable-hub/roundtable/internal/usecase/usecasetest"
)

// monday is a deliberate weekday anchor so weekend-skip tests stay readable
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestGenerateDates_WeeklyCadence(t *testing.T) {
	dates := GenerateDates(Options{StartDate: monday, Frequency: FrequencyWeekly})

	for i, date := range dates {
		want := time.Date(2026, 3, 2+7*i, 14, 0, 0, 0, time.UTC)
		if !date.Equal(want) {
			t.Errorf("session %d: got %v, want %v", i+1, date, want)
		}
	}
	if gap := dates[9].Sub(dates[0]); gap != 9*7*24*time.Hour {
		t.Errorf("weekly program should span 9 weeks, spans %v", gap)
	}
}

func TestGenerateDates_BiWeeklyCadence(t *testing.T) {
	dates := GenerateDates(Options{StartDate: monday, Frequency: FrequencyBiWeekly})

	if gap := dates[1].Sub(dates[0]); gap != 14*24*time.Hour {
		t.Errorf("bi-weekly sessions should be 2 weeks apart, got %v", gap)
	}
	if gap := dates[9].Sub(dates[0]); gap != 18*7*24*time.Hour {
		t.Errorf("bi-weekly program should span 18 weeks, spans %v", gap)
	}
}

func TestGenerateDates_PreferredTime(t *testing.T) {
	dates := GenerateDates(Options{
		StartDate:     monday,
		PreferredTime: &TimeOfDay{Hour: 9, Minute: 30},
	})
	for i, date := range dates {
		if date.Hour() != 9 || date.Minute() != 30 {
			t.Errorf("session %d: got %02d:%02d, want 09:30", i+1, date.Hour(), date.Minute())
		}
	}
}

func TestGenerateDates_SkipWeekendsRollsForward(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	dates := GenerateDates(Options{StartDate: saturday, SkipWeekends: true})

	for i, date := range dates {
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			t.Errorf("session %d landed on %s", i+1, date.Weekday())
		}
	}
	// Saturday rolls forward to Monday, never back to Friday.
	if dates[0].Weekday() != time.Monday {
		t.Errorf("first session: got %s, want Monday", dates[0].Weekday())
	}
	if dates[0].Before(saturday) {
		t.Error("skip-weekends must never move a session earlier")
	}
}

func TestGenerateDates_WithoutSkipKeepsWeekends(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	dates := GenerateDates(Options{StartDate: saturday})
	if dates[0].Weekday() != time.Saturday {
		t.Errorf("got %s, want Saturday", dates[0].Weekday())
	}
}

func TestGenerateDates_Deterministic(t *testing.T) {
	opts := Options{StartDate: monday, Frequency: FrequencyBiWeekly, SkipWeekends: true}
	first := GenerateDates(opts)
	second := GenerateDates(opts)
	if first != second {
		t.Error("identical options must produce identical dates")
	}
}

type schedulingFixture struct {
	service         *SchedulingService
	roundtableRepo  *usecasetest.RoundtableRepo
	topicRepo       *usecasetest.TopicRepo
	sessionRepo     *usecasetest.SessionRepo
	participantRepo *usecasetest.ParticipantRepo
	notifier        *usecasetest.Notifier
}

func newSchedulingFixture() *schedulingFixture {
	f := &schedulingFixture{
		roundtableRepo:  usecasetest.NewRoundtableRepo(),
		topicRepo:       usecasetest.NewTopicRepo(),
		sessionRepo:     usecasetest.NewSessionRepo(),
		participantRepo: usecasetest.NewParticipantRepo(),
		notifier:        &usecasetest.Notifier{},
	}
	f.service = NewSchedulingService(
		f.roundtableRepo,
		f.topicRepo,
		f.sessionRepo,
		f.participantRepo,
		usecasetest.TxManager{},
		f.notifier,
		zap.NewNop(),
	)
	return f
}

// seedRoundtable creates a scheduled roundtable with 10 topics (the first 8
// selected) and 10 planned sessions
func (f *schedulingFixture) seedRoundtable(t *testing.T) *entities.Roundtable {
	t.Helper()
	ctx := context.Background()

	rt := &entities.Roundtable{Status: entities.RoundtableStatusScheduled}
	if err := f.roundtableRepo.Create(ctx, rt); err != nil {
		t.Fatalf("seed roundtable: %v", err)
	}

	topics := make([]*entities.Topic, 0, entities.TopicsPerRoundtable)
	for i := 1; i <= entities.TopicsPerRoundtable; i++ {
		topics = append(topics, &entities.Topic{
			RoundtableID: rt.ID,
			Title:        "topic",
			Position:     i,
			IsSelected:   i <= entities.SelectedTopicsRequired,
		})
	}
	if err := f.topicRepo.CreateBatch(ctx, topics); err != nil {
		t.Fatalf("seed topics: %v", err)
	}

	sessions := make([]*entities.Session, 0, entities.SessionsPerRoundtable)
	for i := 1; i <= entities.SessionsPerRoundtable; i++ {
		sessions = append(sessions, &entities.Session{
			RoundtableID:  rt.ID,
			SessionNumber: i,
			Status:        entities.SessionStatusPlanned,
		})
	}
	if err := f.sessionRepo.CreateBatch(ctx, sessions); err != nil {
		t.Fatalf("seed sessions: %v", err)
	}
	return rt
}

func TestScheduleSessions(t *testing.T) {
	f := newSchedulingFixture()
	rt := f.seedRoundtable(t)
	ctx := context.Background()

	sessions, err := f.service.ScheduleSessions(ctx, rt.ID, Options{
		StartDate:          monday,
		SessionDurationMin: 60,
	})
	if err != nil {
		t.Fatalf("ScheduleSessions: %v", err)
	}
	if len(sessions) != entities.SessionsPerRoundtable {
		t.Fatalf("got %d sessions, want %d", len(sessions), entities.SessionsPerRoundtable)
	}

	finalized, _ := f.topicRepo.FindSelectedByRoundtableID(ctx, rt.ID)
	for _, session := range sessions {
		if session.ScheduledAt == nil {
			t.Fatalf("session %d has no date", session.SessionNumber)
		}
		if session.Status != entities.SessionStatusScheduled {
			t.Errorf("session %d status = %s", session.SessionNumber, session.Status)
		}
		if session.DurationMin != 60 {
			t.Errorf("session %d duration = %d, want 60", session.SessionNumber, session.DurationMin)
		}

		if session.IsFixedSlot() {
			if session.TopicID != nil {
				t.Errorf("fixed slot %d must not carry a topic", session.SessionNumber)
			}
			continue
		}
		want := finalized[(session.SessionNumber-2)%len(finalized)].ID
		if session.TopicID == nil || *session.TopicID != want {
			t.Errorf("session %d topic mismatch", session.SessionNumber)
		}
	}

	// With exactly 8 finalized topics sessions 2-9 map 1:1: every topic used once.
	used := make(map[uuid.UUID]int)
	for _, session := range sessions {
		if session.TopicID != nil {
			used[*session.TopicID]++
		}
	}
	if len(used) != entities.SelectedTopicsRequired {
		t.Errorf("got %d distinct topics assigned, want %d", len(used), entities.SelectedTopicsRequired)
	}
	for id, n := range used {
		if n != 1 {
			t.Errorf("topic %s assigned %d times", id, n)
		}
	}

	stored, _ := f.roundtableRepo.FindByID(ctx, rt.ID)
	if stored.StartDate == nil || !stored.StartDate.Equal(*sessions[0].ScheduledAt) {
		t.Error("roundtable start date not set from session 1")
	}
	if stored.EndDate == nil || !stored.EndDate.Equal(*sessions[9].ScheduledAt) {
		t.Error("roundtable end date not set from session 10")
	}
	var persisted Options
	if err := json.Unmarshal(stored.Settings, &persisted); err != nil {
		t.Fatalf("settings not persisted: %v", err)
	}
	if persisted.SessionDurationMin != 60 {
		t.Errorf("persisted duration = %d, want 60", persisted.SessionDurationMin)
	}
}

func TestScheduleSessions_RequiresScheduledState(t *testing.T) {
	f := newSchedulingFixture()
	rt := f.seedRoundtable(t)
	ctx := context.Background()

	rt.Status = entities.RoundtableStatusTopicVoting
	_, err := f.service.ScheduleSessions(ctx, rt.ID, Options{StartDate: monday})
	if !errors.Is(err, usecaseErrors.ErrInvalidState) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}
}

func TestScheduleSessions_RequiresFinalizedTopics(t *testing.T) {
	f := newSchedulingFixture()
	rt := f.seedRoundtable(t)
	ctx := context.Background()

	for _, topic := range f.topicRepo.Items {
		topic.IsSelected = false
	}
	_, err := f.service.ScheduleSessions(ctx, rt.ID, Options{StartDate: monday})
	if !errors.Is(err, usecaseErrors.ErrTopicsNotFinalized) {
		t.Fatalf("got %v, want ErrTopicsNotFinalized", err)
	}
}

func TestRescheduleSession(t *testing.T) {
	f := newSchedulingFixture()
	rt := f.seedRoundtable(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		f.participantRepo.Create(ctx, &entities.Participant{
			RoundtableID: rt.ID, Email: email, Status: entities.ParticipantStatusActive,
		})
	}
	dropped := &entities.Participant{
		RoundtableID: rt.ID, Email: "gone@example.com", Status: entities.ParticipantStatusDroppedOut,
	}
	f.participantRepo.Create(ctx, dropped)

	sessions, _ := f.sessionRepo.FindByRoundtableID(ctx, rt.ID)
	session := sessions[2]
	original := monday.Add(14 * 24 * time.Hour)
	session.ScheduledAt = &original
	session.Trainer = &entities.Trainer{Email: "trainer@example.com"}

	newDate := original.Add(48 * time.Hour)
	updated, err := f.service.RescheduleSession(ctx, session.ID, newDate, "trainer unavailable")
	if err != nil {
		t.Fatalf("RescheduleSession: %v", err)
	}
	if updated.ScheduledAt == nil || !updated.ScheduledAt.Equal(newDate) {
		t.Fatal("session date not moved")
	}

	var log []map[string]interface{}
	if err := json.Unmarshal(updated.RescheduleLog, &log); err != nil {
		t.Fatalf("reschedule log unreadable: %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("got %d log entries, want 1", len(log))
	}
	if log[0]["reason"] != "trainer unavailable" {
		t.Errorf("log reason = %v", log[0]["reason"])
	}

	// Trainer plus the two active participants; the dropped-out one is skipped.
	if len(f.notifier.Sent) != 3 {
		t.Fatalf("got %d notifications, want 3", len(f.notifier.Sent))
	}
	if got := f.notifier.SentTo("gone@example.com"); got != nil {
		t.Error("dropped-out participant must not be notified")
	}

	// A second move appends to the log instead of replacing it.
	if _, err := f.service.RescheduleSession(ctx, session.ID, newDate.Add(24*time.Hour), "room clash"); err != nil {
		t.Fatalf("second reschedule: %v", err)
	}
	stored, _ := f.sessionRepo.FindByID(ctx, session.ID)
	log = nil
	if err := json.Unmarshal(stored.RescheduleLog, &log); err != nil {
		t.Fatalf("reschedule log unreadable: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("got %d log entries after second move, want 2", len(log))
	}
}

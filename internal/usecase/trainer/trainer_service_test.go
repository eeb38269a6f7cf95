package trainer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
	"github.com/roundtable-hub/roundtable/internal/usecase/usecasetest"
)

var slot = time.Date(2026, 4, 7, 14, 0, 0, 0, time.UTC)

type trainerFixture struct {
	service     *TrainerService
	trainerRepo *usecasetest.TrainerRepo
	sessionRepo *usecasetest.SessionRepo
	notifier    *usecasetest.Notifier
}

func newTrainerFixture() *trainerFixture {
	f := &trainerFixture{
		trainerRepo: usecasetest.NewTrainerRepo(),
		sessionRepo: usecasetest.NewSessionRepo(),
		notifier:    &usecasetest.Notifier{},
	}
	f.service = NewTrainerService(f.trainerRepo, f.sessionRepo, f.notifier, zap.NewNop())
	return f
}

func (f *trainerFixture) addTrainer(t *testing.T, email string, active bool) *entities.Trainer {
	t.Helper()
	trainer := &entities.Trainer{Name: "Trainer", Email: email, IsActive: active}
	if err := f.trainerRepo.Create(context.Background(), trainer); err != nil {
		t.Fatalf("seed trainer: %v", err)
	}
	return trainer
}

func (f *trainerFixture) addSession(t *testing.T, roundtableID uuid.UUID, number int, at *time.Time, trainerID *uuid.UUID) *entities.Session {
	t.Helper()
	session := &entities.Session{
		RoundtableID:  roundtableID,
		SessionNumber: number,
		ScheduledAt:   at,
		TrainerID:     trainerID,
		Status:        entities.SessionStatusScheduled,
	}
	if err := f.sessionRepo.CreateBatch(context.Background(), []*entities.Session{session}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return session
}

func TestFindConflicts_BufferWindow(t *testing.T) {
	f := newTrainerFixture()
	ctx := context.Background()
	trainer := f.addTrainer(t, "t@example.com", true)

	cases := []struct {
		name     string
		offset   time.Duration
		conflict bool
	}{
		{"same moment", 0, true},
		{"just inside before", -AssignmentBuffer + time.Minute, true},
		{"just inside after", AssignmentBuffer - time.Minute, true},
		{"exactly on the edge", AssignmentBuffer, true},
		{"outside before", -AssignmentBuffer - time.Minute, false},
		{"outside after", AssignmentBuffer + time.Minute, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			f.sessionRepo.Items = map[uuid.UUID]*entities.Session{}
			existing := slot.Add(tt.offset)
			f.addSession(t, uuid.New(), 2, &existing, &trainer.ID)

			conflicts, err := f.service.FindConflicts(ctx, trainer.ID, slot, nil)
			if err != nil {
				t.Fatalf("FindConflicts: %v", err)
			}
			if (len(conflicts) > 0) != tt.conflict {
				t.Fatalf("offset %v: conflict = %v, want %v", tt.offset, len(conflicts) > 0, tt.conflict)
			}
		})
	}
}

func TestFindConflicts_IgnoresOtherTrainers(t *testing.T) {
	f := newTrainerFixture()
	trainer := f.addTrainer(t, "t@example.com", true)
	other := f.addTrainer(t, "other@example.com", true)
	f.addSession(t, uuid.New(), 2, &slot, &other.ID)

	conflicts, err := f.service.FindConflicts(context.Background(), trainer.ID, slot, nil)
	if err != nil {
		t.Fatalf("FindConflicts: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatal("another trainer's session must not conflict")
	}
}

func TestAssign(t *testing.T) {
	f := newTrainerFixture()
	ctx := context.Background()
	trainer := f.addTrainer(t, "t@example.com", true)
	session := f.addSession(t, uuid.New(), 3, &slot, nil)

	assigned, err := f.service.Assign(ctx, session.ID, trainer.ID, false)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assigned.TrainerID == nil || *assigned.TrainerID != trainer.ID {
		t.Fatal("trainer not attached to session")
	}
	if got := f.notifier.SentTo("t@example.com"); len(got) != 1 {
		t.Fatalf("got %d assignment notifications, want 1", len(got))
	}
}

func TestAssign_ConflictAborts(t *testing.T) {
	f := newTrainerFixture()
	ctx := context.Background()
	trainer := f.addTrainer(t, "t@example.com", true)

	near := slot.Add(30 * time.Minute)
	busy := f.addSession(t, uuid.New(), 2, &near, &trainer.ID)
	session := f.addSession(t, uuid.New(), 3, &slot, nil)

	_, err := f.service.Assign(ctx, session.ID, trainer.ID, false)
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if len(conflictErr.Sessions) != 1 || conflictErr.Sessions[0].ID != busy.ID {
		t.Fatal("conflict error must carry the colliding session")
	}

	stored, _ := f.sessionRepo.FindByID(ctx, session.ID)
	if stored.TrainerID != nil {
		t.Fatal("conflicting assignment must not be persisted")
	}
}

func TestAssign_SkipConflictCheckOverrides(t *testing.T) {
	f := newTrainerFixture()
	ctx := context.Background()
	trainer := f.addTrainer(t, "t@example.com", true)

	near := slot.Add(30 * time.Minute)
	f.addSession(t, uuid.New(), 2, &near, &trainer.ID)
	session := f.addSession(t, uuid.New(), 3, &slot, nil)

	assigned, err := f.service.Assign(ctx, session.ID, trainer.ID, true)
	if err != nil {
		t.Fatalf("Assign with override: %v", err)
	}
	if assigned.TrainerID == nil || *assigned.TrainerID != trainer.ID {
		t.Fatal("override assignment not persisted")
	}
}

func TestAssign_InactiveTrainer(t *testing.T) {
	f := newTrainerFixture()
	trainer := f.addTrainer(t, "t@example.com", false)
	session := f.addSession(t, uuid.New(), 3, &slot, nil)

	_, err := f.service.Assign(context.Background(), session.ID, trainer.ID, false)
	if !errors.Is(err, usecaseErrors.ErrTrainerInactive) {
		t.Fatalf("got %v, want ErrTrainerInactive", err)
	}
}

func TestAutoAssign_RoundRobin(t *testing.T) {
	f := newTrainerFixture()
	ctx := context.Background()
	roundtableID := uuid.New()

	first := f.addTrainer(t, "a@example.com", true)
	second := f.addTrainer(t, "b@example.com", true)
	f.addTrainer(t, "inactive@example.com", false)

	// Sessions 1 and 10 are fixed slots; 2-9 are a week apart so no slot
	// conflicts with another.
	for i := 1; i <= entities.SessionsPerRoundtable; i++ {
		at := slot.AddDate(0, 0, 7*(i-1))
		f.addSession(t, roundtableID, i, &at, nil)
	}

	assigned, err := f.service.AutoAssign(ctx, roundtableID)
	if err != nil {
		t.Fatalf("AutoAssign: %v", err)
	}
	if len(assigned) != 8 {
		t.Fatalf("got %d assigned sessions, want 8", len(assigned))
	}

	counts := map[uuid.UUID]int{}
	for _, session := range assigned {
		if session.IsFixedSlot() {
			t.Errorf("fixed slot %d was assigned", session.SessionNumber)
		}
		if session.TrainerID == nil {
			t.Fatalf("session %d reported assigned without a trainer", session.SessionNumber)
		}
		counts[*session.TrainerID]++
	}
	// Two active trainers alternate over 8 sessions.
	if counts[first.ID] != 4 || counts[second.ID] != 4 {
		t.Errorf("round-robin split = %d/%d, want 4/4", counts[first.ID], counts[second.ID])
	}

	sessions, _ := f.sessionRepo.FindByRoundtableID(ctx, roundtableID)
	if sessions[0].TrainerID != nil || sessions[9].TrainerID != nil {
		t.Error("fixed slots must stay unassigned")
	}
}

func TestAutoAssign_NoActiveTrainers(t *testing.T) {
	f := newTrainerFixture()
	f.addTrainer(t, "inactive@example.com", false)

	_, err := f.service.AutoAssign(context.Background(), uuid.New())
	if !errors.Is(err, usecaseErrors.ErrNoActiveTrainers) {
		t.Fatalf("got %v, want ErrNoActiveTrainers", err)
	}
}

func TestAutoAssign_SkipsAlreadyAssignedAndUndated(t *testing.T) {
	f := newTrainerFixture()
	ctx := context.Background()
	roundtableID := uuid.New()
	trainer := f.addTrainer(t, "a@example.com", true)
	busy := f.addTrainer(t, "b@example.com", true)

	preassigned := f.addSession(t, roundtableID, 2, &slot, &busy.ID)
	undatedNumber := 3
	f.addSession(t, roundtableID, undatedNumber, nil, nil)
	at := slot.AddDate(0, 0, 7)
	open := f.addSession(t, roundtableID, 4, &at, nil)

	assigned, err := f.service.AutoAssign(ctx, roundtableID)
	if err != nil {
		t.Fatalf("AutoAssign: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != open.ID {
		t.Fatalf("only the open dated session should be assigned")
	}
	if assigned[0].TrainerID == nil || *assigned[0].TrainerID != trainer.ID {
		t.Error("round-robin should start with the first active trainer")
	}

	stored, _ := f.sessionRepo.FindByID(ctx, preassigned.ID)
	if *stored.TrainerID != busy.ID {
		t.Error("existing assignment must not be overwritten")
	}
}

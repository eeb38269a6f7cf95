package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// CreateBatch creates sessions in bulk (roundtable creation)
	CreateBatch(ctx context.Context, sessions []*entities.Session) error

	// FindByID retrieves a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)

	// FindByRoundtableID retrieves all sessions of a roundtable ordered by
	// session number
	FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Session, error)

	// Update updates an existing session
	Update(ctx context.Context, session *entities.Session) error

	// UpdateBatch updates multiple sessions. Callers run it inside a
	// transaction so a generated schedule is applied all-or-nothing.
	UpdateBatch(ctx context.Context, sessions []*entities.Session) error

	// UpdateQuestionsStatus updates only a session's derived questions status
	UpdateQuestionsStatus(ctx context.Context, sessionID uuid.UUID, status entities.QuestionsStatus) error

	// FindByTrainerBetween retrieves a trainer's sessions scheduled within
	// [from, to], optionally excluding one session (edit-in-place checks)
	FindByTrainerBetween(ctx context.Context, trainerID uuid.UUID, from, to time.Time, excludeSessionID *uuid.UUID) ([]*entities.Session, error)
}

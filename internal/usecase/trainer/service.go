package trainer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// AssignmentBuffer is the window around a session's start inside which the
// same trainer cannot hold another session. It is a fixed business constant
// (assumed session length plus transition time) and deliberately independent
// of the roundtable's configured session duration.
const AssignmentBuffer = 90 * time.Minute

// Service defines the interface for trainer assignment and conflict checks
type Service interface {
	// FindConflicts lists the trainer's other sessions within the buffer
	// window around the candidate time. Report-only: no mutation.
	FindConflicts(ctx context.Context, trainerID uuid.UUID, candidateTime time.Time, excludeSessionID *uuid.UUID) ([]*entities.Session, error)

	// HasConflict reports whether any such session exists
	HasConflict(ctx context.Context, trainerID uuid.UUID, candidateTime time.Time, excludeSessionID *uuid.UUID) (bool, error)

	// Assign attaches a trainer to a session. Unless skipConflictCheck is
	// set (administrative override), a conflict aborts the assignment with a
	// ConflictError carrying the colliding sessions.
	Assign(ctx context.Context, sessionID, trainerID uuid.UUID, skipConflictCheck bool) (*entities.Session, error)

	// AutoAssign distributes active trainers round-robin over the
	// roundtable's unassigned topic sessions (2-9). Best-effort fairness:
	// sessions whose slot conflicts for every trainer stay unassigned.
	AutoAssign(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Session, error)

	// CreateTrainer registers a trainer
	CreateTrainer(ctx context.Context, name, email string) (*entities.Trainer, error)
}

// ConflictError reports a scheduling collision, carrying the colliding
// sessions for caller display
type ConflictError struct {
	TrainerID uuid.UUID
	Sessions  []*entities.Session
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("trainer %s has %d conflicting session(s) within %s", e.TrainerID, len(e.Sessions), AssignmentBuffer)
}

package questions

import (
	"context"

	"github.com/google/uuid"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// Service defines the interface for the question-approval use case
type Service interface {
	// Submit replaces a session's question set with the trainer's new
	// submission and moves the session to PENDING_APPROVAL
	Submit(ctx context.Context, sessionID, trainerID uuid.UUID, texts []string) ([]*entities.Question, error)

	// GetBySession retrieves a session's questions
	GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*entities.Question, error)

	// Review applies a batch of reviewer decisions and recomputes the
	// aggregate questions status of every touched session
	Review(ctx context.Context, decisions []Decision) error
}

// Decision is one reviewer decision on one question
type Decision struct {
	QuestionID uuid.UUID
	Status     entities.QuestionStatus
	Notes      *string
	Rating     *int
}

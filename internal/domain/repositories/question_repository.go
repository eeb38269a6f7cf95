package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// QuestionRepository defines the interface for question data access
type QuestionRepository interface {
	// ReplaceForSession deletes the session's existing questions and inserts
	// the given ones. Callers run it inside a transaction.
	ReplaceForSession(ctx context.Context, sessionID uuid.UUID, questions []*entities.Question) error

	// FindBySessionID retrieves a session's questions ordered by order index
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Question, error)

	// FindByIDs retrieves questions by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Question, error)

	// Update updates an existing question
	Update(ctx context.Context, question *entities.Question) error
}

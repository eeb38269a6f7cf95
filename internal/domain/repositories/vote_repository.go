package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// VoteRepository defines the interface for vote data access
type VoteRepository interface {
	// ReplaceForParticipant deletes the participant's existing votes for the
	// roundtable and inserts the given ones. Callers run it inside a
	// transaction so the ballot is never observed half-replaced.
	ReplaceForParticipant(ctx context.Context, roundtableID, participantID uuid.UUID, votes []*entities.Vote) error

	// FindByRoundtableID retrieves all votes of a roundtable
	FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Vote, error)

	// FindByParticipant retrieves a participant's votes for a roundtable
	FindByParticipant(ctx context.Context, roundtableID, participantID uuid.UUID) ([]*entities.Vote, error)

	// CountDistinctVoters counts participants with at least one vote for the
	// roundtable
	CountDistinctVoters(ctx context.Context, roundtableID uuid.UUID) (int64, error)
}

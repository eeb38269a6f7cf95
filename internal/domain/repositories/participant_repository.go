package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// Create creates a new participant record
	Create(ctx context.Context, participant *entities.Participant) error

	// FindByID retrieves a participant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Participant, error)

	// FindByRoundtableAndEmail retrieves a participant by roundtable and email
	FindByRoundtableAndEmail(ctx context.Context, roundtableID uuid.UUID, email string) (*entities.Participant, error)

	// FindByRoundtableID retrieves all participants of a roundtable
	FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Participant, error)

	// CountActiveByRoundtableID counts participants that have not dropped out
	CountActiveByRoundtableID(ctx context.Context, roundtableID uuid.UUID) (int64, error)

	// Update updates an existing participant
	Update(ctx context.Context, participant *entities.Participant) error
}

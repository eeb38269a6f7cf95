package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// TrainerRepository defines the interface for trainer data access
type TrainerRepository interface {
	// Create creates a new trainer
	Create(ctx context.Context, trainer *entities.Trainer) error

	// FindByID retrieves a trainer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Trainer, error)

	// FindActive retrieves all active trainers ordered by creation time
	FindActive(ctx context.Context) ([]*entities.Trainer, error)

	// Update updates an existing trainer
	Update(ctx context.Context, trainer *entities.Trainer) error
}

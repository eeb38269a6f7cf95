package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	// Create creates a new client
	Create(ctx context.Context, client *entities.Client) error

	// FindByID retrieves a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error)

	// Delete deletes a client
	Delete(ctx context.Context, id uuid.UUID) error
}

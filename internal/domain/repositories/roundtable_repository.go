package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// RoundtableRepository defines the interface for roundtable data access
type RoundtableRepository interface {
	// Create creates a new roundtable
	Create(ctx context.Context, roundtable *entities.Roundtable) error

	// FindByID retrieves a roundtable by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Roundtable, error)

	// Update updates an existing roundtable
	Update(ctx context.Context, roundtable *entities.Roundtable) error

	// UpdateStatus updates only the roundtable status
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RoundtableStatus) error

	// List retrieves roundtables with filters and pagination
	List(ctx context.Context, filters RoundtableFilters) ([]*entities.Roundtable, int64, error)

	// CountNonTerminalByClientID counts a client's roundtables that are not
	// completed or cancelled
	CountNonTerminalByClientID(ctx context.Context, clientID uuid.UUID) (int64, error)
}

// RoundtableFilters represents filter options for listing roundtables
type RoundtableFilters struct {
	ClientID *uuid.UUID
	Status   *entities.RoundtableStatus
	Search   string
	Limit    int
	Offset   int
}

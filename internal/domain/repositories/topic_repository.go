package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// TopicRepository defines the interface for topic data access
type TopicRepository interface {
	// CreateBatch creates topics in bulk (roundtable creation)
	CreateBatch(ctx context.Context, topics []*entities.Topic) error

	// FindByRoundtableID retrieves all topics of a roundtable ordered by position
	FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Topic, error)

	// FindSelectedByRoundtableID retrieves the finalized topics of a
	// roundtable ordered by position
	FindSelectedByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Topic, error)

	// CountByRoundtableAndIDs counts how many of the given topic IDs belong
	// to the roundtable
	CountByRoundtableAndIDs(ctx context.Context, roundtableID uuid.UUID, topicIDs []uuid.UUID) (int64, error)

	// MarkSelected flags the given topics as selected
	MarkSelected(ctx context.Context, topicIDs []uuid.UUID) error
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// topicRepository implements the TopicRepository interface
type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(db *gorm.DB) repositories.TopicRepository {
	return &topicRepository{db: db}
}

// CreateBatch creates topics in bulk
func (r *topicRepository) CreateBatch(ctx context.Context, topics []*entities.Topic) error {
	return dbFrom(ctx, r.db).Create(topics).Error
}

// FindByRoundtableID retrieves all topics of a roundtable ordered by position
func (r *topicRepository) FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Topic, error) {
	var topics []*entities.Topic
	err := dbFrom(ctx, r.db).
		Where("roundtable_id = ?", roundtableID).
		Order("position ASC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}

// FindSelectedByRoundtableID retrieves the finalized topics of a roundtable
// ordered by position
func (r *topicRepository) FindSelectedByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Topic, error) {
	var topics []*entities.Topic
	err := dbFrom(ctx, r.db).
		Where("roundtable_id = ? AND is_selected = ?", roundtableID, true).
		Order("position ASC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}

// CountByRoundtableAndIDs counts how many of the given topic IDs belong to
// the roundtable
func (r *topicRepository) CountByRoundtableAndIDs(ctx context.Context, roundtableID uuid.UUID, topicIDs []uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).
		Model(&entities.Topic{}).
		Where("roundtable_id = ? AND id IN ?", roundtableID, topicIDs).
		Count(&count).Error
	return count, err
}

// MarkSelected flags the given topics as selected
func (r *topicRepository) MarkSelected(ctx context.Context, topicIDs []uuid.UUID) error {
	return dbFrom(ctx, r.db).
		Model(&entities.Topic{}).
		Where("id IN ?", topicIDs).
		Update("is_selected", true).Error
}

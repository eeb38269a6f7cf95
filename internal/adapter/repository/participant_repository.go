package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// participantRepository implements the ParticipantRepository interface
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &participantRepository{db: db}
}

// Create creates a new participant record
func (r *participantRepository) Create(ctx context.Context, participant *entities.Participant) error {
	return dbFrom(ctx, r.db).Create(participant).Error
}

// FindByID retrieves a participant by ID
func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Participant, error) {
	var participant entities.Participant
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByRoundtableAndEmail retrieves a participant by roundtable and email
func (r *participantRepository) FindByRoundtableAndEmail(ctx context.Context, roundtableID uuid.UUID, email string) (*entities.Participant, error) {
	var participant entities.Participant
	err := dbFrom(ctx, r.db).
		Where("roundtable_id = ? AND email = ?", roundtableID, email).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByRoundtableID retrieves all participants of a roundtable
func (r *participantRepository) FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Participant, error) {
	var participants []*entities.Participant
	err := dbFrom(ctx, r.db).
		Where("roundtable_id = ?", roundtableID).
		Order("created_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// CountActiveByRoundtableID counts participants that have not dropped out
func (r *participantRepository) CountActiveByRoundtableID(ctx context.Context, roundtableID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).
		Model(&entities.Participant{}).
		Where("roundtable_id = ? AND status <> ?", roundtableID, entities.ParticipantStatusDroppedOut).
		Count(&count).Error
	return count, err
}

// Update updates an existing participant
func (r *participantRepository) Update(ctx context.Context, participant *entities.Participant) error {
	return dbFrom(ctx, r.db).Save(participant).Error
}

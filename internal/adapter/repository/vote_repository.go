package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// voteRepository implements the VoteRepository interface
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) repositories.VoteRepository {
	return &voteRepository{db: db}
}

// ReplaceForParticipant deletes the participant's existing votes for the
// roundtable and inserts the given ones
func (r *voteRepository) ReplaceForParticipant(ctx context.Context, roundtableID, participantID uuid.UUID, votes []*entities.Vote) error {
	db := dbFrom(ctx, r.db)
	err := db.
		Where("roundtable_id = ? AND participant_id = ?", roundtableID, participantID).
		Delete(&entities.Vote{}).Error
	if err != nil {
		return err
	}
	if len(votes) == 0 {
		return nil
	}
	return db.Create(votes).Error
}

// FindByRoundtableID retrieves all votes of a roundtable
func (r *voteRepository) FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Vote, error) {
	var votes []*entities.Vote
	err := dbFrom(ctx, r.db).
		Where("roundtable_id = ?", roundtableID).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// FindByParticipant retrieves a participant's votes for a roundtable
func (r *voteRepository) FindByParticipant(ctx context.Context, roundtableID, participantID uuid.UUID) ([]*entities.Vote, error) {
	var votes []*entities.Vote
	err := dbFrom(ctx, r.db).
		Where("roundtable_id = ? AND participant_id = ?", roundtableID, participantID).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// CountDistinctVoters counts participants with at least one vote for the
// roundtable
func (r *voteRepository) CountDistinctVoters(ctx context.Context, roundtableID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).
		Model(&entities.Vote{}).
		Where("roundtable_id = ?", roundtableID).
		Distinct("participant_id").
		Count(&count).Error
	return count, err
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// sessionRepository implements the SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) repositories.SessionRepository {
	return &sessionRepository{db: db}
}

// CreateBatch creates sessions in bulk
func (r *sessionRepository) CreateBatch(ctx context.Context, sessions []*entities.Session) error {
	return dbFrom(ctx, r.db).Create(sessions).Error
}

// FindByID retrieves a session by ID
func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	var session entities.Session
	err := dbFrom(ctx, r.db).
		Preload("Topic").
		Preload("Trainer").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByRoundtableID retrieves all sessions of a roundtable ordered by
// session number
func (r *sessionRepository) FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Session, error) {
	var sessions []*entities.Session
	err := dbFrom(ctx, r.db).
		Preload("Topic").
		Preload("Trainer").
		Where("roundtable_id = ?", roundtableID).
		Order("session_number ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update updates an existing session
func (r *sessionRepository) Update(ctx context.Context, session *entities.Session) error {
	return dbFrom(ctx, r.db).Save(session).Error
}

// UpdateBatch updates multiple sessions
func (r *sessionRepository) UpdateBatch(ctx context.Context, sessions []*entities.Session) error {
	db := dbFrom(ctx, r.db)
	for _, session := range sessions {
		if err := db.Save(session).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateQuestionsStatus updates only a session's derived questions status
func (r *sessionRepository) UpdateQuestionsStatus(ctx context.Context, sessionID uuid.UUID, status entities.QuestionsStatus) error {
	return dbFrom(ctx, r.db).
		Model(&entities.Session{}).
		Where("id = ?", sessionID).
		Update("questions_status", status).Error
}

// FindByTrainerBetween retrieves a trainer's sessions scheduled within
// [from, to], optionally excluding one session
func (r *sessionRepository) FindByTrainerBetween(ctx context.Context, trainerID uuid.UUID, from, to time.Time, excludeSessionID *uuid.UUID) ([]*entities.Session, error) {
	query := dbFrom(ctx, r.db).
		Where("trainer_id = ?", trainerID).
		Where("scheduled_at IS NOT NULL").
		Where("scheduled_at BETWEEN ? AND ?", from, to)
	if excludeSessionID != nil {
		query = query.Where("id <> ?", *excludeSessionID)
	}

	var sessions []*entities.Session
	if err := query.Order("scheduled_at ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

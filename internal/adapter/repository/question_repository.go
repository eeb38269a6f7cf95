package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// questionRepository implements the QuestionRepository interface
type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *gorm.DB) repositories.QuestionRepository {
	return &questionRepository{db: db}
}

// ReplaceForSession deletes the session's existing questions and inserts the
// given ones
func (r *questionRepository) ReplaceForSession(ctx context.Context, sessionID uuid.UUID, questions []*entities.Question) error {
	db := dbFrom(ctx, r.db)
	err := db.Where("session_id = ?", sessionID).Delete(&entities.Question{}).Error
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	return db.Create(questions).Error
}

// FindBySessionID retrieves a session's questions ordered by order index
func (r *questionRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Question, error) {
	var questions []*entities.Question
	err := dbFrom(ctx, r.db).
		Where("session_id = ?", sessionID).
		Order("order_index ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// FindByIDs retrieves questions by their IDs
func (r *questionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Question, error) {
	var questions []*entities.Question
	err := dbFrom(ctx, r.db).
		Where("id IN ?", ids).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Update updates an existing question
func (r *questionRepository) Update(ctx context.Context, question *entities.Question) error {
	return dbFrom(ctx, r.db).Save(question).Error
}

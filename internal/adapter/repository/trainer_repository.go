package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// trainerRepository implements the TrainerRepository interface
type trainerRepository struct {
	db *gorm.DB
}

// NewTrainerRepository creates a new trainer repository
func NewTrainerRepository(db *gorm.DB) repositories.TrainerRepository {
	return &trainerRepository{db: db}
}

// Create creates a new trainer
func (r *trainerRepository) Create(ctx context.Context, trainer *entities.Trainer) error {
	return dbFrom(ctx, r.db).Create(trainer).Error
}

// FindByID retrieves a trainer by ID
func (r *trainerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Trainer, error) {
	var trainer entities.Trainer
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&trainer).Error
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

// FindActive retrieves all active trainers ordered by creation time
func (r *trainerRepository) FindActive(ctx context.Context) ([]*entities.Trainer, error) {
	var trainers []*entities.Trainer
	err := dbFrom(ctx, r.db).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&trainers).Error
	if err != nil {
		return nil, err
	}
	return trainers, nil
}

// Update updates an existing trainer
func (r *trainerRepository) Update(ctx context.Context, trainer *entities.Trainer) error {
	return dbFrom(ctx, r.db).Save(trainer).Error
}

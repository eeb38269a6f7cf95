package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// clientRepository implements the ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) repositories.ClientRepository {
	return &clientRepository{db: db}
}

// Create creates a new client
func (r *clientRepository) Create(ctx context.Context, client *entities.Client) error {
	return dbFrom(ctx, r.db).Create(client).Error
}

// FindByID retrieves a client by its ID
func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	var client entities.Client
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Delete deletes a client
func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entities.Client{}, id).Error
}

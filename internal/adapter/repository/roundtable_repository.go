package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// roundtableRepository implements the RoundtableRepository interface
type roundtableRepository struct {
	db *gorm.DB
}

// NewRoundtableRepository creates a new roundtable repository
func NewRoundtableRepository(db *gorm.DB) repositories.RoundtableRepository {
	return &roundtableRepository{db: db}
}

// Create creates a new roundtable
func (r *roundtableRepository) Create(ctx context.Context, roundtable *entities.Roundtable) error {
	return dbFrom(ctx, r.db).Create(roundtable).Error
}

// FindByID retrieves a roundtable by its ID
func (r *roundtableRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Roundtable, error) {
	var roundtable entities.Roundtable
	err := dbFrom(ctx, r.db).
		Where("id = ?", id).
		First(&roundtable).Error
	if err != nil {
		return nil, err
	}
	return &roundtable, nil
}

// Update updates an existing roundtable
func (r *roundtableRepository) Update(ctx context.Context, roundtable *entities.Roundtable) error {
	return dbFrom(ctx, r.db).Save(roundtable).Error
}

// UpdateStatus updates only the roundtable status
func (r *roundtableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RoundtableStatus) error {
	return dbFrom(ctx, r.db).
		Model(&entities.Roundtable{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// List retrieves roundtables with filters and pagination
func (r *roundtableRepository) List(ctx context.Context, filters repositories.RoundtableFilters) ([]*entities.Roundtable, int64, error) {
	var roundtables []*entities.Roundtable
	var total int64

	query := dbFrom(ctx, r.db).Model(&entities.Roundtable{})

	if filters.ClientID != nil {
		query = query.Where("client_id = ?", *filters.ClientID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		query = query.Where("name ILIKE ?", fmt.Sprintf("%%%s%%", filters.Search))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&roundtables).Error; err != nil {
		return nil, 0, err
	}
	return roundtables, total, nil
}

// CountNonTerminalByClientID counts a client's roundtables that are not
// completed or cancelled
func (r *roundtableRepository) CountNonTerminalByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).
		Model(&entities.Roundtable{}).
		Where("client_id = ?", clientID).
		Where("status NOT IN ?", []entities.RoundtableStatus{
			entities.RoundtableStatusCompleted,
			entities.RoundtableStatusCancelled,
		}).
		Count(&count).Error
	return count, err
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// Trainer represents a facilitator who can be assigned to sessions across
// roundtables. Assignment is many-sessions-to-one-trainer, not ownership.
type Trainer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Trainer
func (Trainer) TableName() string {
	return "trainers"
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// Topic is one of the 10 candidate discussion subjects of a roundtable.
// Position records creation order (1..10) and is the explicit secondary sort
// key when vote counts tie, so finalization stays deterministic.
type Topic struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoundtableID uuid.UUID `gorm:"type:uuid;not null;index" json:"roundtable_id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	Position     int       `gorm:"not null" json:"position"`
	IsSelected   bool      `gorm:"default:false;index" json:"is_selected"`
	Votes        []Vote    `gorm:"foreignKey:TopicID" json:"votes,omitempty"`
	CreatedAt    time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "topics"
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// Client represents an organization that commissions roundtables
type Client struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	ContactEmail string       `gorm:"type:varchar(255);not null" json:"contact_email"`
	Roundtables  []Roundtable `gorm:"foreignKey:ClientID" json:"roundtables,omitempty"`
	CreatedAt    time.Time    `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

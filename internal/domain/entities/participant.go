package entities

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantStatus represents the status of a participant within a roundtable
type ParticipantStatus string

const (
	ParticipantStatusInvited    ParticipantStatus = "invited"
	ParticipantStatusActive     ParticipantStatus = "active"
	ParticipantStatusDroppedOut ParticipantStatus = "dropped_out"
)

// Participant represents a member of a roundtable's cohort
type Participant struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoundtableID uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_participants_roundtable_email" json:"roundtable_id"`
	Email        string            `gorm:"type:varchar(255);not null;uniqueIndex:idx_participants_roundtable_email" json:"email"`
	Name         string            `gorm:"type:varchar(255);not null" json:"name"`
	Status       ParticipantStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt    time.Time         `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "participants"
}

// IsActive reports whether the participant counts toward quorum and progress.
// Invited participants count; only dropped-out ones are excluded.
func (p *Participant) IsActive() bool {
	return p.Status != ParticipantStatusDroppedOut
}

// HasDroppedOut reports whether the participant left the program
func (p *Participant) HasDroppedOut() bool {
	return p.Status == ParticipantStatusDroppedOut
}

// DropOut marks the participant as having left the program
func (p *Participant) DropOut() {
	p.Status = ParticipantStatusDroppedOut
}

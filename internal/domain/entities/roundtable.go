package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Structural invariants of a roundtable. Topics and sessions are created once,
// at roundtable creation, and never added or removed afterwards.
const (
	TopicsPerRoundtable    = 10
	SessionsPerRoundtable  = 10
	SelectedTopicsRequired = 8
)

// RoundtableStatus represents the lifecycle state of a roundtable
type RoundtableStatus string

const (
	RoundtableStatusSetup       RoundtableStatus = "setup"
	RoundtableStatusTopicVoting RoundtableStatus = "topic_voting"
	RoundtableStatusScheduled   RoundtableStatus = "scheduled"
	RoundtableStatusInProgress  RoundtableStatus = "in_progress"
	RoundtableStatusCompleted   RoundtableStatus = "completed"
	RoundtableStatusCancelled   RoundtableStatus = "cancelled"
)

// roundtableTransitions is the single source of truth for legal status moves.
// Cancellation is handled separately: it is legal from any non-terminal state.
var roundtableTransitions = map[RoundtableStatus][]RoundtableStatus{
	RoundtableStatusSetup:       {RoundtableStatusTopicVoting},
	RoundtableStatusTopicVoting: {RoundtableStatusScheduled},
	RoundtableStatusScheduled:   {RoundtableStatusInProgress},
	RoundtableStatusInProgress:  {RoundtableStatusCompleted},
}

// Roundtable represents a 10-session discussion program for one client's cohort
type Roundtable struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	Client          *Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name"`
	Description     *string          `gorm:"type:text" json:"description,omitempty"`
	Status          RoundtableStatus `gorm:"type:varchar(20);not null;default:'setup';index" json:"status"`
	MaxParticipants int              `gorm:"default:12" json:"max_participants"`
	MinQuestions    int              `gorm:"default:3" json:"min_questions"`
	MaxQuestions    int              `gorm:"default:10" json:"max_questions"`
	StartDate       *time.Time       `gorm:"index" json:"start_date,omitempty"`
	EndDate         *time.Time       `json:"end_date,omitempty"`
	Settings        datatypes.JSON   `gorm:"type:jsonb;default:'{}'" json:"settings"`
	Topics          []Topic          `gorm:"foreignKey:RoundtableID" json:"topics,omitempty"`
	Sessions        []Session        `gorm:"foreignKey:RoundtableID" json:"sessions,omitempty"`
	CreatedAt       time.Time        `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Roundtable
func (Roundtable) TableName() string {
	return "roundtables"
}

// IsTerminal reports whether the roundtable has reached a final state
func (r *Roundtable) IsTerminal() bool {
	return r.Status == RoundtableStatusCompleted || r.Status == RoundtableStatusCancelled
}

// CanTransitionTo reports whether moving to the given status is a legal transition
func (r *Roundtable) CanTransitionTo(next RoundtableStatus) bool {
	if next == RoundtableStatusCancelled {
		return r.Status != RoundtableStatusCompleted && r.Status != RoundtableStatusCancelled
	}
	for _, allowed := range roundtableTransitions[r.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancel marks the roundtable as cancelled
func (r *Roundtable) Cancel() {
	r.Status = RoundtableStatusCancelled
}

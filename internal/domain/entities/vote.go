package entities

import (
	"time"

	"github.com/google/uuid"
)

// Vote records one participant's selection of one topic. At most one vote
// exists per (participant, topic) pair; re-submission replaces the
// participant's whole ballot instead of appending to it.
type Vote struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoundtableID  uuid.UUID `gorm:"type:uuid;not null;index" json:"roundtable_id"`
	TopicID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_votes_participant_topic" json:"topic_id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_votes_participant_topic" json:"participant_id"`
	CreatedAt     time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

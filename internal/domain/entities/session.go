package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SessionStatus represents the delivery status of a session
type SessionStatus string

const (
	SessionStatusPlanned      SessionStatus = "planned"
	SessionStatusScheduled    SessionStatus = "scheduled"
	SessionStatusCompleted    SessionStatus = "completed"
	SessionStatusFeedbackSent SessionStatus = "feedback_sent"
	SessionStatusCancelled    SessionStatus = "cancelled"
)

// QuestionsStatus represents where a session's discussion questions sit in the
// approval workflow. It is derived from the statuses of the session's
// questions and is never set directly by callers.
type QuestionsStatus string

const (
	QuestionsStatusNotSubmitted             QuestionsStatus = "not_submitted"
	QuestionsStatusPendingApproval          QuestionsStatus = "pending_approval"
	QuestionsStatusSentToParticipants       QuestionsStatus = "sent_to_participants"
	QuestionsStatusRequestedFromCoordinator QuestionsStatus = "requested_from_coordinator"
)

// Session is one of the 10 fixed calendar slots of a roundtable. Sessions 1
// and 10 are the introduction and conclusion and never carry a topic; sessions
// 2-9 each carry one of the finalized topics.
type Session struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoundtableID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_sessions_roundtable_number" json:"roundtable_id"`
	SessionNumber   int             `gorm:"not null;uniqueIndex:idx_sessions_roundtable_number" json:"session_number"`
	ScheduledAt     *time.Time      `gorm:"index" json:"scheduled_at,omitempty"`
	DurationMin     int             `gorm:"default:90" json:"duration_min"`
	Status          SessionStatus   `gorm:"type:varchar(20);not null;default:'planned';index" json:"status"`
	QuestionsStatus QuestionsStatus `gorm:"type:varchar(30);not null;default:'not_submitted'" json:"questions_status"`
	TopicID         *uuid.UUID      `gorm:"type:uuid;index" json:"topic_id,omitempty"`
	Topic           *Topic          `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	TrainerID       *uuid.UUID      `gorm:"type:uuid;index" json:"trainer_id,omitempty"`
	Trainer         *Trainer        `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	RescheduleLog   datatypes.JSON  `gorm:"type:jsonb;default:'[]'" json:"reschedule_log,omitempty"`
	CreatedAt       time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}

// IsFixedSlot reports whether the session is the introduction or conclusion
// slot, which never carries a topic
func (s *Session) IsFixedSlot() bool {
	return s.SessionNumber == 1 || s.SessionNumber == SessionsPerRoundtable
}

// IsDelivered reports whether the session counts toward roundtable progress
func (s *Session) IsDelivered() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusFeedbackSent
}

// IsOverdue reports whether the session's scheduled time has passed without
// the session being delivered or cancelled. Computed on read; there is no
// background timer moving sessions to an overdue state.
func (s *Session) IsOverdue(now time.Time) bool {
	if s.ScheduledAt == nil || s.IsDelivered() || s.Status == SessionStatusCancelled {
		return false
	}
	return now.After(s.ScheduledAt.Add(time.Duration(s.DurationMin) * time.Minute))
}

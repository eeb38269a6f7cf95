package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuestionStatus represents a reviewer's decision on a single question
type QuestionStatus string

const (
	QuestionStatusPending       QuestionStatus = "pending"
	QuestionStatusApproved      QuestionStatus = "approved"
	QuestionStatusNeedsRevision QuestionStatus = "needs_revision"
	QuestionStatusRejected      QuestionStatus = "rejected"
)

// Question is one discussion question submitted by a session's trainer. The
// session's question set is replaced wholesale on each submission, never
// merged.
type Question struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	OrderIndex  int            `gorm:"not null" json:"order_index"`
	Status      QuestionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewNotes *string        `gorm:"type:text" json:"review_notes,omitempty"`
	Rating      *int           `json:"rating,omitempty"`
	CreatedAt   time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Question
func (Question) TableName() string {
	return "questions"
}

// NeedsWork reports whether the question was sent back by a reviewer
func (q *Question) NeedsWork() bool {
	return q.Status == QuestionStatusNeedsRevision || q.Status == QuestionStatusRejected
}

// ComputeQuestionsStatus derives a session's aggregate questions status from
// its question set. minRequired is the roundtable's configured minimum number
// of approved questions needed before release.
//
// The rules cascade: a fully approved set that meets the minimum is released;
// any question sent back pulls the whole set back to the coordinator; a
// partially reviewed set stays pending.
func ComputeQuestionsStatus(questions []Question, minRequired int) QuestionsStatus {
	if len(questions) == 0 {
		return QuestionsStatusNotSubmitted
	}

	approved := 0
	needsWork := false
	for _, q := range questions {
		switch {
		case q.Status == QuestionStatusApproved:
			approved++
		case q.NeedsWork():
			needsWork = true
		}
	}

	if approved == len(questions) && approved >= minRequired {
		return QuestionsStatusSentToParticipants
	}
	if needsWork {
		return QuestionsStatusRequestedFromCoordinator
	}
	return QuestionsStatusPendingApproval
}

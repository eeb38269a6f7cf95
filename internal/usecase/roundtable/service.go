package roundtable

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
)

// Service defines the interface for the roundtable lifecycle use case
type Service interface {
	// Create creates a roundtable together with its 10 topics and 10
	// placeholder sessions in one transaction
	Create(ctx context.Context, input CreateInput) (*entities.Roundtable, error)

	// Get retrieves a roundtable by ID
	Get(ctx context.Context, roundtableID uuid.UUID) (*entities.Roundtable, error)

	// List retrieves roundtables with filters
	List(ctx context.Context, filters repositories.RoundtableFilters) ([]*entities.Roundtable, int64, error)

	// OpenVoting transitions SETUP -> TOPIC_VOTING and returns the
	// voting-access token participants use to reach the voting endpoints
	OpenVoting(ctx context.Context, roundtableID uuid.UUID) (string, error)

	// FinalizeVoting commits the top-8 ranked topics and transitions
	// TOPIC_VOTING -> SCHEDULED. One-way: re-invocation is rejected.
	FinalizeVoting(ctx context.Context, roundtableID uuid.UUID) (*entities.Roundtable, error)

	// Cancel moves the roundtable to its terminal CANCELLED state
	Cancel(ctx context.Context, roundtableID uuid.UUID) error

	// AddParticipant registers a cohort member
	AddParticipant(ctx context.Context, roundtableID uuid.UUID, email, name string) (*entities.Participant, error)

	// DropParticipant marks a participant as dropped out
	DropParticipant(ctx context.Context, participantID uuid.UUID) error

	// GetParticipants retrieves a roundtable's cohort
	GetParticipants(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Participant, error)

	// UpdateSessionStatus records session delivery and cascades the
	// roundtable status (first delivery starts the program, tenth ends it)
	UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status entities.SessionStatus) error

	// Dashboard returns aggregate figures for one roundtable
	Dashboard(ctx context.Context, roundtableID uuid.UUID) (*Dashboard, error)

	// CreateClient registers a client organization
	CreateClient(ctx context.Context, name, contactEmail string) (*entities.Client, error)

	// DeleteClient removes a client, refused while any of its roundtables is
	// still running
	DeleteClient(ctx context.Context, clientID uuid.UUID) error
}

// CreateInput represents input for creating a roundtable
type CreateInput struct {
	ClientID        uuid.UUID
	Name            string
	Description     *string
	MaxParticipants int
	MinQuestions    int
	MaxQuestions    int
	Topics          []TopicInput
}

// TopicInput is one proposed topic at roundtable creation
type TopicInput struct {
	Title       string
	Description *string
}

// Dashboard aggregates one roundtable's headline figures
type Dashboard struct {
	RoundtableID        uuid.UUID                 `json:"roundtable_id"`
	Status              entities.RoundtableStatus `json:"status"`
	ProgressPercent     int                       `json:"progress_percent"`
	ActiveParticipants  int                       `json:"active_participants"`
	VotedParticipants   int                       `json:"voted_participants"`
	SessionsScheduled   int                       `json:"sessions_scheduled"`
	SessionsDelivered   int                       `json:"sessions_delivered"`
	SessionsWithTrainer int                       `json:"sessions_with_trainer"`
	QuestionsReleased   int                       `json:"questions_released"`
	StartDate           *time.Time                `json:"start_date,omitempty"`
	EndDate             *time.Time                `json:"end_date,omitempty"`
}

// CalculateProgress returns the percentage of the fixed 10 sessions that have
// been delivered (completed or feedback sent), rounded to the nearest
// integer. Pure: safe to recompute at any time.
func CalculateProgress(sessions []*entities.Session) int {
	if len(sessions) == 0 {
		return 0
	}
	delivered := 0
	for _, s := range sessions {
		if s.IsDelivered() {
			delivered++
		}
	}
	return int(math.Round(float64(delivered) / float64(len(sessions)) * 100))
}

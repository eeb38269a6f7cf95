package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// Frequency is the cadence between sessions
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "biweekly"
)

// TimeOfDay is the preferred start time for sessions
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Options controls session-date generation
type Options struct {
	StartDate          time.Time  `json:"start_date"`
	SessionDurationMin int        `json:"session_duration_min"`
	Frequency          Frequency  `json:"frequency"`
	SkipWeekends       bool       `json:"skip_weekends"`
	PreferredTime      *TimeOfDay `json:"preferred_time,omitempty"`
}

// Service defines the interface for the session-scheduling use case
type Service interface {
	// ScheduleSessions generates dates for all 10 sessions and assigns the
	// finalized topics to sessions 2-9, atomically
	ScheduleSessions(ctx context.Context, roundtableID uuid.UUID, opts Options) ([]*entities.Session, error)

	// RescheduleSession moves a single session to a new date without
	// re-running the full generation, notifying affected parties
	RescheduleSession(ctx context.Context, sessionID uuid.UUID, newDate time.Time, reason string) (*entities.Session, error)
}

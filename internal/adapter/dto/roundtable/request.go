package roundtable

// CreateClientRequest represents the payload for registering a client
type CreateClientRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

// TopicRequest is one proposed topic at roundtable creation
type TopicRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
}

// CreateRoundtableRequest represents the payload for creating a roundtable.
// Exactly 10 topics are required; the engine creates the 10 placeholder
// sessions alongside them.
type CreateRoundtableRequest struct {
	ClientID        string         `json:"client_id" validate:"required,uuid"`
	Name            string         `json:"name" validate:"required,max=255"`
	Description     *string        `json:"description,omitempty"`
	MaxParticipants int            `json:"max_participants" validate:"omitempty,min=1,max=100"`
	MinQuestions    int            `json:"min_questions" validate:"omitempty,min=1"`
	MaxQuestions    int            `json:"max_questions" validate:"omitempty,min=1"`
	Topics          []TopicRequest `json:"topics" validate:"required,len=10,dive"`
}

// AddParticipantRequest represents the payload for registering a participant
type AddParticipantRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=255"`
}

// SubmitVotesRequest represents a participant's ballot. The engine enforces
// the exactly-8 selection rule.
type SubmitVotesRequest struct {
	ParticipantEmail string   `json:"participant_email" validate:"required,email"`
	TopicIDs         []string `json:"topic_ids" validate:"required,dive,uuid"`
}

// ScheduleSessionsRequest represents the payload for generating the session
// calendar
type ScheduleSessionsRequest struct {
	StartDate          string `json:"start_date" validate:"required"`
	SessionDurationMin int    `json:"session_duration_min" validate:"omitempty,min=15,max=480"`
	Frequency          string `json:"frequency" validate:"omitempty,oneof=weekly biweekly"`
	SkipWeekends       bool   `json:"skip_weekends"`
	PreferredHour      *int   `json:"preferred_hour,omitempty" validate:"omitempty,min=0,max=23"`
	PreferredMinute    *int   `json:"preferred_minute,omitempty" validate:"omitempty,min=0,max=59"`
}

// RescheduleSessionRequest represents the payload for moving one session
type RescheduleSessionRequest struct {
	NewDate string `json:"new_date" validate:"required"`
	Reason  string `json:"reason" validate:"required,max=500"`
}

// UpdateSessionStatusRequest represents the payload for recording session
// delivery
type UpdateSessionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed feedback_sent cancelled"`
}

// CreateTrainerRequest represents the payload for registering a trainer
type CreateTrainerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email"`
}

// AssignTrainerRequest represents the payload for attaching a trainer to a
// session
type AssignTrainerRequest struct {
	TrainerID         string `json:"trainer_id" validate:"required,uuid"`
	SkipConflictCheck bool   `json:"skip_conflict_check"`
}

// SubmitQuestionsRequest represents a trainer's question submission
type SubmitQuestionsRequest struct {
	TrainerID string   `json:"trainer_id" validate:"required,uuid"`
	Questions []string `json:"questions" validate:"required,dive,required"`
}

// DecisionRequest is one reviewer decision on one question
type DecisionRequest struct {
	QuestionID string  `json:"question_id" validate:"required,uuid"`
	Status     string  `json:"status" validate:"required,oneof=approved needs_revision rejected"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Rating     *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// ReviewQuestionsRequest represents a batch of reviewer decisions
type ReviewQuestionsRequest struct {
	Decisions []DecisionRequest `json:"decisions" validate:"required,min=1,dive"`
}

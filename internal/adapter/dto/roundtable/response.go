package roundtable

import "time"

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// TopicResponse represents a topic in API responses
type TopicResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Position    int     `json:"position"`
	IsSelected  bool    `json:"is_selected"`
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID              string           `json:"id"`
	SessionNumber   int              `json:"session_number"`
	ScheduledAt     *time.Time       `json:"scheduled_at,omitempty"`
	DurationMin     int              `json:"duration_min"`
	Status          string           `json:"status"`
	QuestionsStatus string           `json:"questions_status"`
	Topic           *TopicResponse   `json:"topic,omitempty"`
	Trainer         *TrainerResponse `json:"trainer,omitempty"`
}

// RoundtableResponse represents a roundtable in API responses
type RoundtableResponse struct {
	ID              string             `json:"id"`
	ClientID        string             `json:"client_id"`
	Name            string             `json:"name"`
	Description     *string            `json:"description,omitempty"`
	Status          string             `json:"status"`
	MaxParticipants int                `json:"max_participants"`
	MinQuestions    int                `json:"min_questions"`
	MaxQuestions    int                `json:"max_questions"`
	StartDate       *time.Time         `json:"start_date,omitempty"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	Topics          []*TopicResponse   `json:"topics,omitempty"`
	Sessions        []*SessionResponse `json:"sessions,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ParticipantResponse represents a participant in API responses
type ParticipantResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// TrainerResponse represents a trainer in API responses
type TrainerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// QuestionResponse represents a question in API responses
type QuestionResponse struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	OrderIndex  int     `json:"order_index"`
	Status      string  `json:"status"`
	ReviewNotes *string `json:"review_notes,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
}

// OpenVotingResponse carries the voting-access token issued when voting opens
type OpenVotingResponse struct {
	RoundtableID string `json:"roundtable_id"`
	VotingToken  string `json:"voting_token"`
	VotingURL    string `json:"voting_url"`
}

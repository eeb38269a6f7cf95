package presenter

import (
	dto "github.com/roundtable-hub/roundtable/internal/adapter/dto/roundtable"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
)

// ToClientResponse converts a Client entity to ClientResponse DTO
func ToClientResponse(c *entities.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		ContactEmail: c.ContactEmail,
		CreatedAt:    c.CreatedAt,
	}
}

// ToTopicResponse converts a Topic entity to TopicResponse DTO
func ToTopicResponse(t *entities.Topic) *dto.TopicResponse {
	if t == nil {
		return nil
	}
	return &dto.TopicResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Position:    t.Position,
		IsSelected:  t.IsSelected,
	}
}

// ToTrainerResponse converts a Trainer entity to TrainerResponse DTO
func ToTrainerResponse(t *entities.Trainer) *dto.TrainerResponse {
	if t == nil {
		return nil
	}
	return &dto.TrainerResponse{
		ID:       t.ID.String(),
		Name:     t.Name,
		Email:    t.Email,
		IsActive: t.IsActive,
	}
}

// ToSessionResponse converts a Session entity to SessionResponse DTO
func ToSessionResponse(s *entities.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	response := &dto.SessionResponse{
		ID:              s.ID.String(),
		SessionNumber:   s.SessionNumber,
		ScheduledAt:     s.ScheduledAt,
		DurationMin:     s.DurationMin,
		Status:          string(s.Status),
		QuestionsStatus: string(s.QuestionsStatus),
	}
	if s.Topic != nil {
		response.Topic = ToTopicResponse(s.Topic)
	}
	if s.Trainer != nil {
		response.Trainer = ToTrainerResponse(s.Trainer)
	}
	return response
}

// ToSessionListResponse converts a slice of Session entities
func ToSessionListResponse(sessions []*entities.Session) []*dto.SessionResponse {
	responses := make([]*dto.SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = ToSessionResponse(s)
	}
	return responses
}

// ToRoundtableResponse converts a Roundtable entity to RoundtableResponse DTO
func ToRoundtableResponse(r *entities.Roundtable) *dto.RoundtableResponse {
	if r == nil {
		return nil
	}
	response := &dto.RoundtableResponse{
		ID:              r.ID.String(),
		ClientID:        r.ClientID.String(),
		Name:            r.Name,
		Description:     r.Description,
		Status:          string(r.Status),
		MaxParticipants: r.MaxParticipants,
		MinQuestions:    r.MinQuestions,
		MaxQuestions:    r.MaxQuestions,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		CreatedAt:       r.CreatedAt,
	}
	for i := range r.Topics {
		response.Topics = append(response.Topics, ToTopicResponse(&r.Topics[i]))
	}
	for i := range r.Sessions {
		response.Sessions = append(response.Sessions, ToSessionResponse(&r.Sessions[i]))
	}
	return response
}

// ToParticipantResponse converts a Participant entity to ParticipantResponse DTO
func ToParticipantResponse(p *entities.Participant) *dto.ParticipantResponse {
	if p == nil {
		return nil
	}
	return &dto.ParticipantResponse{
		ID:     p.ID.String(),
		Email:  p.Email,
		Name:   p.Name,
		Status: string(p.Status),
	}
}

// ToParticipantListResponse converts a slice of Participant entities
func ToParticipantListResponse(participants []*entities.Participant) []*dto.ParticipantResponse {
	responses := make([]*dto.ParticipantResponse, len(participants))
	for i, p := range participants {
		responses[i] = ToParticipantResponse(p)
	}
	return responses
}

// ToQuestionResponse converts a Question entity to QuestionResponse DTO
func ToQuestionResponse(q *entities.Question) *dto.QuestionResponse {
	if q == nil {
		return nil
	}
	return &dto.QuestionResponse{
		ID:          q.ID.String(),
		Text:        q.Text,
		OrderIndex:  q.OrderIndex,
		Status:      string(q.Status),
		ReviewNotes: q.ReviewNotes,
		Rating:      q.Rating,
	}
}

// ToQuestionListResponse converts a slice of Question entities
func ToQuestionListResponse(questions []*entities.Question) []*dto.QuestionResponse {
	responses := make([]*dto.QuestionResponse, len(questions))
	for i, q := range questions {
		responses[i] = ToQuestionResponse(q)
	}
	return responses
}

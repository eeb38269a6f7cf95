// Package usecasetest provides in-memory repository fakes for use case
// tests. The fakes mirror the gorm-backed repositories closely enough that
// services cannot tell them apart, including gorm.ErrRecordNotFound on
// missing rows.
package usecasetest

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
	"github.com/roundtable-hub/roundtable/internal/usecase/notification"
)

// TxManager runs the function directly; the fakes have no transactions
type TxManager struct{}

func (TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Notification is one recorded notifier call
type Notification struct {
	Kind      notification.Kind
	Recipient string
	Payload   map[string]string
}

// Notifier records notifications instead of sending them
type Notifier struct {
	Sent []Notification
}

func (n *Notifier) Notify(ctx context.Context, kind notification.Kind, recipient string, payload map[string]string) {
	n.Sent = append(n.Sent, Notification{Kind: kind, Recipient: recipient, Payload: payload})
}

// SentTo returns the notifications recorded for one recipient
func (n *Notifier) SentTo(recipient string) []Notification {
	var out []Notification
	for _, sent := range n.Sent {
		if sent.Recipient == recipient {
			out = append(out, sent)
		}
	}
	return out
}

// RoundtableRepo is an in-memory repositories.RoundtableRepository
type RoundtableRepo struct {
	Items map[uuid.UUID]*entities.Roundtable
}

func NewRoundtableRepo() *RoundtableRepo {
	return &RoundtableRepo{Items: make(map[uuid.UUID]*entities.Roundtable)}
}

func (r *RoundtableRepo) Create(ctx context.Context, roundtable *entities.Roundtable) error {
	if roundtable.ID == uuid.Nil {
		roundtable.ID = uuid.New()
	}
	r.Items[roundtable.ID] = roundtable
	return nil
}

func (r *RoundtableRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Roundtable, error) {
	roundtable, ok := r.Items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return roundtable, nil
}

func (r *RoundtableRepo) Update(ctx context.Context, roundtable *entities.Roundtable) error {
	r.Items[roundtable.ID] = roundtable
	return nil
}

func (r *RoundtableRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RoundtableStatus) error {
	roundtable, ok := r.Items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	roundtable.Status = status
	return nil
}

func (r *RoundtableRepo) List(ctx context.Context, filters repositories.RoundtableFilters) ([]*entities.Roundtable, int64, error) {
	var out []*entities.Roundtable
	for _, roundtable := range r.Items {
		if filters.ClientID != nil && roundtable.ClientID != *filters.ClientID {
			continue
		}
		if filters.Status != nil && roundtable.Status != *filters.Status {
			continue
		}
		out = append(out, roundtable)
	}
	return out, int64(len(out)), nil
}

func (r *RoundtableRepo) CountNonTerminalByClientID(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	for _, roundtable := range r.Items {
		if roundtable.ClientID == clientID && !roundtable.IsTerminal() {
			count++
		}
	}
	return count, nil
}

// ClientRepo is an in-memory repositories.ClientRepository
type ClientRepo struct {
	Items map[uuid.UUID]*entities.Client
}

func NewClientRepo() *ClientRepo {
	return &ClientRepo{Items: make(map[uuid.UUID]*entities.Client)}
}

func (r *ClientRepo) Create(ctx context.Context, client *entities.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	r.Items[client.ID] = client
	return nil
}

func (r *ClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	client, ok := r.Items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return client, nil
}

func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.Items, id)
	return nil
}

// TopicRepo is an in-memory repositories.TopicRepository
type TopicRepo struct {
	Items []*entities.Topic
}

func NewTopicRepo() *TopicRepo {
	return &TopicRepo{}
}

func (r *TopicRepo) CreateBatch(ctx context.Context, topics []*entities.Topic) error {
	for _, topic := range topics {
		if topic.ID == uuid.Nil {
			topic.ID = uuid.New()
		}
		r.Items = append(r.Items, topic)
	}
	return nil
}

func (r *TopicRepo) FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Topic, error) {
	var out []*entities.Topic
	for _, topic := range r.Items {
		if topic.RoundtableID == roundtableID {
			out = append(out, topic)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *TopicRepo) FindSelectedByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Topic, error) {
	var out []*entities.Topic
	for _, topic := range r.Items {
		if topic.RoundtableID == roundtableID && topic.IsSelected {
			out = append(out, topic)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *TopicRepo) CountByRoundtableAndIDs(ctx context.Context, roundtableID uuid.UUID, topicIDs []uuid.UUID) (int64, error) {
	wanted := make(map[uuid.UUID]struct{}, len(topicIDs))
	for _, id := range topicIDs {
		wanted[id] = struct{}{}
	}
	var count int64
	for _, topic := range r.Items {
		if topic.RoundtableID != roundtableID {
			continue
		}
		if _, ok := wanted[topic.ID]; ok {
			count++
		}
	}
	return count, nil
}

func (r *TopicRepo) MarkSelected(ctx context.Context, topicIDs []uuid.UUID) error {
	wanted := make(map[uuid.UUID]struct{}, len(topicIDs))
	for _, id := range topicIDs {
		wanted[id] = struct{}{}
	}
	for _, topic := range r.Items {
		if _, ok := wanted[topic.ID]; ok {
			topic.IsSelected = true
		}
	}
	return nil
}

// VoteRepo is an in-memory repositories.VoteRepository
type VoteRepo struct {
	Items []*entities.Vote
}

func NewVoteRepo() *VoteRepo {
	return &VoteRepo{}
}

func (r *VoteRepo) ReplaceForParticipant(ctx context.Context, roundtableID, participantID uuid.UUID, votes []*entities.Vote) error {
	kept := r.Items[:0]
	for _, vote := range r.Items {
		if vote.RoundtableID == roundtableID && vote.ParticipantID == participantID {
			continue
		}
		kept = append(kept, vote)
	}
	r.Items = kept
	for _, vote := range votes {
		if vote.ID == uuid.Nil {
			vote.ID = uuid.New()
		}
		r.Items = append(r.Items, vote)
	}
	return nil
}

func (r *VoteRepo) FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Vote, error) {
	var out []*entities.Vote
	for _, vote := range r.Items {
		if vote.RoundtableID == roundtableID {
			out = append(out, vote)
		}
	}
	return out, nil
}

func (r *VoteRepo) FindByParticipant(ctx context.Context, roundtableID, participantID uuid.UUID) ([]*entities.Vote, error) {
	var out []*entities.Vote
	for _, vote := range r.Items {
		if vote.RoundtableID == roundtableID && vote.ParticipantID == participantID {
			out = append(out, vote)
		}
	}
	return out, nil
}

func (r *VoteRepo) CountDistinctVoters(ctx context.Context, roundtableID uuid.UUID) (int64, error) {
	voters := make(map[uuid.UUID]struct{})
	for _, vote := range r.Items {
		if vote.RoundtableID == roundtableID {
			voters[vote.ParticipantID] = struct{}{}
		}
	}
	return int64(len(voters)), nil
}

// ParticipantRepo is an in-memory repositories.ParticipantRepository
type ParticipantRepo struct {
	Items map[uuid.UUID]*entities.Participant
}

func NewParticipantRepo() *ParticipantRepo {
	return &ParticipantRepo{Items: make(map[uuid.UUID]*entities.Participant)}
}

func (r *ParticipantRepo) Create(ctx context.Context, participant *entities.Participant) error {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	r.Items[participant.ID] = participant
	return nil
}

func (r *ParticipantRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Participant, error) {
	participant, ok := r.Items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return participant, nil
}

func (r *ParticipantRepo) FindByRoundtableAndEmail(ctx context.Context, roundtableID uuid.UUID, email string) (*entities.Participant, error) {
	for _, participant := range r.Items {
		if participant.RoundtableID == roundtableID && participant.Email == email {
			return participant, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *ParticipantRepo) FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Participant, error) {
	var out []*entities.Participant
	for _, participant := range r.Items {
		if participant.RoundtableID == roundtableID {
			out = append(out, participant)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *ParticipantRepo) CountActiveByRoundtableID(ctx context.Context, roundtableID uuid.UUID) (int64, error) {
	var count int64
	for _, participant := range r.Items {
		if participant.RoundtableID == roundtableID && participant.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *ParticipantRepo) Update(ctx context.Context, participant *entities.Participant) error {
	r.Items[participant.ID] = participant
	return nil
}

// SessionRepo is an in-memory repositories.SessionRepository
type SessionRepo struct {
	Items map[uuid.UUID]*entities.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{Items: make(map[uuid.UUID]*entities.Session)}
}

func (r *SessionRepo) CreateBatch(ctx context.Context, sessions []*entities.Session) error {
	for _, session := range sessions {
		if session.ID == uuid.Nil {
			session.ID = uuid.New()
		}
		r.Items[session.ID] = session
	}
	return nil
}

func (r *SessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	session, ok := r.Items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (r *SessionRepo) FindByRoundtableID(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Session, error) {
	var out []*entities.Session
	for _, session := range r.Items {
		if session.RoundtableID == roundtableID {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionNumber < out[j].SessionNumber })
	return out, nil
}

func (r *SessionRepo) Update(ctx context.Context, session *entities.Session) error {
	r.Items[session.ID] = session
	return nil
}

func (r *SessionRepo) UpdateBatch(ctx context.Context, sessions []*entities.Session) error {
	for _, session := range sessions {
		r.Items[session.ID] = session
	}
	return nil
}

func (r *SessionRepo) UpdateQuestionsStatus(ctx context.Context, sessionID uuid.UUID, status entities.QuestionsStatus) error {
	session, ok := r.Items[sessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	session.QuestionsStatus = status
	return nil
}

func (r *SessionRepo) FindByTrainerBetween(ctx context.Context, trainerID uuid.UUID, from, to time.Time, excludeSessionID *uuid.UUID) ([]*entities.Session, error) {
	var out []*entities.Session
	for _, session := range r.Items {
		if session.TrainerID == nil || *session.TrainerID != trainerID || session.ScheduledAt == nil {
			continue
		}
		if excludeSessionID != nil && session.ID == *excludeSessionID {
			continue
		}
		at := *session.ScheduledAt
		if at.Before(from) || at.After(to) {
			continue
		}
		out = append(out, session)
	}
	return out, nil
}

// TrainerRepo is an in-memory repositories.TrainerRepository
type TrainerRepo struct {
	Items []*entities.Trainer
}

func NewTrainerRepo() *TrainerRepo {
	return &TrainerRepo{}
}

func (r *TrainerRepo) Create(ctx context.Context, trainer *entities.Trainer) error {
	if trainer.ID == uuid.Nil {
		trainer.ID = uuid.New()
	}
	r.Items = append(r.Items, trainer)
	return nil
}

func (r *TrainerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Trainer, error) {
	for _, trainer := range r.Items {
		if trainer.ID == id {
			return trainer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *TrainerRepo) FindActive(ctx context.Context) ([]*entities.Trainer, error) {
	var out []*entities.Trainer
	for _, trainer := range r.Items {
		if trainer.IsActive {
			out = append(out, trainer)
		}
	}
	return out, nil
}

func (r *TrainerRepo) Update(ctx context.Context, trainer *entities.Trainer) error {
	for i, existing := range r.Items {
		if existing.ID == trainer.ID {
			r.Items[i] = trainer
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// QuestionRepo is an in-memory repositories.QuestionRepository
type QuestionRepo struct {
	Items []*entities.Question
}

func NewQuestionRepo() *QuestionRepo {
	return &QuestionRepo{}
}

func (r *QuestionRepo) ReplaceForSession(ctx context.Context, sessionID uuid.UUID, questions []*entities.Question) error {
	kept := r.Items[:0]
	for _, question := range r.Items {
		if question.SessionID == sessionID {
			continue
		}
		kept = append(kept, question)
	}
	r.Items = kept
	for _, question := range questions {
		if question.ID == uuid.Nil {
			question.ID = uuid.New()
		}
		r.Items = append(r.Items, question)
	}
	return nil
}

func (r *QuestionRepo) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Question, error) {
	var out []*entities.Question
	for _, question := range r.Items {
		if question.SessionID == sessionID {
			out = append(out, question)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *QuestionRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Question, error) {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []*entities.Question
	for _, question := range r.Items {
		if _, ok := wanted[question.ID]; ok {
			out = append(out, question)
		}
	}
	return out, nil
}

func (r *QuestionRepo) Update(ctx context.Context, question *entities.Question) error {
	for i, existing := range r.Items {
		if existing.ID == question.ID {
			r.Items[i] = question
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

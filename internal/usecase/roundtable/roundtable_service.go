package roundtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
	"github.com/roundtable-hub/roundtable/internal/infrastructure/cache"
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
	"github.com/roundtable-hub/roundtable/internal/usecase/notification"
	"github.com/roundtable-hub/roundtable/internal/usecase/voting"
	"github.com/roundtable-hub/roundtable/pkg/token"
)

const (
	defaultMinQuestions = 3
	defaultMaxQuestions = 10

	dashboardCacheTTL = time.Minute
)

// RoundtableService drives the roundtable state machine
type RoundtableService struct {
	roundtableRepo  repositories.RoundtableRepository
	topicRepo       repositories.TopicRepository
	sessionRepo     repositories.SessionRepository
	participantRepo repositories.ParticipantRepository
	voteRepo        repositories.VoteRepository
	clientRepo      repositories.ClientRepository
	votingService   voting.Service
	txManager       repositories.TxManager
	tokens          *token.Manager
	notifier        notification.Notifier
	store           cache.Store
	logger          *zap.Logger
}

// NewRoundtableService creates a new roundtable lifecycle service
func NewRoundtableService(
	roundtableRepo repositories.RoundtableRepository,
	topicRepo repositories.TopicRepository,
	sessionRepo repositories.SessionRepository,
	participantRepo repositories.ParticipantRepository,
	voteRepo repositories.VoteRepository,
	clientRepo repositories.ClientRepository,
	votingService voting.Service,
	txManager repositories.TxManager,
	tokens *token.Manager,
	notifier notification.Notifier,
	store cache.Store,
	logger *zap.Logger,
) *RoundtableService {
	return &RoundtableService{
		roundtableRepo:  roundtableRepo,
		topicRepo:       topicRepo,
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		voteRepo:        voteRepo,
		clientRepo:      clientRepo,
		votingService:   votingService,
		txManager:       txManager,
		tokens:          tokens,
		notifier:        notifier,
		store:           store,
		logger:          logger,
	}
}

// Create creates a roundtable with its 10 topics and 10 placeholder sessions
// in a single transaction. The topic and session sets are fixed for the
// roundtable's lifetime; later operations only mutate them.
func (s *RoundtableService) Create(ctx context.Context, input CreateInput) (*entities.Roundtable, error) {
	if len(input.Topics) != entities.TopicsPerRoundtable {
		return nil, usecaseErrors.ErrWrongTopicCount
	}

	if _, err := s.clientRepo.FindByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	minQuestions := input.MinQuestions
	if minQuestions <= 0 {
		minQuestions = defaultMinQuestions
	}
	maxQuestions := input.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = defaultMaxQuestions
	}
	if maxQuestions < minQuestions {
		return nil, usecaseErrors.ErrInvalidInput
	}

	roundtable := &entities.Roundtable{
		ClientID:        input.ClientID,
		Name:            input.Name,
		Description:     input.Description,
		Status:          entities.RoundtableStatusSetup,
		MaxParticipants: input.MaxParticipants,
		MinQuestions:    minQuestions,
		MaxQuestions:    maxQuestions,
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.roundtableRepo.Create(ctx, roundtable); err != nil {
			return fmt.Errorf("failed to create roundtable: %w", err)
		}

		topics := make([]*entities.Topic, 0, entities.TopicsPerRoundtable)
		for i, t := range input.Topics {
			topics = append(topics, &entities.Topic{
				RoundtableID: roundtable.ID,
				Title:        t.Title,
				Description:  t.Description,
				Position:     i + 1,
			})
		}
		if err := s.topicRepo.CreateBatch(ctx, topics); err != nil {
			return fmt.Errorf("failed to create topics: %w", err)
		}

		sessions := make([]*entities.Session, 0, entities.SessionsPerRoundtable)
		for i := 1; i <= entities.SessionsPerRoundtable; i++ {
			sessions = append(sessions, &entities.Session{
				RoundtableID:    roundtable.ID,
				SessionNumber:   i,
				Status:          entities.SessionStatusPlanned,
				QuestionsStatus: entities.QuestionsStatusNotSubmitted,
			})
		}
		if err := s.sessionRepo.CreateBatch(ctx, sessions); err != nil {
			return fmt.Errorf("failed to create sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("roundtable created",
		zap.String("roundtable_id", roundtable.ID.String()),
		zap.String("client_id", input.ClientID.String()),
	)
	return roundtable, nil
}

// Get retrieves a roundtable by ID
func (s *RoundtableService) Get(ctx context.Context, roundtableID uuid.UUID) (*entities.Roundtable, error) {
	roundtable, err := s.roundtableRepo.FindByID(ctx, roundtableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrRoundtableNotFound
		}
		return nil, fmt.Errorf("failed to get roundtable: %w", err)
	}
	return roundtable, nil
}

// List retrieves roundtables with filters
func (s *RoundtableService) List(ctx context.Context, filters repositories.RoundtableFilters) ([]*entities.Roundtable, int64, error) {
	roundtables, total, err := s.roundtableRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roundtables: %w", err)
	}
	return roundtables, total, nil
}

// OpenVoting transitions SETUP -> TOPIC_VOTING. It requires at least one
// active participant and returns the signed voting-access token. Invitations
// go out fire-and-forget after the transition commits.
func (s *RoundtableService) OpenVoting(ctx context.Context, roundtableID uuid.UUID) (string, error) {
	roundtable, err := s.Get(ctx, roundtableID)
	if err != nil {
		return "", err
	}

	if roundtable.Status != entities.RoundtableStatusSetup {
		return "", usecaseErrors.ErrInvalidState
	}

	activeCount, err := s.participantRepo.CountActiveByRoundtableID(ctx, roundtableID)
	if err != nil {
		return "", fmt.Errorf("failed to count participants: %w", err)
	}
	if activeCount == 0 {
		return "", usecaseErrors.ErrNoParticipants
	}

	votingToken, err := s.tokens.IssueVotingToken(roundtableID)
	if err != nil {
		return "", fmt.Errorf("failed to issue voting token: %w", err)
	}

	if err := s.roundtableRepo.UpdateStatus(ctx, roundtableID, entities.RoundtableStatusTopicVoting); err != nil {
		return "", fmt.Errorf("failed to update status: %w", err)
	}

	participants, err := s.participantRepo.FindByRoundtableID(ctx, roundtableID)
	if err != nil {
		s.logger.Warn("voting opened but participant list unavailable for invites",
			zap.String("roundtable_id", roundtableID.String()), zap.Error(err))
	} else {
		for _, p := range participants {
			if !p.IsActive() {
				continue
			}
			s.notifier.Notify(ctx, notification.KindVotingInvite, p.Email, map[string]string{
				"roundtable_id":   roundtableID.String(),
				"roundtable_name": roundtable.Name,
				"voting_token":    votingToken,
			})
		}
	}

	s.logger.Info("voting opened", zap.String("roundtable_id", roundtableID.String()))
	return votingToken, nil
}

// FinalizeVoting ranks topics through the voting engine, marks the top 8 as
// selected, and transitions TOPIC_VOTING -> SCHEDULED. Marking is a one-way
// write, so a second invocation fails on the state check instead of
// re-ranking. The 80% quorum is advisory and not enforced here.
func (s *RoundtableService) FinalizeVoting(ctx context.Context, roundtableID uuid.UUID) (*entities.Roundtable, error) {
	roundtable, err := s.Get(ctx, roundtableID)
	if err != nil {
		return nil, err
	}

	if roundtable.Status != entities.RoundtableStatusTopicVoting {
		return nil, usecaseErrors.ErrInvalidState
	}

	results, err := s.votingService.ComputeResults(ctx, roundtableID)
	if err != nil {
		return nil, err
	}
	if !results.CanFinalize {
		s.logger.Warn("finalizing below quorum",
			zap.String("roundtable_id", roundtableID.String()),
			zap.Int("voted", results.VotedParticipants),
			zap.Int("quorum", results.QuorumRequired),
		)
	}

	winners := results.TopN(entities.SelectedTopicsRequired)

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.topicRepo.MarkSelected(ctx, winners); err != nil {
			return fmt.Errorf("failed to mark selected topics: %w", err)
		}
		if err := s.roundtableRepo.UpdateStatus(ctx, roundtableID, entities.RoundtableStatusScheduled); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx, roundtableID)
	s.logger.Info("voting finalized",
		zap.String("roundtable_id", roundtableID.String()),
		zap.Int("selected_topics", len(winners)),
	)

	roundtable.Status = entities.RoundtableStatusScheduled
	return roundtable, nil
}

// Cancel moves the roundtable to CANCELLED, legal from any state except the
// terminal ones
func (s *RoundtableService) Cancel(ctx context.Context, roundtableID uuid.UUID) error {
	roundtable, err := s.Get(ctx, roundtableID)
	if err != nil {
		return err
	}

	if !roundtable.CanTransitionTo(entities.RoundtableStatusCancelled) {
		return usecaseErrors.ErrInvalidState
	}

	if err := s.roundtableRepo.UpdateStatus(ctx, roundtableID, entities.RoundtableStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel roundtable: %w", err)
	}

	s.invalidateDashboard(ctx, roundtableID)
	s.logger.Info("roundtable cancelled", zap.String("roundtable_id", roundtableID.String()))
	return nil
}

// AddParticipant registers a cohort member with a unique email per roundtable
func (s *RoundtableService) AddParticipant(ctx context.Context, roundtableID uuid.UUID, email, name string) (*entities.Participant, error) {
	if _, err := s.Get(ctx, roundtableID); err != nil {
		return nil, err
	}

	existing, err := s.participantRepo.FindByRoundtableAndEmail(ctx, roundtableID, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}
	if existing != nil {
		return nil, usecaseErrors.ErrParticipantExists
	}

	participant := &entities.Participant{
		RoundtableID: roundtableID,
		Email:        email,
		Name:         name,
		Status:       entities.ParticipantStatusActive,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return participant, nil
}

// DropParticipant marks a participant as dropped out. Their votes remain;
// they simply stop counting toward quorum and statistics.
func (s *RoundtableService) DropParticipant(ctx context.Context, participantID uuid.UUID) error {
	participant, err := s.participantRepo.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrNotFound
		}
		return fmt.Errorf("failed to get participant: %w", err)
	}

	participant.DropOut()
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return nil
}

// GetParticipants retrieves a roundtable's cohort
func (s *RoundtableService) GetParticipants(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Participant, error) {
	participants, err := s.participantRepo.FindByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	return participants, nil
}

// UpdateSessionStatus records session delivery and cascades roundtable
// status: the first delivered session moves SCHEDULED -> IN_PROGRESS, and
// full delivery moves IN_PROGRESS -> COMPLETED.
func (s *RoundtableService) UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status entities.SessionStatus) error {
	switch status {
	case entities.SessionStatusCompleted, entities.SessionStatusFeedbackSent, entities.SessionStatusCancelled:
	default:
		return usecaseErrors.ErrInvalidInput
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrSessionNotFound
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	session.Status = status
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	roundtable, err := s.Get(ctx, session.RoundtableID)
	if err != nil {
		return err
	}

	sessions, err := s.sessionRepo.FindByRoundtableID(ctx, session.RoundtableID)
	if err != nil {
		return fmt.Errorf("failed to get sessions: %w", err)
	}

	progress := CalculateProgress(sessions)
	var next entities.RoundtableStatus
	switch {
	case progress >= 100 && roundtable.Status == entities.RoundtableStatusInProgress:
		next = entities.RoundtableStatusCompleted
	case progress > 0 && roundtable.Status == entities.RoundtableStatusScheduled:
		next = entities.RoundtableStatusInProgress
	}
	if next != "" && roundtable.CanTransitionTo(next) {
		if err := s.roundtableRepo.UpdateStatus(ctx, roundtable.ID, next); err != nil {
			return fmt.Errorf("failed to update roundtable status: %w", err)
		}
	}

	s.invalidateDashboard(ctx, session.RoundtableID)
	return nil
}

// Dashboard returns aggregate figures for a roundtable, cached briefly
func (s *RoundtableService) Dashboard(ctx context.Context, roundtableID uuid.UUID) (*Dashboard, error) {
	key := dashboardCacheKey(roundtableID)
	if cached, ok := s.store.Get(ctx, key); ok {
		var dashboard Dashboard
		if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
			return &dashboard, nil
		}
		s.store.Delete(ctx, key)
	}

	roundtable, err := s.Get(ctx, roundtableID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.FindByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	activeCount, err := s.participantRepo.CountActiveByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	votedCount, err := s.voteRepo.CountDistinctVoters(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to count voters: %w", err)
	}

	dashboard := &Dashboard{
		RoundtableID:       roundtableID,
		Status:             roundtable.Status,
		ProgressPercent:    CalculateProgress(sessions),
		ActiveParticipants: int(activeCount),
		VotedParticipants:  int(votedCount),
		StartDate:          roundtable.StartDate,
		EndDate:            roundtable.EndDate,
	}
	for _, session := range sessions {
		if session.ScheduledAt != nil {
			dashboard.SessionsScheduled++
		}
		if session.IsDelivered() {
			dashboard.SessionsDelivered++
		}
		if session.TrainerID != nil {
			dashboard.SessionsWithTrainer++
		}
		if session.QuestionsStatus == entities.QuestionsStatusSentToParticipants {
			dashboard.QuestionsReleased++
		}
	}

	if encoded, err := json.Marshal(dashboard); err == nil {
		s.store.Set(ctx, key, string(encoded), dashboardCacheTTL)
	}
	return dashboard, nil
}

// CreateClient registers a client organization
func (s *RoundtableService) CreateClient(ctx context.Context, name, contactEmail string) (*entities.Client, error) {
	client := &entities.Client{Name: name, ContactEmail: contactEmail}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// DeleteClient removes a client. Refused while the client still owns a
// roundtable that has not completed or been cancelled.
func (s *RoundtableService) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	active, err := s.roundtableRepo.CountNonTerminalByClientID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to count roundtables: %w", err)
	}
	if active > 0 {
		return usecaseErrors.ErrClientHasActiveWork
	}

	if err := s.clientRepo.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *RoundtableService) invalidateDashboard(ctx context.Context, roundtableID uuid.UUID) {
	s.store.Delete(ctx, dashboardCacheKey(roundtableID))
}

func dashboardCacheKey(roundtableID uuid.UUID) string {
	return fmt.Sprintf("roundtable:dashboard:%s", roundtableID)
}

package voting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
	"github.com/roundtable-hub/roundtable/internal/infrastructure/cache"
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
)

// quorumFraction is the share of active participants that must have voted
// before finalization is considered ready. Advisory only: finalization is not
// blocked below it, the flag is surfaced to the caller.
const quorumFraction = 0.8

const resultsCacheTTL = 30 * time.Second

// VotingService handles topic-voting business logic
type VotingService struct {
	roundtableRepo  repositories.RoundtableRepository
	topicRepo       repositories.TopicRepository
	voteRepo        repositories.VoteRepository
	participantRepo repositories.ParticipantRepository
	txManager       repositories.TxManager
	store           cache.Store
	logger          *zap.Logger
}

// NewVotingService creates a new voting service
func NewVotingService(
	roundtableRepo repositories.RoundtableRepository,
	topicRepo repositories.TopicRepository,
	voteRepo repositories.VoteRepository,
	participantRepo repositories.ParticipantRepository,
	txManager repositories.TxManager,
	store cache.Store,
	logger *zap.Logger,
) *VotingService {
	return &VotingService{
		roundtableRepo:  roundtableRepo,
		topicRepo:       topicRepo,
		voteRepo:        voteRepo,
		participantRepo: participantRepo,
		txManager:       txManager,
		store:           store,
		logger:          logger,
	}
}

// SubmitVotes records a participant's ballot. The previous ballot is deleted
// and the new one inserted in a single transaction, so resubmission replaces
// rather than accumulates.
func (s *VotingService) SubmitVotes(ctx context.Context, roundtableID uuid.UUID, participantEmail string, topicIDs []uuid.UUID) error {
	roundtable, err := s.roundtableRepo.FindByID(ctx, roundtableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrRoundtableNotFound
		}
		return fmt.Errorf("failed to get roundtable: %w", err)
	}

	if roundtable.Status != entities.RoundtableStatusTopicVoting {
		return usecaseErrors.ErrVotingClosed
	}

	// Registration is the only eligibility check here. Dropped-out
	// participants may still submit a ballot; they are excluded from quorum
	// statistics only.
	participant, err := s.participantRepo.FindByRoundtableAndEmail(ctx, roundtableID, participantEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrNotRegistered
		}
		return fmt.Errorf("failed to get participant: %w", err)
	}

	unique := make(map[uuid.UUID]struct{}, len(topicIDs))
	for _, id := range topicIDs {
		unique[id] = struct{}{}
	}

	matched, err := s.topicRepo.CountByRoundtableAndIDs(ctx, roundtableID, topicIDs)
	if err != nil {
		return fmt.Errorf("failed to validate topics: %w", err)
	}
	if matched != int64(len(unique)) {
		return usecaseErrors.ErrInvalidTopic
	}

	if len(topicIDs) != entities.SelectedTopicsRequired || len(unique) != entities.SelectedTopicsRequired {
		return usecaseErrors.ErrInvalidSelectionCount
	}

	votes := make([]*entities.Vote, 0, len(topicIDs))
	for _, topicID := range topicIDs {
		votes = append(votes, &entities.Vote{
			RoundtableID:  roundtableID,
			TopicID:       topicID,
			ParticipantID: participant.ID,
		})
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		return s.voteRepo.ReplaceForParticipant(ctx, roundtableID, participant.ID, votes)
	})
	if err != nil {
		return fmt.Errorf("failed to replace votes: %w", err)
	}

	s.store.Delete(ctx, resultsCacheKey(roundtableID))
	s.logger.Info("ballot recorded",
		zap.String("roundtable_id", roundtableID.String()),
		zap.String("participant_id", participant.ID.String()),
	)
	return nil
}

// GetVotes retrieves a participant's current ballot
func (s *VotingService) GetVotes(ctx context.Context, roundtableID uuid.UUID, participantEmail string) ([]uuid.UUID, error) {
	participant, err := s.participantRepo.FindByRoundtableAndEmail(ctx, roundtableID, participantEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrNotRegistered
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	votes, err := s.voteRepo.FindByParticipant(ctx, roundtableID, participant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}

	topicIDs := make([]uuid.UUID, 0, len(votes))
	for _, v := range votes {
		topicIDs = append(topicIDs, v.TopicID)
	}
	return topicIDs, nil
}

// Results returns the aggregated voting results, served from cache when fresh
func (s *VotingService) Results(ctx context.Context, roundtableID uuid.UUID) (*Results, error) {
	key := resultsCacheKey(roundtableID)
	if cached, ok := s.store.Get(ctx, key); ok {
		var results Results
		if err := json.Unmarshal([]byte(cached), &results); err == nil {
			return &results, nil
		}
		s.store.Delete(ctx, key)
	}

	results, err := s.ComputeResults(ctx, roundtableID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(results); err == nil {
		s.store.Set(ctx, key, string(encoded), resultsCacheTTL)
	}
	return results, nil
}

// ComputeResults recomputes results from storage, bypassing the cache
func (s *VotingService) ComputeResults(ctx context.Context, roundtableID uuid.UUID) (*Results, error) {
	if _, err := s.roundtableRepo.FindByID(ctx, roundtableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrRoundtableNotFound
		}
		return nil, fmt.Errorf("failed to get roundtable: %w", err)
	}

	topics, err := s.topicRepo.FindByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}

	votes, err := s.voteRepo.FindByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}

	totalActive, err := s.participantRepo.CountActiveByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	voted, err := s.voteRepo.CountDistinctVoters(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to count voters: %w", err)
	}

	results := rank(roundtableID, topics, votes, int(totalActive))
	results.VotedParticipants = int(voted)
	results.QuorumRequired = int(math.Ceil(quorumFraction * float64(totalActive)))
	results.CanFinalize = results.VotedParticipants >= results.QuorumRequired
	return results, nil
}

// rank tallies votes per topic and orders them by vote count descending,
// breaking ties by topic position ascending
func rank(roundtableID uuid.UUID, topics []*entities.Topic, votes []*entities.Vote, totalActive int) *Results {
	counts := make(map[uuid.UUID]int, len(topics))
	for _, v := range votes {
		counts[v.TopicID]++
	}

	topicResults := make([]TopicResult, 0, len(topics))
	for _, t := range topics {
		count := counts[t.ID]
		percentage := 0
		if totalActive > 0 {
			percentage = int(math.Round(float64(count) / float64(totalActive) * 100))
		}
		topicResults = append(topicResults, TopicResult{
			TopicID:    t.ID,
			Title:      t.Title,
			Position:   t.Position,
			VoteCount:  count,
			Percentage: percentage,
			IsSelected: t.IsSelected,
		})
	}

	sort.SliceStable(topicResults, func(i, j int) bool {
		if topicResults[i].VoteCount != topicResults[j].VoteCount {
			return topicResults[i].VoteCount > topicResults[j].VoteCount
		}
		return topicResults[i].Position < topicResults[j].Position
	})

	return &Results{
		RoundtableID:            roundtableID,
		Topics:                  topicResults,
		TotalActiveParticipants: totalActive,
	}
}

func resultsCacheKey(roundtableID uuid.UUID) string {
	return fmt.Sprintf("voting:results:%s", roundtableID)
}

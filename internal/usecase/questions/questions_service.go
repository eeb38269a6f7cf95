package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
	"github.com/roundtable-hub/roundtable/internal/usecase/notification"
)

// QuestionsService gates trainer-submitted questions through review
type QuestionsService struct {
	questionRepo     repositories.QuestionRepository
	sessionRepo      repositories.SessionRepository
	roundtableRepo   repositories.RoundtableRepository
	trainerRepo      repositories.TrainerRepository
	txManager        repositories.TxManager
	notifier         notification.Notifier
	coordinatorEmail string
	logger           *zap.Logger
}

// NewQuestionsService creates a new question-approval service
func NewQuestionsService(
	questionRepo repositories.QuestionRepository,
	sessionRepo repositories.SessionRepository,
	roundtableRepo repositories.RoundtableRepository,
	trainerRepo repositories.TrainerRepository,
	txManager repositories.TxManager,
	notifier notification.Notifier,
	coordinatorEmail string,
	logger *zap.Logger,
) *QuestionsService {
	return &QuestionsService{
		questionRepo:     questionRepo,
		sessionRepo:      sessionRepo,
		roundtableRepo:   roundtableRepo,
		trainerRepo:      trainerRepo,
		txManager:        txManager,
		notifier:         notifier,
		coordinatorEmail: coordinatorEmail,
		logger:           logger,
	}
}

// Submit replaces the session's question set atomically. Only the assigned
// trainer may submit, and the count must stay within the roundtable's
// configured bounds.
func (s *QuestionsService) Submit(ctx context.Context, sessionID, trainerID uuid.UUID, texts []string) ([]*entities.Question, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.TrainerID == nil || *session.TrainerID != trainerID {
		return nil, usecaseErrors.ErrNotAssigned
	}

	roundtable, err := s.roundtableRepo.FindByID(ctx, session.RoundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roundtable: %w", err)
	}

	if len(texts) < roundtable.MinQuestions || len(texts) > roundtable.MaxQuestions {
		return nil, usecaseErrors.ErrInvalidQuestionCount
	}
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, usecaseErrors.ErrInvalidInput
		}
	}

	submitted := make([]*entities.Question, 0, len(texts))
	for i, text := range texts {
		submitted = append(submitted, &entities.Question{
			SessionID:  sessionID,
			Text:       text,
			OrderIndex: i + 1,
			Status:     entities.QuestionStatusPending,
		})
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.questionRepo.ReplaceForSession(ctx, sessionID, submitted); err != nil {
			return fmt.Errorf("failed to replace questions: %w", err)
		}
		return s.sessionRepo.UpdateQuestionsStatus(ctx, sessionID, entities.QuestionsStatusPendingApproval)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notification.KindQuestionsSubmitted, s.coordinatorEmail, map[string]string{
		"session_id":     sessionID.String(),
		"session_number": fmt.Sprintf("%d", session.SessionNumber),
		"count":          fmt.Sprintf("%d", len(submitted)),
	})
	s.logger.Info("questions submitted",
		zap.String("session_id", sessionID.String()),
		zap.Int("count", len(submitted)),
	)
	return submitted, nil
}

// GetBySession retrieves a session's questions
func (s *QuestionsService) GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*entities.Question, error) {
	questions, err := s.questionRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

// Review applies a batch of reviewer decisions, then recomputes the derived
// questions status of every session the batch touched. The aggregate is
// never written directly by callers; this recomputation is its only writer
// besides submission.
func (s *QuestionsService) Review(ctx context.Context, decisions []Decision) error {
	if len(decisions) == 0 {
		return usecaseErrors.ErrInvalidInput
	}

	ids := make([]uuid.UUID, 0, len(decisions))
	byID := make(map[uuid.UUID]Decision, len(decisions))
	for _, d := range decisions {
		switch d.Status {
		case entities.QuestionStatusApproved, entities.QuestionStatusNeedsRevision, entities.QuestionStatusRejected:
		default:
			return usecaseErrors.ErrInvalidInput
		}
		ids = append(ids, d.QuestionID)
		byID[d.QuestionID] = d
	}

	reviewed, err := s.questionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to get questions: %w", err)
	}
	if len(reviewed) != len(byID) {
		return usecaseErrors.ErrQuestionNotFound
	}

	touchedSessions := make(map[uuid.UUID]struct{})
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		for _, question := range reviewed {
			decision := byID[question.ID]
			question.Status = decision.Status
			question.ReviewNotes = decision.Notes
			question.Rating = decision.Rating
			if err := s.questionRepo.Update(ctx, question); err != nil {
				return fmt.Errorf("failed to update question: %w", err)
			}
			touchedSessions[question.SessionID] = struct{}{}
		}

		for sessionID := range touchedSessions {
			if err := s.recomputeSessionStatus(ctx, sessionID); err != nil {
				return err
			}
		}
		return nil
	})
	return err
}

// recomputeSessionStatus re-derives one session's aggregate questions status
// from its question set and notifies the trainer of the outcome when the
// status moves
func (s *QuestionsService) recomputeSessionStatus(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	rows, err := s.questionRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get questions: %w", err)
	}
	questions := make([]entities.Question, 0, len(rows))
	for _, q := range rows {
		questions = append(questions, *q)
	}

	roundtable, err := s.roundtableRepo.FindByID(ctx, session.RoundtableID)
	if err != nil {
		return fmt.Errorf("failed to get roundtable: %w", err)
	}

	next := entities.ComputeQuestionsStatus(questions, roundtable.MinQuestions)
	if next == session.QuestionsStatus {
		return nil
	}
	if err := s.sessionRepo.UpdateQuestionsStatus(ctx, sessionID, next); err != nil {
		return fmt.Errorf("failed to update questions status: %w", err)
	}

	switch next {
	case entities.QuestionsStatusRequestedFromCoordinator:
		s.notifyTrainer(ctx, session, notification.KindRevisionRequested, rows)
	case entities.QuestionsStatusSentToParticipants:
		s.notifyTrainer(ctx, session, notification.KindQuestionsReleased, nil)
	}
	return nil
}

// notifyTrainer tells the session's trainer about a review outcome. For
// revision requests the payload names the specific questions needing work.
func (s *QuestionsService) notifyTrainer(ctx context.Context, session *entities.Session, kind notification.Kind, rows []*entities.Question) {
	if session.TrainerID == nil {
		return
	}
	trainer, err := s.trainerRepo.FindByID(ctx, *session.TrainerID)
	if err != nil {
		s.logger.Warn("review processed but trainer lookup failed",
			zap.String("session_id", session.ID.String()), zap.Error(err))
		return
	}

	payload := map[string]string{
		"session_id":     session.ID.String(),
		"session_number": fmt.Sprintf("%d", session.SessionNumber),
	}
	if rows != nil {
		needsWork := make([]string, 0)
		for _, q := range rows {
			if q.NeedsWork() {
				needsWork = append(needsWork, q.ID.String())
			}
		}
		payload["questions_needing_work"] = strings.Join(needsWork, ",")
	}
	s.notifier.Notify(ctx, kind, trainer.Email, payload)
}

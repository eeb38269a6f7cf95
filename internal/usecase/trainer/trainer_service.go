package trainer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
	"github.com/roundtable-hub/roundtable/internal/usecase/notification"
)

// TrainerService handles trainer assignment and conflict detection
type TrainerService struct {
	trainerRepo repositories.TrainerRepository
	sessionRepo repositories.SessionRepository
	notifier    notification.Notifier
	logger      *zap.Logger
}

// NewTrainerService creates a new trainer service
func NewTrainerService(
	trainerRepo repositories.TrainerRepository,
	sessionRepo repositories.SessionRepository,
	notifier notification.Notifier,
	logger *zap.Logger,
) *TrainerService {
	return &TrainerService{
		trainerRepo: trainerRepo,
		sessionRepo: sessionRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// FindConflicts lists the trainer's sessions scheduled within the buffer
// window around the candidate time
func (s *TrainerService) FindConflicts(ctx context.Context, trainerID uuid.UUID, candidateTime time.Time, excludeSessionID *uuid.UUID) ([]*entities.Session, error) {
	from := candidateTime.Add(-AssignmentBuffer)
	to := candidateTime.Add(AssignmentBuffer)

	conflicts, err := s.sessionRepo.FindByTrainerBetween(ctx, trainerID, from, to, excludeSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find conflicts: %w", err)
	}
	return conflicts, nil
}

// HasConflict reports whether the trainer has any session within the buffer
// window around the candidate time
func (s *TrainerService) HasConflict(ctx context.Context, trainerID uuid.UUID, candidateTime time.Time, excludeSessionID *uuid.UUID) (bool, error) {
	conflicts, err := s.FindConflicts(ctx, trainerID, candidateTime, excludeSessionID)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// Assign attaches a trainer to a session
func (s *TrainerService) Assign(ctx context.Context, sessionID, trainerID uuid.UUID, skipConflictCheck bool) (*entities.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	trainer, err := s.trainerRepo.FindByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("failed to get trainer: %w", err)
	}
	if !trainer.IsActive {
		return nil, usecaseErrors.ErrTrainerInactive
	}

	if session.ScheduledAt != nil && !skipConflictCheck {
		conflicts, err := s.FindConflicts(ctx, trainerID, *session.ScheduledAt, &sessionID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{TrainerID: trainerID, Sessions: conflicts}
		}
	}

	session.TrainerID = &trainerID
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	payload := map[string]string{
		"session_id":     session.ID.String(),
		"session_number": fmt.Sprintf("%d", session.SessionNumber),
	}
	if session.ScheduledAt != nil {
		payload["scheduled_at"] = session.ScheduledAt.Format(time.RFC3339)
	}
	s.notifier.Notify(ctx, notification.KindTrainerAssignment, trainer.Email, payload)

	s.logger.Info("trainer assigned",
		zap.String("session_id", sessionID.String()),
		zap.String("trainer_id", trainerID.String()),
	)
	session.Trainer = trainer
	return session, nil
}

// AutoAssign distributes active trainers round-robin over the roundtable's
// unassigned topic sessions
func (s *TrainerService) AutoAssign(ctx context.Context, roundtableID uuid.UUID) ([]*entities.Session, error) {
	trainers, err := s.trainerRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trainers: %w", err)
	}
	if len(trainers) == 0 {
		return nil, usecaseErrors.ErrNoActiveTrainers
	}

	sessions, err := s.sessionRepo.FindByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	assigned := make([]*entities.Session, 0, len(sessions))
	next := 0
	for _, session := range sessions {
		if session.IsFixedSlot() || session.TrainerID != nil || session.ScheduledAt == nil {
			continue
		}

		// Try each trainer once, starting at the round-robin cursor, and
		// take the first without a collision.
		for attempt := 0; attempt < len(trainers); attempt++ {
			candidate := trainers[(next+attempt)%len(trainers)]
			hasConflict, err := s.HasConflict(ctx, candidate.ID, *session.ScheduledAt, &session.ID)
			if err != nil {
				return nil, err
			}
			if hasConflict {
				continue
			}

			trainerID := candidate.ID
			session.TrainerID = &trainerID
			if err := s.sessionRepo.Update(ctx, session); err != nil {
				return nil, fmt.Errorf("failed to update session: %w", err)
			}
			s.notifier.Notify(ctx, notification.KindTrainerAssignment, candidate.Email, map[string]string{
				"session_id":     session.ID.String(),
				"session_number": fmt.Sprintf("%d", session.SessionNumber),
				"scheduled_at":   session.ScheduledAt.Format(time.RFC3339),
			})
			assigned = append(assigned, session)
			next = (next + attempt + 1) % len(trainers)
			break
		}
	}

	s.logger.Info("auto-assignment finished",
		zap.String("roundtable_id", roundtableID.String()),
		zap.Int("assigned", len(assigned)),
	)
	return assigned, nil
}

// CreateTrainer registers a trainer
func (s *TrainerService) CreateTrainer(ctx context.Context, name, email string) (*entities.Trainer, error) {
	trainer := &entities.Trainer{Name: name, Email: email, IsActive: true}
	if err := s.trainerRepo.Create(ctx, trainer); err != nil {
		return nil, fmt.Errorf("failed to create trainer: %w", err)
	}
	return trainer, nil
}

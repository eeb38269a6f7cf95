package scheduling

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
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
	"github.com/roundtable-hub/roundtable/internal/usecase/notification"
)

const (
	defaultStartHour   = 14
	defaultDurationMin = 90
)

// rescheduleEntry is one record in a session's reschedule log
type rescheduleEntry struct {
	From   *time.Time `json:"from"`
	To     time.Time  `json:"to"`
	Reason string     `json:"reason"`
	At     time.Time  `json:"at"`
}

// SchedulingService places a roundtable's sessions on the calendar
type SchedulingService struct {
	roundtableRepo  repositories.RoundtableRepository
	topicRepo       repositories.TopicRepository
	sessionRepo     repositories.SessionRepository
	participantRepo repositories.ParticipantRepository
	txManager       repositories.TxManager
	notifier        notification.Notifier
	logger          *zap.Logger
}

// NewSchedulingService creates a new scheduling service
func NewSchedulingService(
	roundtableRepo repositories.RoundtableRepository,
	topicRepo repositories.TopicRepository,
	sessionRepo repositories.SessionRepository,
	participantRepo repositories.ParticipantRepository,
	txManager repositories.TxManager,
	notifier notification.Notifier,
	logger *zap.Logger,
) *SchedulingService {
	return &SchedulingService{
		roundtableRepo:  roundtableRepo,
		topicRepo:       topicRepo,
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// GenerateDates computes the 10 session dates for the given options. Pure:
// identical options always produce identical dates.
//
// Session 1 starts on the start date at the preferred time (14:00 default).
// Sessions 2-9 follow at the configured cadence; session 10 closes the
// program 9 (weekly) or 18 (bi-weekly) weeks after session 1. With weekend
// skipping, dates landing on Saturday or Sunday roll forward to the next
// weekday, never backward.
func GenerateDates(opts Options) [entities.SessionsPerRoundtable]time.Time {
	hour, minute := defaultStartHour, 0
	if opts.PreferredTime != nil {
		hour, minute = opts.PreferredTime.Hour, opts.PreferredTime.Minute
	}

	start := opts.StartDate
	first := time.Date(start.Year(), start.Month(), start.Day(), hour, minute, 0, 0, start.Location())

	intervalWeeks := 1
	if opts.Frequency == FrequencyBiWeekly {
		intervalWeeks = 2
	}

	var dates [entities.SessionsPerRoundtable]time.Time
	for i := 1; i <= entities.SessionsPerRoundtable; i++ {
		weeksOffset := (i - 1) * intervalWeeks
		date := first.AddDate(0, 0, weeksOffset*7)
		if opts.SkipWeekends {
			for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
				date = date.AddDate(0, 0, 1)
			}
		}
		dates[i-1] = date
	}
	return dates
}

// ScheduleSessions generates dates for all 10 sessions and assigns the
// finalized topics cyclically to sessions 2-9. All session updates and the
// roundtable's start/end dates are written in one transaction; a partially
// scheduled roundtable is never observable.
func (s *SchedulingService) ScheduleSessions(ctx context.Context, roundtableID uuid.UUID, opts Options) ([]*entities.Session, error) {
	roundtable, err := s.roundtableRepo.FindByID(ctx, roundtableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrRoundtableNotFound
		}
		return nil, fmt.Errorf("failed to get roundtable: %w", err)
	}

	if roundtable.Status != entities.RoundtableStatusScheduled {
		return nil, usecaseErrors.ErrInvalidState
	}

	finalized, err := s.topicRepo.FindSelectedByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get finalized topics: %w", err)
	}
	if len(finalized) == 0 {
		return nil, usecaseErrors.ErrTopicsNotFinalized
	}

	sessions, err := s.sessionRepo.FindByRoundtableID(ctx, roundtableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}
	if len(sessions) != entities.SessionsPerRoundtable {
		return nil, usecaseErrors.ErrScheduleIncomplete
	}

	durationMin := opts.SessionDurationMin
	if durationMin <= 0 {
		durationMin = defaultDurationMin
	}

	dates := GenerateDates(opts)
	for _, session := range sessions {
		date := dates[session.SessionNumber-1]
		session.ScheduledAt = &date
		session.DurationMin = durationMin
		session.Status = entities.SessionStatusScheduled

		if session.IsFixedSlot() {
			session.TopicID = nil
			continue
		}
		// Cyclic assignment; with the full set of 8 finalized topics this is
		// a 1:1 mapping, the modulo tolerates a smaller set.
		topic := finalized[(session.SessionNumber-2)%len(finalized)]
		topicID := topic.ID
		session.TopicID = &topicID
	}

	roundtable.StartDate = &dates[0]
	roundtable.EndDate = &dates[entities.SessionsPerRoundtable-1]
	if settings, err := json.Marshal(opts); err == nil {
		roundtable.Settings = settings
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.sessionRepo.UpdateBatch(ctx, sessions); err != nil {
			return fmt.Errorf("failed to update sessions: %w", err)
		}
		if err := s.roundtableRepo.Update(ctx, roundtable); err != nil {
			return fmt.Errorf("failed to update roundtable: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sessions scheduled",
		zap.String("roundtable_id", roundtableID.String()),
		zap.Time("start", dates[0]),
		zap.Time("end", dates[entities.SessionsPerRoundtable-1]),
	)
	return sessions, nil
}

// RescheduleSession moves one session to a new date, appends the move to the
// session's reschedule log, and notifies the trainer and active participants
func (s *SchedulingService) RescheduleSession(ctx context.Context, sessionID uuid.UUID, newDate time.Time, reason string) (*entities.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	entry := rescheduleEntry{
		From:   session.ScheduledAt,
		To:     newDate,
		Reason: reason,
		At:     time.Now(),
	}
	var log []rescheduleEntry
	if len(session.RescheduleLog) > 0 {
		// A corrupt log should not block a reschedule; start a fresh one.
		_ = json.Unmarshal(session.RescheduleLog, &log)
	}
	log = append(log, entry)
	if encoded, err := json.Marshal(log); err == nil {
		session.RescheduleLog = encoded
	}

	session.ScheduledAt = &newDate
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	payload := map[string]string{
		"session_id":     session.ID.String(),
		"session_number": fmt.Sprintf("%d", session.SessionNumber),
		"new_date":       newDate.Format(time.RFC3339),
		"reason":         reason,
	}
	if session.Trainer != nil {
		s.notifier.Notify(ctx, notification.KindSessionRescheduled, session.Trainer.Email, payload)
	}
	participants, err := s.participantRepo.FindByRoundtableID(ctx, session.RoundtableID)
	if err != nil {
		s.logger.Warn("session rescheduled but participant list unavailable",
			zap.String("session_id", sessionID.String()), zap.Error(err))
	} else {
		for _, p := range participants {
			if !p.IsActive() {
				continue
			}
			s.notifier.Notify(ctx, notification.KindSessionRescheduled, p.Email, payload)
		}
	}

	s.logger.Info("session rescheduled",
		zap.String("session_id", sessionID.String()),
		zap.Time("new_date", newDate),
	)
	return session, nil
}

package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Roundtable lifecycle errors
var (
	ErrRoundtableNotFound  = errors.New("roundtable not found")
	ErrInvalidState        = errors.New("operation not allowed in current roundtable state")
	ErrNoParticipants      = errors.New("cannot start voting without participants")
	ErrWrongTopicCount     = errors.New("a roundtable requires exactly 10 topics")
	ErrClientNotFound      = errors.New("client not found")
	ErrClientHasActiveWork = errors.New("client has roundtables that are not finished")
	ErrParticipantExists   = errors.New("participant with this email already registered")
)

// Voting errors
var (
	ErrVotingClosed          = errors.New("voting is not open for this roundtable")
	ErrNotRegistered         = errors.New("participant is not registered for this roundtable")
	ErrInvalidTopic          = errors.New("one or more topics do not belong to this roundtable")
	ErrInvalidSelectionCount = errors.New("exactly 8 topics must be selected")
	ErrTopicsNotFinalized    = errors.New("topics have not been finalized")
)

// Scheduling errors
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrScheduleIncomplete = errors.New("roundtable sessions are missing or incomplete")
)

// Trainer errors
var (
	ErrTrainerNotFound  = errors.New("trainer not found")
	ErrTrainerInactive  = errors.New("trainer is not active")
	ErrNoActiveTrainers = errors.New("no active trainers available")
)

// Question errors
var (
	ErrNotAssigned          = errors.New("trainer is not assigned to this session")
	ErrInvalidQuestionCount = errors.New("question count outside the roundtable's configured bounds")
	ErrQuestionNotFound     = errors.New("question not found")
)

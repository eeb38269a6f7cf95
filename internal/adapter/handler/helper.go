package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roundtable-hub/roundtable/internal/adapter/presenter"
	usecaseErrors "github.com/roundtable-hub/roundtable/internal/usecase/errors"
	trainerUsecase "github.com/roundtable-hub/roundtable/internal/usecase/trainer"
)

// statusMapping pairs a use case sentinel with its HTTP representation
type statusMapping struct {
	sentinel error
	status   int
	code     string
}

var statusMappings = []statusMapping{
	{usecaseErrors.ErrRoundtableNotFound, http.StatusNotFound, "roundtable_not_found"},
	{usecaseErrors.ErrClientNotFound, http.StatusNotFound, "client_not_found"},
	{usecaseErrors.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
	{usecaseErrors.ErrTrainerNotFound, http.StatusNotFound, "trainer_not_found"},
	{usecaseErrors.ErrQuestionNotFound, http.StatusNotFound, "question_not_found"},
	{usecaseErrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{usecaseErrors.ErrInvalidState, http.StatusConflict, "invalid_state"},
	{usecaseErrors.ErrClientHasActiveWork, http.StatusConflict, "client_has_active_roundtables"},
	{usecaseErrors.ErrParticipantExists, http.StatusConflict, "participant_already_registered"},
	{usecaseErrors.ErrVotingClosed, http.StatusConflict, "voting_closed"},
	{usecaseErrors.ErrTopicsNotFinalized, http.StatusConflict, "topics_not_finalized"},
	{usecaseErrors.ErrScheduleIncomplete, http.StatusConflict, "schedule_incomplete"},
	{usecaseErrors.ErrTrainerInactive, http.StatusConflict, "trainer_inactive"},
	{usecaseErrors.ErrNoParticipants, http.StatusUnprocessableEntity, "no_participants"},
	{usecaseErrors.ErrNoActiveTrainers, http.StatusUnprocessableEntity, "no_active_trainers"},
	{usecaseErrors.ErrWrongTopicCount, http.StatusUnprocessableEntity, "wrong_topic_count"},
	{usecaseErrors.ErrInvalidSelectionCount, http.StatusUnprocessableEntity, "invalid_selection_count"},
	{usecaseErrors.ErrInvalidQuestionCount, http.StatusUnprocessableEntity, "invalid_question_count"},
	{usecaseErrors.ErrInvalidTopic, http.StatusBadRequest, "invalid_topic"},
	{usecaseErrors.ErrNotRegistered, http.StatusForbidden, "not_registered"},
	{usecaseErrors.ErrNotAssigned, http.StatusForbidden, "not_assigned"},
	{usecaseErrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
}

// respondUsecaseError translates use case errors into JSON error responses.
// Trainer conflicts get a 409 carrying the colliding sessions so the caller
// can show them.
func respondUsecaseError(c echo.Context, err error) error {
	var conflictErr *trainerUsecase.ConflictError
	if errors.As(err, &conflictErr) {
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":                "trainer_conflict",
			"message":              conflictErr.Error(),
			"conflicting_sessions": presenter.ToSessionListResponse(conflictErr.Sessions),
		})
	}

	for _, m := range statusMappings {
		if errors.Is(err, m.sentinel) {
			return c.JSON(m.status, map[string]interface{}{
				"error":   m.code,
				"message": err.Error(),
			})
		}
	}

	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":   "internal_error",
		"message": err.Error(),
	})
}

// ExtractToken extracts the bearer token from the Authorization header
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// respondBindError reports a malformed request body
func respondBindError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":   "invalid_request",
		"message": err.Error(),
	})
}

// respondValidationError reports a failed request validation
func respondValidationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":   "validation_failed",
		"message": err.Error(),
	})
}

// respondInvalidID reports a path parameter that is not a valid UUID
func respondInvalidID(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":   "invalid_" + name,
		"message": name + " must be a valid UUID",
	})
}

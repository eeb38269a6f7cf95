package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	dto "github.com/roundtable-hub/roundtable/internal/adapter/dto/roundtable"
	"github.com/roundtable-hub/roundtable/internal/adapter/presenter"
	trainerUsecase "github.com/roundtable-hub/roundtable/internal/usecase/trainer"
)

// Trainer handles trainer assignment HTTP requests
type Trainer struct {
	trainerService trainerUsecase.Service
}

// NewTrainerHandler creates a new trainer handler
func NewTrainerHandler(trainerService trainerUsecase.Service) *Trainer {
	return &Trainer{
		trainerService: trainerService,
	}
}

// CreateTrainer handles POST /trainers
func (h *Trainer) CreateTrainer(c echo.Context) error {
	var req dto.CreateTrainerRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	trainer, err := h.trainerService.CreateTrainer(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToTrainerResponse(trainer))
}

// AssignTrainer handles POST /sessions/:id/trainer
func (h *Trainer) AssignTrainer(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "session_id")
	}

	var req dto.AssignTrainerRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	trainerID, err := uuid.Parse(req.TrainerID)
	if err != nil {
		return respondInvalidID(c, "trainer_id")
	}

	session, err := h.trainerService.Assign(c.Request().Context(), sessionID, trainerID, req.SkipConflictCheck)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToSessionResponse(session))
}

// CheckConflicts handles GET /trainers/:id/conflicts
func (h *Trainer) CheckConflicts(c echo.Context) error {
	trainerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "trainer_id")
	}

	at, err := time.Parse(time.RFC3339, c.QueryParam("at"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_at",
			"message": "at query parameter must be RFC3339",
		})
	}

	var excludeSessionID *uuid.UUID
	if raw := c.QueryParam("exclude_session_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respondInvalidID(c, "exclude_session_id")
		}
		excludeSessionID = &id
	}

	conflicts, err := h.trainerService.FindConflicts(c.Request().Context(), trainerID, at, excludeSessionID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"has_conflict":         len(conflicts) > 0,
		"conflicting_sessions": presenter.ToSessionListResponse(conflicts),
	})
}

// AutoAssign handles POST /roundtables/:id/auto-assign
func (h *Trainer) AutoAssign(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	sessions, err := h.trainerService.AutoAssign(c.Request().Context(), roundtableID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToSessionListResponse(sessions))
}

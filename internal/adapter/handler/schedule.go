package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	dto "github.com/roundtable-hub/roundtable/internal/adapter/dto/roundtable"
	"github.com/roundtable-hub/roundtable/internal/adapter/presenter"
	schedulingUsecase "github.com/roundtable-hub/roundtable/internal/usecase/scheduling"
)

// Schedule handles session-scheduling HTTP requests
type Schedule struct {
	schedulingService schedulingUsecase.Service
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(schedulingService schedulingUsecase.Service) *Schedule {
	return &Schedule{
		schedulingService: schedulingService,
	}
}

// ScheduleSessions handles POST /roundtables/:id/schedule
func (h *Schedule) ScheduleSessions(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	var req dto.ScheduleSessionsRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		// Accept a bare date as well; the preferred time fills in the clock.
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":   "invalid_start_date",
				"message": "start_date must be RFC3339 or YYYY-MM-DD",
			})
		}
	}

	opts := schedulingUsecase.Options{
		StartDate:          startDate,
		SessionDurationMin: req.SessionDurationMin,
		Frequency:          schedulingUsecase.Frequency(req.Frequency),
		SkipWeekends:       req.SkipWeekends,
	}
	if req.PreferredHour != nil {
		minute := 0
		if req.PreferredMinute != nil {
			minute = *req.PreferredMinute
		}
		opts.PreferredTime = &schedulingUsecase.TimeOfDay{Hour: *req.PreferredHour, Minute: minute}
	}

	sessions, err := h.schedulingService.ScheduleSessions(c.Request().Context(), roundtableID, opts)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToSessionListResponse(sessions))
}

// RescheduleSession handles POST /sessions/:id/reschedule
func (h *Schedule) RescheduleSession(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "session_id")
	}

	var req dto.RescheduleSessionRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	newDate, err := time.Parse(time.RFC3339, req.NewDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "invalid_new_date",
			"message": "new_date must be RFC3339",
		})
	}

	session, err := h.schedulingService.RescheduleSession(c.Request().Context(), sessionID, newDate, req.Reason)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToSessionResponse(session))
}

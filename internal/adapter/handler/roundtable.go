package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/roundtable-hub/roundtable/internal/adapter/dto/common"
	dto "github.com/roundtable-hub/roundtable/internal/adapter/dto/roundtable"
	"github.com/roundtable-hub/roundtable/internal/adapter/presenter"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	"github.com/roundtable-hub/roundtable/internal/domain/repositories"
	roundtableUsecase "github.com/roundtable-hub/roundtable/internal/usecase/roundtable"
)

// Roundtable handles roundtable lifecycle HTTP requests
type Roundtable struct {
	roundtableService roundtableUsecase.Service
}

// NewRoundtableHandler creates a new roundtable handler
func NewRoundtableHandler(roundtableService roundtableUsecase.Service) *Roundtable {
	return &Roundtable{
		roundtableService: roundtableService,
	}
}

// CreateClient handles POST /clients
func (h *Roundtable) CreateClient(c echo.Context) error {
	var req dto.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	client, err := h.roundtableService.CreateClient(c.Request().Context(), req.Name, req.ContactEmail)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToClientResponse(client))
}

// DeleteClient handles DELETE /clients/:id
func (h *Roundtable) DeleteClient(c echo.Context) error {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "client_id")
	}

	if err := h.roundtableService.DeleteClient(c.Request().Context(), clientID); err != nil {
		return respondUsecaseError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateRoundtable handles POST /roundtables
func (h *Roundtable) CreateRoundtable(c echo.Context) error {
	var req dto.CreateRoundtableRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return respondInvalidID(c, "client_id")
	}

	input := roundtableUsecase.CreateInput{
		ClientID:        clientID,
		Name:            req.Name,
		Description:     req.Description,
		MaxParticipants: req.MaxParticipants,
		MinQuestions:    req.MinQuestions,
		MaxQuestions:    req.MaxQuestions,
	}
	for _, t := range req.Topics {
		input.Topics = append(input.Topics, roundtableUsecase.TopicInput{
			Title:       t.Title,
			Description: t.Description,
		})
	}

	rt, err := h.roundtableService.Create(c.Request().Context(), input)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToRoundtableResponse(rt))
}

// GetRoundtable handles GET /roundtables/:id
func (h *Roundtable) GetRoundtable(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	rt, err := h.roundtableService.Get(c.Request().Context(), roundtableID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToRoundtableResponse(rt))
}

// ListRoundtables handles GET /roundtables
func (h *Roundtable) ListRoundtables(c echo.Context) error {
	page := 1
	pageSize := 20
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = v
	}

	filters := repositories.RoundtableFilters{
		Search: c.QueryParam("search"),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	if status := c.QueryParam("status"); status != "" {
		s := entities.RoundtableStatus(status)
		filters.Status = &s
	}
	if clientParam := c.QueryParam("client_id"); clientParam != "" {
		clientID, err := uuid.Parse(clientParam)
		if err != nil {
			return respondInvalidID(c, "client_id")
		}
		filters.ClientID = &clientID
	}

	roundtables, total, err := h.roundtableService.List(c.Request().Context(), filters)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	responses := make([]*dto.RoundtableResponse, len(roundtables))
	for i, rt := range roundtables {
		responses[i] = presenter.ToRoundtableResponse(rt)
	}

	return c.JSON(http.StatusOK, &common.ListResponse{
		Data: responses,
		Pagination: &common.PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
		},
	})
}

// OpenVoting handles POST /roundtables/:id/open-voting
func (h *Roundtable) OpenVoting(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	votingToken, err := h.roundtableService.OpenVoting(c.Request().Context(), roundtableID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, &dto.OpenVotingResponse{
		RoundtableID: roundtableID.String(),
		VotingToken:  votingToken,
		VotingURL:    fmt.Sprintf("/v1/roundtables/%s/votes?token=%s", roundtableID, votingToken),
	})
}

// FinalizeVoting handles POST /roundtables/:id/finalize-voting
func (h *Roundtable) FinalizeVoting(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	rt, err := h.roundtableService.FinalizeVoting(c.Request().Context(), roundtableID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToRoundtableResponse(rt))
}

// CancelRoundtable handles POST /roundtables/:id/cancel
func (h *Roundtable) CancelRoundtable(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	if err := h.roundtableService.Cancel(c.Request().Context(), roundtableID); err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "roundtable cancelled",
	})
}

// AddParticipant handles POST /roundtables/:id/participants
func (h *Roundtable) AddParticipant(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	var req dto.AddParticipantRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	participant, err := h.roundtableService.AddParticipant(c.Request().Context(), roundtableID, req.Email, req.Name)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToParticipantResponse(participant))
}

// GetParticipants handles GET /roundtables/:id/participants
func (h *Roundtable) GetParticipants(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	participants, err := h.roundtableService.GetParticipants(c.Request().Context(), roundtableID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToParticipantListResponse(participants))
}

// DropParticipant handles POST /participants/:id/drop
func (h *Roundtable) DropParticipant(c echo.Context) error {
	participantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "participant_id")
	}

	if err := h.roundtableService.DropParticipant(c.Request().Context(), participantID); err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "participant dropped out",
	})
}

// UpdateSessionStatus handles PATCH /sessions/:id/status
func (h *Roundtable) UpdateSessionStatus(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "session_id")
	}

	var req dto.UpdateSessionStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	status := entities.SessionStatus(req.Status)
	if err := h.roundtableService.UpdateSessionStatus(c.Request().Context(), sessionID, status); err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "session status updated",
	})
}

// GetDashboard handles GET /roundtables/:id/dashboard
func (h *Roundtable) GetDashboard(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	dashboard, err := h.roundtableService.Dashboard(c.Request().Context(), roundtableID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}

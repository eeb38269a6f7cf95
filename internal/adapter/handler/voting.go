package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	dto "github.com/roundtable-hub/roundtable/internal/adapter/dto/roundtable"
	votingUsecase "github.com/roundtable-hub/roundtable/internal/usecase/voting"
	"github.com/roundtable-hub/roundtable/pkg/token"
)

// Voting handles topic-voting HTTP requests
type Voting struct {
	votingService votingUsecase.Service
	tokenManager  *token.Manager
}

// NewVotingHandler creates a new voting handler
func NewVotingHandler(votingService votingUsecase.Service, tokenManager *token.Manager) *Voting {
	return &Voting{
		votingService: votingService,
		tokenManager:  tokenManager,
	}
}

// authorizeVotingAccess checks the voting-access token against the addressed
// roundtable. Participants reach the voting endpoints through the link that
// carries the token; no account login is involved.
func (h *Voting) authorizeVotingAccess(c echo.Context, roundtableID uuid.UUID) error {
	raw := c.QueryParam("token")
	if raw == "" {
		raw = ExtractToken(c.Request())
	}
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error":   "missing_voting_token",
			"message": "a voting-access token is required",
		})
	}

	grantedID, err := h.tokenManager.ValidateVotingToken(raw)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error":   "invalid_voting_token",
			"message": "the voting-access token is invalid or expired",
		})
	}
	if grantedID != roundtableID {
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"error":   "token_mismatch",
			"message": "the voting-access token does not match this roundtable",
		})
	}
	return nil
}

// SubmitVotes handles POST /roundtables/:id/votes
func (h *Voting) SubmitVotes(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}
	if err := h.authorizeVotingAccess(c, roundtableID); err != nil {
		return err
	}

	var req dto.SubmitVotesRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	topicIDs := make([]uuid.UUID, len(req.TopicIDs))
	for i, raw := range req.TopicIDs {
		topicID, err := uuid.Parse(raw)
		if err != nil {
			return respondInvalidID(c, "topic_id")
		}
		topicIDs[i] = topicID
	}

	if err := h.votingService.SubmitVotes(c.Request().Context(), roundtableID, req.ParticipantEmail, topicIDs); err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "ballot recorded",
	})
}

// GetVotes handles GET /roundtables/:id/votes
func (h *Voting) GetVotes(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}
	if err := h.authorizeVotingAccess(c, roundtableID); err != nil {
		return err
	}

	email := c.QueryParam("participant_email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "missing_participant_email",
			"message": "participant_email query parameter is required",
		})
	}

	topicIDs, err := h.votingService.GetVotes(c.Request().Context(), roundtableID, email)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	ids := make([]string, len(topicIDs))
	for i, id := range topicIDs {
		ids[i] = id.String()
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"topic_ids": ids,
	})
}

// GetResults handles GET /roundtables/:id/voting-results. Coordinator
// endpoint: served without a voting-access token.
func (h *Voting) GetResults(c echo.Context) error {
	roundtableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "roundtable_id")
	}

	results, err := h.votingService.Results(c.Request().Context(), roundtableID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, results)
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	dto "github.com/roundtable-hub/roundtable/internal/adapter/dto/roundtable"
	"github.com/roundtable-hub/roundtable/internal/adapter/presenter"
	"github.com/roundtable-hub/roundtable/internal/domain/entities"
	questionsUsecase "github.com/roundtable-hub/roundtable/internal/usecase/questions"
)

// Question handles question-approval HTTP requests
type Question struct {
	questionsService questionsUsecase.Service
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionsService questionsUsecase.Service) *Question {
	return &Question{
		questionsService: questionsService,
	}
}

// SubmitQuestions handles POST /sessions/:id/questions
func (h *Question) SubmitQuestions(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "session_id")
	}

	var req dto.SubmitQuestionsRequest
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

	questions, err := h.questionsService.Submit(c.Request().Context(), sessionID, trainerID, req.Questions)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusCreated, presenter.ToQuestionListResponse(questions))
}

// GetQuestions handles GET /sessions/:id/questions
func (h *Question) GetQuestions(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondInvalidID(c, "session_id")
	}

	questions, err := h.questionsService.GetBySession(c.Request().Context(), sessionID)
	if err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToQuestionListResponse(questions))
}

// ReviewQuestions handles POST /questions/review
func (h *Question) ReviewQuestions(c echo.Context) error {
	var req dto.ReviewQuestionsRequest
	if err := c.Bind(&req); err != nil {
		return respondBindError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	decisions := make([]questionsUsecase.Decision, len(req.Decisions))
	for i, d := range req.Decisions {
		questionID, err := uuid.Parse(d.QuestionID)
		if err != nil {
			return respondInvalidID(c, "question_id")
		}
		decisions[i] = questionsUsecase.Decision{
			QuestionID: questionID,
			Status:     entities.QuestionStatus(d.Status),
			Notes:      d.Notes,
			Rating:     d.Rating,
		}
	}

	if err := h.questionsService.Review(c.Request().Context(), decisions); err != nil {
		return respondUsecaseError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "review recorded",
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roundtable-hub/roundtable/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	roundtableHandler *Roundtable
	votingHandler     *Voting
	scheduleHandler   *Schedule
	trainerHandler    *Trainer
	questionHandler   *Question
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	roundtableHandler *Roundtable,
	votingHandler *Voting,
	scheduleHandler *Schedule,
	trainerHandler *Trainer,
	questionHandler *Question,
) *Router {
	return &Router{
		cfg:               cfg,
		roundtableHandler: roundtableHandler,
		votingHandler:     votingHandler,
		scheduleHandler:   scheduleHandler,
		trainerHandler:    trainerHandler,
		questionHandler:   questionHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupClientRoutes(v1)
	rt.setupRoundtableRoutes(v1)
	rt.setupSessionRoutes(v1)
	rt.setupTrainerRoutes(v1)
	rt.setupQuestionRoutes(v1)
	rt.setupParticipantRoutes(v1)
}

// setupClientRoutes configures client management routes
func (rt *Router) setupClientRoutes(g *echo.Group) {
	clientGroup := g.Group("/clients")

	clientGroup.POST("", rt.roundtableHandler.CreateClient)
	clientGroup.DELETE("/:id", rt.roundtableHandler.DeleteClient)
}

// setupRoundtableRoutes configures roundtable lifecycle routes
func (rt *Router) setupRoundtableRoutes(g *echo.Group) {
	roundtableGroup := g.Group("/roundtables")

	roundtableGroup.POST("", rt.roundtableHandler.CreateRoundtable)
	roundtableGroup.GET("", rt.roundtableHandler.ListRoundtables)
	roundtableGroup.GET("/:id", rt.roundtableHandler.GetRoundtable)
	roundtableGroup.POST("/:id/cancel", rt.roundtableHandler.CancelRoundtable)
	roundtableGroup.GET("/:id/dashboard", rt.roundtableHandler.GetDashboard)

	// Cohort
	roundtableGroup.POST("/:id/participants", rt.roundtableHandler.AddParticipant)
	roundtableGroup.GET("/:id/participants", rt.roundtableHandler.GetParticipants)

	// Topic voting
	roundtableGroup.POST("/:id/open-voting", rt.roundtableHandler.OpenVoting)
	roundtableGroup.POST("/:id/finalize-voting", rt.roundtableHandler.FinalizeVoting)
	roundtableGroup.POST("/:id/votes", rt.votingHandler.SubmitVotes)
	roundtableGroup.GET("/:id/votes", rt.votingHandler.GetVotes)
	roundtableGroup.GET("/:id/voting-results", rt.votingHandler.GetResults)

	// Scheduling and trainer distribution
	roundtableGroup.POST("/:id/schedule", rt.scheduleHandler.ScheduleSessions)
	roundtableGroup.POST("/:id/auto-assign", rt.trainerHandler.AutoAssign)
}

// setupSessionRoutes configures per-session routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessionGroup := g.Group("/sessions")

	sessionGroup.POST("/:id/reschedule", rt.scheduleHandler.RescheduleSession)
	sessionGroup.PATCH("/:id/status", rt.roundtableHandler.UpdateSessionStatus)
	sessionGroup.POST("/:id/trainer", rt.trainerHandler.AssignTrainer)
	sessionGroup.POST("/:id/questions", rt.questionHandler.SubmitQuestions)
	sessionGroup.GET("/:id/questions", rt.questionHandler.GetQuestions)
}

// setupTrainerRoutes configures trainer routes
func (rt *Router) setupTrainerRoutes(g *echo.Group) {
	trainerGroup := g.Group("/trainers")

	trainerGroup.POST("", rt.trainerHandler.CreateTrainer)
	trainerGroup.GET("/:id/conflicts", rt.trainerHandler.CheckConflicts)
}

// setupQuestionRoutes configures reviewer routes
func (rt *Router) setupQuestionRoutes(g *echo.Group) {
	questionGroup := g.Group("/questions")

	questionGroup.POST("/review", rt.questionHandler.ReviewQuestions)
}

// setupParticipantRoutes configures participant routes
func (rt *Router) setupParticipantRoutes(g *echo.Group) {
	participantGroup := g.Group("/participants")

	participantGroup.POST("/:id/drop", rt.roundtableHandler.DropParticipant)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/roundtable-hub/roundtable/pkg/validator"

	"github.com/roundtable-hub/roundtable/internal/adapter/handler"
	"github.com/roundtable-hub/roundtable/internal/adapter/repository"
	"github.com/roundtable-hub/roundtable/internal/infrastructure/cache"
	"github.com/roundtable-hub/roundtable/internal/infrastructure/database"
	"github.com/roundtable-hub/roundtable/internal/infrastructure/notification"
	"github.com/roundtable-hub/roundtable/internal/usecase/questions"
	"github.com/roundtable-hub/roundtable/internal/usecase/roundtable"
	"github.com/roundtable-hub/roundtable/internal/usecase/scheduling"
	"github.com/roundtable-hub/roundtable/internal/usecase/trainer"
	"github.com/roundtable-hub/roundtable/internal/usecase/voting"
	"github.com/roundtable-hub/roundtable/pkg/config"
	"github.com/roundtable-hub/roundtable/pkg/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply SQL migrations when explicitly enabled. Production deployments
	// should run sql-migrate from CI/CD instead.
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run sql-migrate from CI/CD for schema changes")
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if cfg.Server.Environment != "production" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize cache store. Redis when reachable, in-memory fallback for
	// local development without a Redis instance.
	log.Println("📦 Connecting to Redis...")
	var store cache.Store
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
		store = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient, logger)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	clientRepo := repository.NewClientRepository(db)
	roundtableRepo := repository.NewRoundtableRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize voting-access token manager
	log.Println("🔑 Initializing token manager...")
	tokenManager := token.NewManager(cfg.Voting.TokenSecret, cfg.Voting.TokenExpiry)

	// Initialize notifier
	notifier := notification.NewLogNotifier(logger)

	// Initialize services
	log.Println("✨ Initializing services...")
	votingService := voting.NewVotingService(
		roundtableRepo,
		topicRepo,
		voteRepo,
		participantRepo,
		txManager,
		store,
		logger,
	)
	roundtableService := roundtable.NewRoundtableService(
		roundtableRepo,
		topicRepo,
		sessionRepo,
		participantRepo,
		voteRepo,
		clientRepo,
		votingService,
		txManager,
		tokenManager,
		notifier,
		store,
		logger,
	)
	schedulingService := scheduling.NewSchedulingService(
		roundtableRepo,
		topicRepo,
		sessionRepo,
		participantRepo,
		txManager,
		notifier,
		logger,
	)
	trainerService := trainer.NewTrainerService(
		trainerRepo,
		sessionRepo,
		notifier,
		logger,
	)
	questionsService := questions.NewQuestionsService(
		questionRepo,
		sessionRepo,
		roundtableRepo,
		trainerRepo,
		txManager,
		notifier,
		cfg.Program.CoordinatorEmail,
		logger,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	roundtableHandler := handler.NewRoundtableHandler(roundtableService)
	votingHandler := handler.NewVotingHandler(votingService, tokenManager)
	scheduleHandler := handler.NewScheduleHandler(schedulingService)
	trainerHandler := handler.NewTrainerHandler(trainerService)
	questionHandler := handler.NewQuestionHandler(questionsService)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, roundtableHandler, votingHandler, scheduleHandler, trainerHandler, questionHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
}

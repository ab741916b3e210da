package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	httphandlers "github.com/rafabene/votex-backend/internal/handlers/http"
	"github.com/rafabene/votex-backend/internal/handlers/middleware"
	"github.com/rafabene/votex-backend/internal/infrastructure/auth"
	"github.com/rafabene/votex-backend/internal/infrastructure/config"
	"github.com/rafabene/votex-backend/internal/infrastructure/i18n"
	"github.com/rafabene/votex-backend/internal/infrastructure/logging"
	"github.com/rafabene/votex-backend/internal/infrastructure/metrics"
	"github.com/rafabene/votex-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/votex-backend/internal/infrastructure/realtime"
	"github.com/rafabene/votex-backend/internal/services"
)

const (
	shutdownTimeout    = 5 * time.Second
	hubBufferSize      = 32
	limiterIdleTimeout = 10 * time.Minute
)

//	@title						Votex API
//	@version					1.0
//	@description				Feedback boards where members post suggestions and vote on them.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting votex backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Sentry só é ativado com DSN
	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Env,
			AttachStacktrace: true,
		}); err != nil {
			logger.Error("sentry init failed", "error", err)
			sentryEnabled = false
		}
	}

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.IsProduction(), logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			logger.Error("failed to migrate database", "error", err)
			log.Fatal(err)
		}
		logger.Info("database migrated")
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	appMetrics := metrics.New()
	hub := realtime.NewHub(hubBufferSize, logger)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	votePageRepo := postgres.NewVotePageRepository(db)
	postRepo := postgres.NewPostRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	authz := services.NewAuthorizer()
	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Expiry)

	userService := services.NewUserService(userRepo, votePageRepo, uow, hasher, tokens, authz, logger)
	votePageService := services.NewVotePageService(userRepo, votePageRepo, postRepo, voteRepo, authz, logger)
	postService := services.NewPostService(postRepo, votePageRepo, userRepo, voteRepo, authz, hub, logger)
	voteService := services.NewVoteService(voteRepo, postRepo, votePageRepo, userRepo, uow, authz, hub, logger)
	commentService := services.NewCommentService(commentRepo, authz, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, appMetrics, logger)
	rateLimiter.StartCleanup(ctx, time.Minute, limiterIdleTimeout)

	router, err := httphandlers.NewRouter(httphandlers.Dependencies{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		I18n:            i18nService,
		Tokens:          tokens,
		Metrics:         appMetrics,
		RateLimiter:     rateLimiter,
		Hub:             hub,
		UserService:     userService,
		VotePageService: votePageService,
		PostService:     postService,
		VoteService:     voteService,
		CommentService:  commentService,
		SentryEnabled:   sentryEnabled,
	})
	if err != nil {
		logger.Error("failed to build router", "error", err)
		log.Fatal(err)
	}

	// HTTP Server
	srv := httphandlers.NewServer(cfg, router)

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// Conexões WebSocket não são acompanhadas por Shutdown
	hub.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}

	logger.Info("server exited")
}

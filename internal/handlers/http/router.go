package http

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/rafabene/votex-backend/docs"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/handlers/middleware"
	"github.com/rafabene/votex-backend/internal/infrastructure/config"
	"github.com/rafabene/votex-backend/internal/infrastructure/i18n"
	"github.com/rafabene/votex-backend/internal/infrastructure/metrics"
	"github.com/rafabene/votex-backend/internal/infrastructure/realtime"
	"github.com/rafabene/votex-backend/internal/services"
)

const readHeaderTimeout = 10 * time.Second

// Dependencies reúne o que o router precisa para montar os handlers
type Dependencies struct {
	Config      *config.Config
	Logger      ports.Logger
	DB          *gorm.DB
	I18n        *i18n.Service
	Tokens      ports.TokenIssuer
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
	Hub         *realtime.Hub

	UserService     *services.UserService
	VotePageService *services.VotePageService
	PostService     *services.PostService
	VoteService     *services.VoteService
	CommentService  *services.CommentService

	// SentryEnabled liga o middleware do Sentry, que só faz sentido com DSN
	SentryEnabled bool
}

// NewRouter monta o gin.Engine com middlewares e todas as rotas
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.SentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.BaseURL(cfg.Server.BaseURL))
	router.Use(middleware.I18n(deps.I18n))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	authHandler := NewAuthHandler(deps.UserService, deps.Logger)
	userHandler := NewUserHandler(deps.UserService, deps.Logger)
	votePageHandler := NewVotePageHandler(deps.VotePageService, deps.PostService, deps.Hub,
		middleware.ParseOrigins(cfg.CORS.AllowedOrigins), deps.Logger)
	postHandler := NewPostHandler(deps.PostService, deps.Logger)
	voteHandler := NewVoteHandler(deps.VoteService, deps.Metrics, deps.Logger)
	commentHandler := NewCommentHandler(deps.CommentService, deps.Logger)
	healthHandler := NewHealthHandler(deps.DB, cfg.Env, deps.Logger)

	router.GET("/health", healthHandler.Health)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limit := func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.Handler()
	}
	self := middleware.RequireSelf("id")

	api := router.Group("/api")
	api.GET("", healthHandler.Root)

	// Rotas públicas, limitadas por IP
	public := api.Group("", limit)
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
		public.GET("/check-user", userHandler.CheckUser)
		public.GET("/users/:id/username", userHandler.Username)
		public.GET("/users/:id/details", userHandler.Details)
	}

	// Rotas autenticadas, limitadas por usuário
	protected := api.Group("", middleware.Authenticate(deps.Tokens, deps.Logger), limit)
	{
		protected.GET("/users/suggestions", userHandler.Suggestions)
		protected.POST("/users/:id/avatar/add", self, userHandler.UpdateAvatar)

		votePages := protected.Group("/votepages")
		votePages.GET("/:id", self, votePageHandler.List)
		votePages.GET("/:id/details", votePageHandler.Details)
		votePages.GET("/:id/posts", votePageHandler.Posts)
		votePages.GET("/:id/live", votePageHandler.Live)
		votePages.POST("/:id/add", self, votePageHandler.Save)
		votePages.PUT("/:id/:votePageId", self, votePageHandler.Update)
		votePages.DELETE("/:id/:votePageId/delete", self, votePageHandler.Delete)

		posts := protected.Group("/posts")
		posts.POST("/add", postHandler.Upsert)
		posts.DELETE("/:postId/delete", postHandler.Delete)

		votes := protected.Group("/votes")
		votes.POST("/cast", voteHandler.Cast)
		votes.GET("/:postId", voteHandler.ListByPost)
		votes.GET("/:postId/tally", voteHandler.Tally)
		votes.DELETE("/:voteId/delete", voteHandler.Delete)

		comments := protected.Group("/comments")
		comments.POST("/add", commentHandler.Upsert)
		comments.DELETE("/:commentId/delete", commentHandler.Delete)
	}

	router.NoRoute(func(c *gin.Context) {
		dto.AbortWithProblem(c, dto.NotFoundErrorResponseI18n(c, "error.route_not_found"))
	})

	return router, nil
}

// NewServer cria o http.Server da API
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devcopilot/assistant-api/docs"
	"github.com/devcopilot/assistant-api/internal/api/handler"
	"github.com/devcopilot/assistant-api/internal/api/middleware"
	"github.com/devcopilot/assistant-api/internal/core/ports"
	"github.com/devcopilot/assistant-api/internal/core/service"
	mongostore "github.com/devcopilot/assistant-api/internal/infrastructure/db/mongo"
	"github.com/devcopilot/assistant-api/internal/realtime"
)

// Deps carries the long-lived collaborators the router wires into handlers.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	Gateway   ports.Gateway
	Index     ports.SnippetIndex
	History   handler.HistoryQueue
	Hub       *realtime.Hub
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("devcopilot"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(deps.DB)
	authService := service.NewAuthService(userRepo, deps.JWTSecret, deps.TokenTTL)
	prefsRepo := mongostore.NewPreferenceRepository(deps.DB)

	authHandler := handler.NewAuthHandler(authService)
	assistHandler := handler.NewAssistHandler(deps.Gateway, deps.History)
	searchHandler := handler.NewSearchHandler(deps.Index)
	prefsHandler := handler.NewPreferencesHandler(prefsRepo)
	realtimeHandler := realtime.NewHandler(deps.Hub)

	requiredAuth := middleware.Auth(deps.JWTSecret)
	optionalAuth := middleware.OptionalAuth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/me", authHandler.Me, requiredAuth)

	// --- Task routes (guests allowed, history for authenticated users) ---
	tasks := e.Group("/api", optionalAuth)
	tasks.POST("/generate", assistHandler.Generate)
	tasks.POST("/debug", assistHandler.Debug)
	tasks.POST("/security-scan", assistHandler.SecurityScan)
	tasks.POST("/review", assistHandler.Review)
	tasks.POST("/refactor", assistHandler.Refactor)
	tasks.POST("/generate-tests", assistHandler.GenerateTests)
	tasks.POST("/optimize", assistHandler.Optimize)
	tasks.POST("/generate-docs", assistHandler.Document)
	tasks.POST("/chat", assistHandler.Chat)
	tasks.POST("/chat/clear", assistHandler.ClearChat)

	// --- Search and metadata ---
	e.GET("/api/semantic-search", searchHandler.Search)
	e.GET("/api/languages", searchHandler.Languages)

	// --- Preferences ---
	e.GET("/api/preferences", prefsHandler.Get, requiredAuth)
	e.PUT("/api/preferences", prefsHandler.Update, requiredAuth)

	// --- Realtime relay ---
	e.GET("/ws/realtime", realtimeHandler.Serve, optionalAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

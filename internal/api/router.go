package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arkelabs/user-management-api/internal/api/handler"
	"github.com/arkelabs/user-management-api/internal/api/middleware"
	"github.com/arkelabs/user-management-api/internal/core/domain"
	"github.com/arkelabs/user-management-api/internal/core/ports"
	"github.com/arkelabs/user-management-api/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs. Mongo and Redis are nil
// when the deployment runs without them (memory store, no throttle); the
// readiness probe skips nil dependencies.
type Dependencies struct {
	Users  ports.UserService
	Auth   ports.AuthService
	Tokens ports.TokenService
	Repo   ports.UserRepository
	Mongo  *mongo.Database
	Redis  *redis.Client
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("usermgmt"))

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)

	authRequired := middleware.Auth(deps.Tokens, deps.Repo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh, middleware.RefreshGuard(deps.Tokens))

	// --- User routes ---
	users := e.Group("/users", authRequired)
	users.GET("/profile", userHandler.Profile)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update, adminOnly)
	users.PUT("/activate/:id", userHandler.Activate, adminOnly)
	users.PUT("/deactivate/:id", userHandler.Deactivate, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// The user-management API serves registration, authentication and
// role-guarded user CRUD over HTTP.
//
// @title        User Management API
// @version      1.0
// @description  User registration, authentication and role-based access control.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
//
// @securityDefinitions.apikey  RefreshToken
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/arkelabs/user-management-api/docs"
	"github.com/arkelabs/user-management-api/internal/api"
	"github.com/arkelabs/user-management-api/internal/core/ports"
	"github.com/arkelabs/user-management-api/internal/core/service"
	"github.com/arkelabs/user-management-api/internal/infrastructure/config"
	"github.com/arkelabs/user-management-api/internal/infrastructure/db/memory"
	mongodb "github.com/arkelabs/user-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/arkelabs/user-management-api/internal/infrastructure/db/redis"
	"github.com/arkelabs/user-management-api/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Missing or reused signing secrets are a startup failure, never a
	// per-request one.
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := service.NewTokenService(
		service.TokenConfig{Secret: cfg.JWT.AccessSecret, TTL: cfg.JWT.AccessTTL},
		service.TokenConfig{Secret: cfg.JWT.RefreshSecret, TTL: cfg.JWT.RefreshTTL},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("token service setup failed")
	}

	var (
		repo    ports.UserRepository
		mongoDB *mongo.Database
	)
	switch cfg.Store {
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		userRepo := mongodb.NewUserRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index setup failed")
		}
		repo = userRepo
		mongoDB = db
	default:
		log.Warn().Msg("using in-memory user store; data will not survive restarts")
		repo = memory.NewUserRepository()
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
	}

	authService := service.NewAuthService(repo, tokens, log)
	if rdb != nil {
		authService.WithThrottle(redisdb.NewLoginThrottle(rdb, 0, 0))
	}
	userService := service.NewUserService(repo, log)

	if cfg.Admin.Email != "" {
		if err := userService.EnsureDefaultAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("default admin bootstrap failed")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Users:  userService,
		Auth:   authService,
		Tokens: tokens,
		Repo:   repo,
		Mongo:  mongoDB,
		Redis:  rdb,
		Log:    log,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = e.Shutdown(context.Background())
	}()

	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}

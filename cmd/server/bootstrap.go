package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bb3/bodybuddy/internal/auth"
	"github.com/bb3/bodybuddy/internal/config"
	"github.com/bb3/bodybuddy/internal/handlers"
	"github.com/bb3/bodybuddy/internal/models"
	"github.com/bb3/bodybuddy/internal/services"
	"github.com/bb3/bodybuddy/internal/store"
	"github.com/bb3/bodybuddy/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	rdb       *redis.Client
	validator *auth.Validator
	users     *services.UserService

	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	gymHandler    *handlers.GymHandler
	chatHandler   *handlers.ChatHandler
	healthHandler *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: signing keys, database,
// Redis stores, services, handlers. Any failure here is fatal; the server
// must not come up with a partial auth stack.
func bootstrap(cfg *config.Config) *appServices {
	key, err := auth.NewKeyMaterial(cfg.JWT.Secret)
	if err != nil {
		logger.Fatalf("Invalid JWT secret: %v", err)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}

	refreshStore := store.NewRefreshStore(rdb)
	denyStore := store.NewDenyStore(rdb)

	codec := auth.NewCodec(key, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	validator := auth.NewValidator(codec, denyStore)

	db := models.GetDB()
	userService := services.NewUserService(db)
	gymService := services.NewGymService(db)
	chatService := services.NewChatService(db, gymService)

	sessions := auth.NewSessions(codec, refreshStore, denyStore, userService)

	if err := userService.EnsureAdmin(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		rdb:           rdb,
		validator:     validator,
		users:         userService,
		authHandler:   handlers.NewAuthHandler(userService, sessions),
		userHandler:   handlers.NewUserHandler(userService),
		gymHandler:    handlers.NewGymHandler(gymService),
		chatHandler:   handlers.NewChatHandler(chatService),
		healthHandler: handlers.NewHealthHandler(db, rdb),
	}
}

// shutdown releases external connections.
func (s *appServices) shutdown() {
	if err := s.rdb.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close Redis client")
	}
	logger.Info().Msg("Shutdown complete")
}

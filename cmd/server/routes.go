package main

import (
	"github.com/gin-gonic/gin"

	"github.com/bb3/bodybuddy/internal/middleware"
	"github.com/bb3/bodybuddy/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/signup", svc.authHandler.Signup)
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.validator, svc.users))
		{
			// Auth
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.PUT("/auth/password", svc.authHandler.ChangePassword)

			// Account and profiles
			protected.DELETE("/users/me", svc.userHandler.DeleteAccount)
			protected.PUT("/profile", svc.userHandler.UpdateProfile)
			protected.GET("/profiles/:id", svc.userHandler.GetProfile)

			// Gyms
			protected.GET("/gyms", svc.gymHandler.List)
			protected.GET("/gyms/:id", svc.gymHandler.Get)
			protected.POST("/gyms/:id/join", svc.gymHandler.Join)
			protected.DELETE("/gyms/:id/join", svc.gymHandler.Leave)

			// Chats
			protected.POST("/gyms/:id/chats", svc.chatHandler.Create)
			protected.GET("/gyms/:id/chats", svc.chatHandler.ListByGym)
			protected.POST("/chats/:id/join", svc.chatHandler.Join)
			protected.POST("/chats/:id/messages", svc.chatHandler.SendMessage)
			protected.GET("/chats/:id/messages", svc.chatHandler.Messages)
		}

		// Admin only routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(svc.validator, svc.users), middleware.AdminRequired(), middleware.AuditLog())
		{
			admin.POST("/gyms", svc.gymHandler.Create)
			admin.GET("/users", svc.userHandler.List)
			admin.PUT("/users/:id/active", svc.userHandler.SetActive)
		}
	}
}

package router

import (
	"github.com/gin-gonic/gin"

	"clausegenie/internal/config"
	"clausegenie/internal/handler"
	"clausegenie/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	sessionH *handler.SessionHandler,
	historyH *handler.HistoryHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Identity(cfg.Auth.Secret))

	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.Get)
	sessions.DELETE("/:id", sessionH.Reset)
	sessions.PUT("/:id/document", sessionH.LoadDocument)
	sessions.POST("/:id/document/sample", sessionH.LoadSample)
	sessions.POST("/:id/analyze", sessionH.Analyze)
	sessions.GET("/:id/result", sessionH.Result)
	sessions.POST("/:id/questions", sessionH.Ask)
	sessions.GET("/:id/chat", sessionH.Chat)
	sessions.GET("/:id/export", sessionH.Export)

	v1.GET("/history", historyH.List)

	return r
}

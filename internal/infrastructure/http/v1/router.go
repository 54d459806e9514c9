// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"livefilter/internal/domain/task"
	"livefilter/internal/infrastructure/http/v1/handlers"
	"livefilter/internal/infrastructure/http/v1/middleware"
	"livefilter/internal/infrastructure/storage/postgres"
	"livefilter/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool      *postgres.Pool
	TaskStore *postgres.Store[task.Task]
	Logger    *logger.Logger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	taskHandler := handlers.NewTaskHandler(cfg.TaskStore)
	api := router.Group("/api/v1")
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.List)
			tasks.GET("/fields", taskHandler.Fields)
			tasks.GET("/:id", taskHandler.Get)
		}
	}

	return router
}

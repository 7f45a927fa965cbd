// Package router provides graphlens service routing.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kart-io/graphlens/internal/graphlens/handler"
	"github.com/kart-io/graphlens/pkg/middleware"
)

// Register registers the graphlens routes on the engine.
func Register(engine *gin.Engine, maxUploadBytes int64,
	docHandler *handler.DocumentHandler,
	queryHandler *handler.QueryHandler,
	sysHandler *handler.SystemHandler,
) {
	logger.Info("Registering graphlens routes...")

	// Ingestion and document management
	engine.POST("/upload", middleware.BodyLimit(maxUploadBytes), docHandler.Upload)
	engine.GET("/documents", docHandler.List)
	engine.DELETE("/documents", docHandler.Delete)

	// Comparison query and tenant reset
	engine.POST("/query", queryHandler.Query)
	engine.POST("/reset-graph", queryHandler.Reset)

	// System endpoints
	engine.GET("/health", sysHandler.Health)
	engine.GET("/stats", sysHandler.Stats)
	engine.GET("/metrics", sysHandler.Metrics)

	logger.Info("HTTP routes registered")
}

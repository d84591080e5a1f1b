// Package v1 provides the HTTP API surface.
package v1

import (
	"github.com/gin-gonic/gin"

	"backroom/internal/domain/store"
	"backroom/internal/domain/warehouse"
	"backroom/internal/infrastructure/http/v1/handlers"
	"backroom/internal/infrastructure/http/v1/middleware"
	"backroom/pkg/logger"
)

// RouterConfig wires the router dependencies.
type RouterConfig struct {
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	StoreService     *store.Service
	WarehouseService *warehouse.Service

	DB handlers.Pinger

	// Development enables verbose gin output.
	Development bool
}

// NewRouter builds the gin engine with the full middleware chain:
// Recovery -> Trace -> Logger -> ErrorHandler, auth on /api/v1 only.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.Trace(),
		middleware.Logger(cfg.Logger),
		middleware.ErrorHandler(),
	)

	// Probes stay outside auth
	health := handlers.NewHealthHandler(cfg.DB)
	router.GET("/health/live", health.Live)
	router.GET("/health/ready", health.Ready)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTValidator))

	handlers.NewStoreHandler(cfg.StoreService).RegisterRoutes(api.Group("/stores"))
	handlers.NewWarehouseHandler(cfg.WarehouseService).RegisterRoutes(api.Group("/warehouses"))

	return router
}

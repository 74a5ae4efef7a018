package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
	"github.com/meypanhawath/corebank/internal/middleware"
	"github.com/meypanhawath/corebank/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service ports.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services portssvc.Provider) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services portssvc.Provider) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, services.Accounts(), services.Limits())
	registerTransactionRoutes(v1, services.Transactions())
	registerExchangeRoutes(v1, services.Exchange())
}

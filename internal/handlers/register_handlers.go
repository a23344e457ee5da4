package handlers

import (
	"net/http"

	"github.com/SscSPs/finance_dashboard/cmd/docs"
	portssvc "github.com/SscSPs/finance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/finance_dashboard/internal/middleware"
	"github.com/SscSPs/finance_dashboard/internal/platform/config"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// analytics may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	auth := newAuthHandler(services.Auth, services.Token, analytics)
	registerPublicAuthRoutes(r, auth)

	setupAPIV1Routes(r, services, auth, analytics)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	auth *authHandler,
	analytics *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(services.Token, services.Auth),
		middleware.PosthogMiddleware(analytics),
	)

	registerSessionRoutes(v1, auth)
	registerLedgerRoutes(v1, services.Finance, analytics)
	registerAccountRoutes(v1, services.Finance)
	registerTransactionRoutes(v1, services.Finance, services.Reporting)
	registerGoalRoutes(v1, services.Finance)
	registerReportingRoutes(v1, services.Reporting, services.Savings)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ScaffRent/rental_logistics_app/cmd/docs"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	portssvc "github.com/ScaffRent/rental_logistics_app/internal/core/ports/services"
	"github.com/ScaffRent/rental_logistics_app/internal/middleware"
	"github.com/ScaffRent/rental_logistics_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, services)

	setupAPIRoutes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group. Every endpoint requires a valid
// session holding at least one backoffice role; refund and credit note
// approval additionally require a finance-side role, and logistics writes
// require a role that operates the delivery workflow.
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	api := r.Group("/api",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RequireRoles(
			domain.RoleSuperUser,
			domain.RoleAdmin,
			domain.RoleSales,
			domain.RoleFinance,
			domain.RoleOperations,
		),
	)

	approverGuard := middleware.RequireRoles(domain.RoleSuperUser, domain.RoleAdmin, domain.RoleFinance)
	logisticsGuard := middleware.RequireRoles(domain.RoleSuperUser, domain.RoleAdmin, domain.RoleSales, domain.RoleOperations)

	registerRefundRoutes(api, services.Refund, approverGuard)
	registerCreditNoteRoutes(api, services.CreditNote, approverGuard)
	registerDeliveryRequestRoutes(api, services.DeliveryRequest, logisticsGuard)
	registerDeliveryOrderRoutes(api, services.DeliveryOrder, logisticsGuard)
	registerReturnRequestRoutes(api, services.ReturnRequest, logisticsGuard)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

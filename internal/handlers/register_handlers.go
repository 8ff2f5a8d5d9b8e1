package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/middleware"
	"github.com/bizflow/erp_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *ports.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: login and tenant signup.
	registerAuthRoutes(r, services.Auth, cfg.AuthRateLimit)
	registerPublicSubscriptionRoutes(r, services.SubscriptionRequest)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *ports.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerInvoiceRoutes(v1, services.Invoice)
	registerPaymentRoutes(v1, services.Payment)
	registerExpenseRoutes(v1, services.Expense)
	registerChequeRoutes(v1, services.Cheque)
	registerCustomerRoutes(v1, services.Customer)
	registerSupplierRoutes(v1, services.Supplier)
	registerProductRoutes(v1, services.Product)
	registerOrderRoutes(v1, services.Order)
	registerServiceRoutes(v1, services.Service)
	registerCompanyRoutes(v1, services.Company)
	registerUserRoutes(v1, services.User)
	registerSubscriptionRequestRoutes(v1, services.SubscriptionRequest)
}

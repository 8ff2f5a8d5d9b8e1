package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService ports.CustomerSvcFacade
}

func newCustomerHandler(customerService ports.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: customerService}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateCustomerRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create customer")
		return
	}

	logger.Info("Customer created successfully", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customers, err := h.customerService.ListCustomers(c.Request.Context(), c.Query("companyID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list customers")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponses(customers))
}

func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	updateReq := dto.UpdateCustomerRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete customer")
		return
	}

	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	c.Status(http.StatusNoContent)
}

// registerCustomerRoutes registers customer specific routes.
func registerCustomerRoutes(group *gin.RouterGroup, customerService ports.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := group.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		customers.PUT("/:customerID", h.updateCustomer)
		customers.DELETE("/:customerID", h.deleteCustomer)
	}
}

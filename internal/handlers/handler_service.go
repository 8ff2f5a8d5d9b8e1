package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// serviceHandler handles HTTP requests related to recurring services.
type serviceHandler struct {
	serviceService ports.ServiceSvcFacade
}

func newServiceHandler(serviceService ports.ServiceSvcFacade) *serviceHandler {
	return &serviceHandler{serviceService: serviceService}
}

func (h *serviceHandler) createService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateServiceRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createService", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	service, err := h.serviceService.CreateService(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create service")
		return
	}

	logger.Info("Service created successfully", slog.String("service_id", service.ServiceID))
	c.JSON(http.StatusCreated, dto.ToServiceResponse(service))
}

func (h *serviceHandler) getService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	service, err := h.serviceService.GetServiceByID(c.Request.Context(), serviceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve service")
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

func (h *serviceHandler) listServices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListServicesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listServices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	services, err := h.serviceService.ListServices(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list services")
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponses(services))
}

func (h *serviceHandler) updateService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	updateReq := dto.UpdateServiceRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateService", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	service, err := h.serviceService.UpdateService(c.Request.Context(), serviceID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

func (h *serviceHandler) addExpenseRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	expenseReq := dto.AddServiceExpenseRequest{}
	if err := c.ShouldBindJSON(&expenseReq); err != nil {
		logger.Error("Failed to bind JSON for addExpenseRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	service, err := h.serviceService.AddExpenseRecord(c.Request.Context(), serviceID, expenseReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record service expense")
		return
	}

	logger.Info("Service expense recorded",
		slog.String("service_id", serviceID),
		slog.String("expense_id", expenseReq.ExpenseID),
		slog.String("total_expenses", service.TotalExpenses.String()))
	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

func (h *serviceHandler) removeExpenseRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")
	expenseID := c.Param("expenseID")

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	service, err := h.serviceService.RemoveExpenseRecord(c.Request.Context(), serviceID, expenseID, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to remove service expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

func (h *serviceHandler) addProvider(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	providerReq := dto.AddProviderRequest{}
	if err := c.ShouldBindJSON(&providerReq); err != nil {
		logger.Error("Failed to bind JSON for addProvider", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	service, err := h.serviceService.AddProvider(c.Request.Context(), serviceID, providerReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add provider")
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

func (h *serviceHandler) removeProvider(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")
	supplierID := c.Param("supplierID")

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	service, err := h.serviceService.RemoveProvider(c.Request.Context(), serviceID, supplierID, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to remove provider")
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

func (h *serviceHandler) deleteService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	if err := h.serviceService.DeleteService(c.Request.Context(), serviceID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete service")
		return
	}

	logger.Info("Service deleted", slog.String("service_id", serviceID))
	c.Status(http.StatusNoContent)
}

func (h *serviceHandler) deleteAllServices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	deleted, err := h.serviceService.DeleteAllServices(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete services")
		return
	}

	logger.Info("All services deleted", slog.Int64("count", deleted))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// registerServiceRoutes registers recurring-service specific routes.
func registerServiceRoutes(group *gin.RouterGroup, serviceService ports.ServiceSvcFacade) {
	h := newServiceHandler(serviceService)

	services := group.Group("/services")
	{
		services.POST("", h.createService)
		services.GET("", h.listServices)
		services.DELETE("", h.deleteAllServices)
		services.GET("/:serviceID", h.getService)
		services.PUT("/:serviceID", h.updateService)
		services.POST("/:serviceID/expenses", h.addExpenseRecord)
		services.DELETE("/:serviceID/expenses/:expenseID", h.removeExpenseRecord)
		services.POST("/:serviceID/providers", h.addProvider)
		services.DELETE("/:serviceID/providers/:supplierID", h.removeProvider)
		services.DELETE("/:serviceID", h.deleteService)
	}
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// supplierHandler handles HTTP requests related to suppliers.
type supplierHandler struct {
	supplierService ports.SupplierSvcFacade
}

func newSupplierHandler(supplierService ports.SupplierSvcFacade) *supplierHandler {
	return &supplierHandler{supplierService: supplierService}
}

func (h *supplierHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateSupplierRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createSupplier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create supplier")
		return
	}

	logger.Info("Supplier created successfully", slog.String("supplier_id", supplier.SupplierID))
	c.JSON(http.StatusCreated, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) getSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("supplierID")

	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), supplierID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve supplier")
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) listSuppliers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), c.Query("companyID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list suppliers")
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponses(suppliers))
}

func (h *supplierHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("supplierID")

	updateReq := dto.UpdateSupplierRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateSupplier", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), supplierID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, dto.ToSupplierResponse(supplier))
}

func (h *supplierHandler) deleteSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplierID := c.Param("supplierID")

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), supplierID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete supplier")
		return
	}

	logger.Info("Supplier deleted", slog.String("supplier_id", supplierID))
	c.Status(http.StatusNoContent)
}

// registerSupplierRoutes registers supplier specific routes.
func registerSupplierRoutes(group *gin.RouterGroup, supplierService ports.SupplierSvcFacade) {
	h := newSupplierHandler(supplierService)

	suppliers := group.Group("/suppliers")
	{
		suppliers.POST("", h.createSupplier)
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:supplierID", h.getSupplier)
		suppliers.PUT("/:supplierID", h.updateSupplier)
		suppliers.DELETE("/:supplierID", h.deleteSupplier)
	}
}

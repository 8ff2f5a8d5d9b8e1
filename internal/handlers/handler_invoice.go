package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices and their
// settlement ledger.
type invoiceHandler struct {
	invoiceService ports.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(invoiceService ports.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: invoiceService}
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateInvoiceRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create invoice")
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListInvoicesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	updateReq := dto.UpdateInvoiceRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	statusReq := dto.UpdateInvoiceStatusRequest{}
	if err := c.ShouldBindJSON(&statusReq); err != nil {
		logger.Error("Failed to bind JSON for updateInvoiceStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), invoiceID, statusReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update invoice status")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// settlementOp is the shape shared by the four attach/detach endpoints.
type settlementOp func(ctx *gin.Context, invoiceID, referenceID, userID string) (*domain.Invoice, error)

// runSettlementOp executes an attach or detach against the invoice in the path.
// Attach endpoints carry the reference in the request body; detach endpoints
// carry it as a path parameter.
func (h *invoiceHandler) runSettlementOp(c *gin.Context, referenceID string, op settlementOp, failureMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	invoice, err := op(c, invoiceID, referenceID, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, failureMsg)
		return
	}

	logger.Info("Invoice settlement updated",
		slog.String("invoice_id", invoiceID),
		slog.String("reference_id", referenceID),
		slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *invoiceHandler) bindSettlementRef(c *gin.Context) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	attachReq := dto.AttachSettlementRequest{}
	if err := c.ShouldBindJSON(&attachReq); err != nil {
		logger.Error("Failed to bind JSON for settlement attach", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return "", false
	}
	return attachReq.ReferenceID, true
}

func (h *invoiceHandler) attachPayment(c *gin.Context) {
	referenceID, ok := h.bindSettlementRef(c)
	if !ok {
		return
	}
	h.runSettlementOp(c, referenceID, func(ctx *gin.Context, invoiceID, referenceID, userID string) (*domain.Invoice, error) {
		return h.invoiceService.AttachPayment(ctx.Request.Context(), invoiceID, referenceID, userID)
	}, "Failed to apply payment to invoice")
}

func (h *invoiceHandler) detachPayment(c *gin.Context) {
	h.runSettlementOp(c, c.Param("paymentID"), func(ctx *gin.Context, invoiceID, referenceID, userID string) (*domain.Invoice, error) {
		return h.invoiceService.DetachPayment(ctx.Request.Context(), invoiceID, referenceID, userID)
	}, "Failed to remove payment from invoice")
}

func (h *invoiceHandler) attachExpense(c *gin.Context) {
	referenceID, ok := h.bindSettlementRef(c)
	if !ok {
		return
	}
	h.runSettlementOp(c, referenceID, func(ctx *gin.Context, invoiceID, referenceID, userID string) (*domain.Invoice, error) {
		return h.invoiceService.AttachExpense(ctx.Request.Context(), invoiceID, referenceID, userID)
	}, "Failed to apply expense to invoice")
}

func (h *invoiceHandler) detachExpense(c *gin.Context) {
	h.runSettlementOp(c, c.Param("expenseID"), func(ctx *gin.Context, invoiceID, referenceID, userID string) (*domain.Invoice, error) {
		return h.invoiceService.DetachExpense(ctx.Request.Context(), invoiceID, referenceID, userID)
	}, "Failed to remove expense from invoice")
}

func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete invoice")
		return
	}

	logger.Info("Invoice deleted", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}

func (h *invoiceHandler) deleteAllInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	deleted, err := h.invoiceService.DeleteAllInvoices(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete invoices")
		return
	}

	logger.Info("All invoices deleted", slog.Int64("count", deleted))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// registerInvoiceRoutes registers invoice specific routes.
func registerInvoiceRoutes(group *gin.RouterGroup, invoiceService ports.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := group.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.DELETE("", h.deleteAllInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.PATCH("/:invoiceID/status", h.updateInvoiceStatus)
		invoices.POST("/:invoiceID/payments", h.attachPayment)
		invoices.DELETE("/:invoiceID/payments/:paymentID", h.detachPayment)
		invoices.POST("/:invoiceID/expenses", h.attachExpense)
		invoices.DELETE("/:invoiceID/expenses/:expenseID", h.detachExpense)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
	}
}

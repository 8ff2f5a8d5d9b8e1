package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// paymentHandler handles HTTP requests related to customer payments.
type paymentHandler struct {
	paymentService ports.PaymentSvcFacade
}

func newPaymentHandler(paymentService ports.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreatePaymentRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create payment")
		return
	}

	logger.Info("Payment created successfully", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListPaymentsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
}

func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	updateReq := dto.UpdatePaymentRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), paymentID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	deleterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), paymentID, deleterUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete payment")
		return
	}

	logger.Info("Payment deleted", slog.String("payment_id", paymentID))
	c.Status(http.StatusNoContent)
}

func (h *paymentHandler) deleteAllPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	deleterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	deleted, err := h.paymentService.DeleteAllPayments(c.Request.Context(), deleterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete payments")
		return
	}

	logger.Info("All payments deleted", slog.Int64("count", deleted))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// registerPaymentRoutes registers payment specific routes.
func registerPaymentRoutes(group *gin.RouterGroup, paymentService ports.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := group.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.DELETE("", h.deleteAllPayments)
		payments.GET("/:paymentID", h.getPayment)
		payments.PUT("/:paymentID", h.updatePayment)
		payments.DELETE("/:paymentID", h.deletePayment)
	}
}

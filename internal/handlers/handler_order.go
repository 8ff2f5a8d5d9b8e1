package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// orderHandler handles HTTP requests related to orders and delivery tracking.
type orderHandler struct {
	orderService ports.OrderSvcFacade
}

func newOrderHandler(orderService ports.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: orderService}
}

func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateOrderRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create order")
		return
	}

	logger.Info("Order created successfully", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListOrdersParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listOrders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

func (h *orderHandler) updateOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	updateReq := dto.UpdateOrderRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), orderID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	statusReq := dto.UpdateOrderStatusRequest{}
	if err := c.ShouldBindJSON(&statusReq); err != nil {
		logger.Error("Failed to bind JSON for updateOrderStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, statusReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) updateDeliveryStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	statusReq := dto.UpdateDeliveryStatusRequest{}
	if err := c.ShouldBindJSON(&statusReq); err != nil {
		logger.Error("Failed to bind JSON for updateDeliveryStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateDeliveryStatus(c.Request.Context(), orderID, statusReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update delivery status")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) assignDriver(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	driverReq := dto.AssignDriverRequest{}
	if err := c.ShouldBindJSON(&driverReq); err != nil {
		logger.Error("Failed to bind JSON for assignDriver", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	order, err := h.orderService.AssignDriver(c.Request.Context(), orderID, driverReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to assign driver")
		return
	}

	logger.Info("Driver assigned to order", slog.String("order_id", orderID), slog.String("driver_id", driverReq.DriverID))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) deleteOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete order")
		return
	}

	logger.Info("Order deleted", slog.String("order_id", orderID))
	c.Status(http.StatusNoContent)
}

func (h *orderHandler) deleteAllOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	deleted, err := h.orderService.DeleteAllOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete orders")
		return
	}

	logger.Info("All orders deleted", slog.Int64("count", deleted))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// registerOrderRoutes registers order specific routes.
func registerOrderRoutes(group *gin.RouterGroup, orderService ports.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := group.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.DELETE("", h.deleteAllOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.PUT("/:orderID", h.updateOrder)
		orders.PATCH("/:orderID/status", h.updateOrderStatus)
		orders.PATCH("/:orderID/delivery-status", h.updateDeliveryStatus)
		orders.PATCH("/:orderID/driver", h.assignDriver)
		orders.DELETE("/:orderID", h.deleteOrder)
	}
}

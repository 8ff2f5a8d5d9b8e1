package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// subscriptionRequestHandler handles tenant signup requests. Submission is
// public; review is behind auth.
type subscriptionRequestHandler struct {
	requestService ports.SubscriptionRequestSvcFacade
}

func newSubscriptionRequestHandler(requestService ports.SubscriptionRequestSvcFacade) *subscriptionRequestHandler {
	return &subscriptionRequestHandler{requestService: requestService}
}

func (h *subscriptionRequestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateSubscriptionRequestRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), createReq)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit subscription request")
		return
	}

	logger.Info("Subscription request submitted", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusCreated, dto.ToSubscriptionRequestResponse(request))
}

func (h *subscriptionRequestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	request, err := h.requestService.GetRequestByID(c.Request.Context(), requestID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve subscription request")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionRequestResponse(request))
}

func (h *subscriptionRequestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListSubscriptionRequestsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	requests, err := h.requestService.ListRequests(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list subscription requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionRequestResponses(requests))
}

func (h *subscriptionRequestHandler) processRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	processReq := dto.ProcessSubscriptionRequestRequest{}
	if err := c.ShouldBindJSON(&processReq); err != nil {
		logger.Error("Failed to bind JSON for processRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	processorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	request, err := h.requestService.ProcessRequest(c.Request.Context(), requestID, processReq, processorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to process subscription request")
		return
	}

	logger.Info("Subscription request processed",
		slog.String("request_id", requestID),
		slog.String("status", string(request.Status)))
	c.JSON(http.StatusOK, dto.ToSubscriptionRequestResponse(request))
}

func (h *subscriptionRequestHandler) deleteRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	if err := h.requestService.DeleteRequest(c.Request.Context(), requestID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete subscription request")
		return
	}

	logger.Info("Subscription request deleted", slog.String("request_id", requestID))
	c.Status(http.StatusNoContent)
}

// registerPublicSubscriptionRoutes exposes the rate-limited public submission
// endpoint.
func registerPublicSubscriptionRoutes(r *gin.Engine, requestService ports.SubscriptionRequestSvcFacade) {
	h := newSubscriptionRequestHandler(requestService)

	rate, _ := limiter.NewRateFromFormatted("3-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	r.POST("/api/v1/subscription-requests", middleware.RateLimit(ipLimiter), h.createRequest)
}

// registerSubscriptionRequestRoutes registers the authenticated review routes.
func registerSubscriptionRequestRoutes(group *gin.RouterGroup, requestService ports.SubscriptionRequestSvcFacade) {
	h := newSubscriptionRequestHandler(requestService)

	requests := group.Group("/subscription-requests")
	{
		requests.GET("", h.listRequests)
		requests.GET("/:requestID", h.getRequest)
		requests.PATCH("/:requestID", h.processRequest)
		requests.DELETE("/:requestID", h.deleteRequest)
	}
}

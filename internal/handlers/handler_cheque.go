package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// chequeHandler handles HTTP requests related to cheques.
type chequeHandler struct {
	chequeService ports.ChequeSvcFacade
}

func newChequeHandler(chequeService ports.ChequeSvcFacade) *chequeHandler {
	return &chequeHandler{chequeService: chequeService}
}

func (h *chequeHandler) createCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateChequeRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createCheque", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cheque, err := h.chequeService.CreateCheque(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create cheque")
		return
	}

	logger.Info("Cheque created successfully", slog.String("cheque_id", cheque.ChequeID))
	c.JSON(http.StatusCreated, dto.ToChequeResponse(cheque))
}

func (h *chequeHandler) getCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID := c.Param("chequeID")

	cheque, err := h.chequeService.GetChequeByID(c.Request.Context(), chequeID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve cheque")
		return
	}

	c.JSON(http.StatusOK, dto.ToChequeResponse(cheque))
}

func (h *chequeHandler) listCheques(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListChequesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listCheques", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	cheques, err := h.chequeService.ListCheques(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list cheques")
		return
	}

	c.JSON(http.StatusOK, dto.ToChequeResponses(cheques))
}

func (h *chequeHandler) updateCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID := c.Param("chequeID")

	updateReq := dto.UpdateChequeRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateCheque", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cheque, err := h.chequeService.UpdateCheque(c.Request.Context(), chequeID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update cheque")
		return
	}

	c.JSON(http.StatusOK, dto.ToChequeResponse(cheque))
}

func (h *chequeHandler) updateChequeStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID := c.Param("chequeID")

	statusReq := dto.UpdateChequeStatusRequest{}
	if err := c.ShouldBindJSON(&statusReq); err != nil {
		logger.Error("Failed to bind JSON for updateChequeStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cheque, err := h.chequeService.UpdateChequeStatus(c.Request.Context(), chequeID, statusReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update cheque status")
		return
	}

	c.JSON(http.StatusOK, dto.ToChequeResponse(cheque))
}

func (h *chequeHandler) deleteCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	chequeID := c.Param("chequeID")

	if err := h.chequeService.DeleteCheque(c.Request.Context(), chequeID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete cheque")
		return
	}

	logger.Info("Cheque deleted", slog.String("cheque_id", chequeID))
	c.Status(http.StatusNoContent)
}

// registerChequeRoutes registers cheque specific routes.
func registerChequeRoutes(group *gin.RouterGroup, chequeService ports.ChequeSvcFacade) {
	h := newChequeHandler(chequeService)

	cheques := group.Group("/cheques")
	{
		cheques.POST("", h.createCheque)
		cheques.GET("", h.listCheques)
		cheques.GET("/:chequeID", h.getCheque)
		cheques.PUT("/:chequeID", h.updateCheque)
		cheques.PATCH("/:chequeID/status", h.updateChequeStatus)
		cheques.DELETE("/:chequeID", h.deleteCheque)
	}
}

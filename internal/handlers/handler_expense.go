package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// expenseHandler handles HTTP requests related to supplier expenses.
type expenseHandler struct {
	expenseService ports.ExpenseSvcFacade
}

func newExpenseHandler(expenseService ports.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: expenseService}
}

func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateExpenseRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create expense")
		return
	}

	logger.Info("Expense created successfully", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListExpensesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listExpenses", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list expenses")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}

func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	updateReq := dto.UpdateExpenseRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), expenseID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	deleterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID, deleterUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete expense")
		return
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	c.Status(http.StatusNoContent)
}

func (h *expenseHandler) deleteAllExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	deleterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	deleted, err := h.expenseService.DeleteAllExpenses(c.Request.Context(), deleterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete expenses")
		return
	}

	logger.Info("All expenses deleted", slog.Int64("count", deleted))
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// registerExpenseRoutes registers expense specific routes.
func registerExpenseRoutes(group *gin.RouterGroup, expenseService ports.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := group.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.DELETE("", h.deleteAllExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}

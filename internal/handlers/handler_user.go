package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService ports.UserSvcFacade
}

func newUserHandler(userService ports.UserSvcFacade) *userHandler {
	return &userHandler{userService: userService}
}

func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateUserRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create user")
		return
	}

	logger.Info("User created successfully", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	users, err := h.userService.ListUsers(c.Request.Context(), c.Query("companyID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	updateReq := dto.UpdateUserRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete user")
		return
	}

	logger.Info("User deleted", slog.String("user_id", userID))
	c.Status(http.StatusNoContent)
}

// registerUserRoutes registers user specific routes.
func registerUserRoutes(group *gin.RouterGroup, userService ports.UserSvcFacade) {
	h := newUserHandler(userService)

	users := group.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:userID", h.getUser)
		users.PUT("/:userID", h.updateUser)
		users.DELETE("/:userID", h.deleteUser)
	}
}

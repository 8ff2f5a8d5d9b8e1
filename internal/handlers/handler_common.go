package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// bindErrorMessage renders a binding failure. Field validation failures name
// the offending fields and rules; malformed payloads get the fallback only.
func bindErrorMessage(err error, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fallback
	}
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag())
	}
	return fallback + ": " + strings.Join(fields, ", ")
}

// respondServiceError maps service errors to HTTP status codes. Unclassified
// errors are logged and returned as a generic 500 so internals never leak.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failureMsg})
	}
}

// requireUserID pulls the authenticated user ID from the context or aborts with
// 401. Routes behind the auth middleware always have it set.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

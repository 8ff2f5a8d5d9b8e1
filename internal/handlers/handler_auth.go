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

// authHandler handles authentication related requests.
type authHandler struct {
	authService ports.AuthSvcFacade
}

func newAuthHandler(authService ports.AuthSvcFacade) *authHandler {
	return &authHandler{authService: authService}
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	loginReq := dto.LoginRequest{}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		logger.Error("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), loginReq)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerAuthRoutes sets up the public authentication routes. Login is rate
// limited per client IP.
func registerAuthRoutes(r *gin.Engine, authService ports.AuthSvcFacade, rateFormat string) {
	h := newAuthHandler(authService)

	rate, err := limiter.NewRateFromFormatted(rateFormat)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// companyHandler handles HTTP requests related to tenant companies.
type companyHandler struct {
	companyService ports.CompanySvcFacade
}

func newCompanyHandler(companyService ports.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: companyService}
}

func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateCompanyRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create company")
		return
	}

	logger.Info("Company created successfully", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve company")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListCompaniesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listCompanies", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid query parameters")})
		return
	}

	companies, err := h.companyService.ListCompanies(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list companies")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponses(companies))
}

func (h *companyHandler) updateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	updateReq := dto.UpdateCompanyRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	updaterUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), companyID, updateReq, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update company")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

func (h *companyHandler) authorizeUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	authReq := dto.AuthorizeUserRequest{}
	if err := c.ShouldBindJSON(&authReq); err != nil {
		logger.Error("Failed to bind JSON for authorizeUser", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err, "Invalid request format")})
		return
	}

	company, err := h.companyService.AuthorizeUser(c.Request.Context(), companyID, authReq)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to authorize user")
		return
	}

	logger.Info("User authorized for company", slog.String("company_id", companyID), slog.String("user_id", authReq.UserID))
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

func (h *companyHandler) deauthorizeUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	userID := c.Param("userID")

	company, err := h.companyService.DeauthorizeUser(c.Request.Context(), companyID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to deauthorize user")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

func (h *companyHandler) deleteCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	if err := h.companyService.DeleteCompany(c.Request.Context(), companyID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete company")
		return
	}

	logger.Info("Company deleted", slog.String("company_id", companyID))
	c.Status(http.StatusNoContent)
}

// registerCompanyRoutes registers company specific routes.
func registerCompanyRoutes(group *gin.RouterGroup, companyService ports.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := group.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
		companies.GET("/:companyID", h.getCompany)
		companies.PUT("/:companyID", h.updateCompany)
		companies.POST("/:companyID/users", h.authorizeUser)
		companies.DELETE("/:companyID/users/:userID", h.deauthorizeUser)
		companies.DELETE("/:companyID", h.deleteCompany)
	}
}

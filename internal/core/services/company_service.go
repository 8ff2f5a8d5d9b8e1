package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// companyService provides tenant company operations. Subscription status is
// rederived from the end date before every persist so an expired company can
// never be written back as active.
type companyService struct {
	companyRepo ports.CompanyRepository
	userRepo    ports.UserRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo ports.CompanyRepository, userRepo ports.UserRepository) ports.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo, userRepo: userRepo}
}

var _ ports.CompanySvcFacade = (*companyService)(nil)

func applySettingsOverrides(base domain.CompanySettings, req *dto.CompanySettingsRequest) domain.CompanySettings {
	if req == nil {
		return base
	}
	if req.Theme != nil {
		base.Theme = *req.Theme
	}
	if req.Currency != nil {
		base.Currency = *req.Currency
	}
	if req.Language != nil {
		base.Language = *req.Language
	}
	if req.Timezone != nil {
		base.Timezone = *req.Timezone
	}
	if req.InvoicePrefix != nil {
		base.InvoicePrefix = *req.InvoicePrefix
	}
	if req.FiscalYearStart != nil {
		base.FiscalYearStart = *req.FiscalYearStart
	}
	return base
}

func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	status := domain.SubscriptionActive
	if req.SubscriptionType == "" || req.SubscriptionType == "trial" {
		status = domain.SubscriptionTrial
	}
	c := domain.Company{
		CompanyID:           uuid.NewString(),
		Name:                req.Name,
		Logo:                req.Logo,
		Address:             req.Address,
		RegistrationDate:    now,
		SubscriptionEndDate: req.SubscriptionEndDate,
		SubscriptionType:    req.SubscriptionType,
		SubscriptionStatus:  status,
		ContactEmail:        req.ContactEmail,
		ContactPhone:        req.ContactPhone,
		Website:             req.Website,
		TaxNumber:           req.TaxNumber,
		Notes:               req.Notes,
		Settings:            applySettingsOverrides(domain.DefaultCompanySettings(), req.Settings),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	c.RefreshSubscriptionStatus(now)

	if err := s.companyRepo.SaveCompany(ctx, c); err != nil {
		logger.Error("failed to save company", slog.String("company_id", c.CompanyID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("company created", slog.String("company_id", c.CompanyID), slog.String("name", c.Name))
	return &c, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	c, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	c.RefreshSubscriptionStatus(time.Now().UTC())
	return c, nil
}

func (s *companyService) ListCompanies(ctx context.Context, params dto.ListCompaniesParams) ([]domain.Company, error) {
	now := time.Now().UTC()

	var companies []domain.Company
	var err error
	if params.ExpiringWithinDays > 0 {
		before := now.Add(time.Duration(params.ExpiringWithinDays) * 24 * time.Hour)
		companies, err = s.companyRepo.ListExpiringCompanies(ctx, before)
	} else {
		companies, err = s.companyRepo.ListCompanies(ctx)
	}
	if err != nil {
		return nil, err
	}
	for i := range companies {
		companies[i].RefreshSubscriptionStatus(now)
	}
	return companies, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, updaterUserID string) (*domain.Company, error) {
	c, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Logo != nil {
		c.Logo = *req.Logo
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.SubscriptionEndDate != nil {
		c.SubscriptionEndDate = *req.SubscriptionEndDate
		if !c.SubscriptionEndDate.Before(time.Now().UTC()) && c.SubscriptionStatus == domain.SubscriptionExpired {
			c.SubscriptionStatus = domain.SubscriptionActive
		}
	}
	if req.SubscriptionType != nil {
		c.SubscriptionType = *req.SubscriptionType
	}
	if req.ContactEmail != nil {
		c.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		c.ContactPhone = *req.ContactPhone
	}
	if req.Website != nil {
		c.Website = *req.Website
	}
	if req.TaxNumber != nil {
		c.TaxNumber = *req.TaxNumber
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	c.Settings = applySettingsOverrides(c.Settings, req.Settings)

	now := time.Now().UTC()
	c.RefreshSubscriptionStatus(now)
	c.LastUpdatedAt = now
	c.LastUpdatedBy = updaterUserID

	if err := s.companyRepo.UpdateCompany(ctx, *c); err != nil {
		return nil, err
	}
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

func (s *companyService) AuthorizeUser(ctx context.Context, companyID string, req dto.AuthorizeUserRequest) (*domain.Company, error) {
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if err := s.companyRepo.AddAuthorizedUser(ctx, companyID, req.UserID); err != nil {
		return nil, err
	}
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

func (s *companyService) DeauthorizeUser(ctx context.Context, companyID string, userID string) (*domain.Company, error) {
	if err := s.companyRepo.RemoveAuthorizedUser(ctx, companyID, userID); err != nil {
		return nil, err
	}
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

func (s *companyService) DeleteCompany(ctx context.Context, companyID string) error {
	return s.companyRepo.DeleteCompany(ctx, companyID)
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/core/services"
	"github.com/bizflow/erp_backend/internal/dto"
)

type CompanyServiceTestSuite struct {
	suite.Suite
	companyRepo *MockCompanyRepository
	userRepo    *MockUserRepository
	service     ports.CompanySvcFacade
	ctx         context.Context
}

func (s *CompanyServiceTestSuite) SetupTest() {
	s.companyRepo = new(MockCompanyRepository)
	s.userRepo = new(MockUserRepository)
	s.service = services.NewCompanyService(s.companyRepo, s.userRepo)
	s.ctx = context.Background()
}

func (s *CompanyServiceTestSuite) TestCreateCompany_EmptyPlanStartsTrial() {
	s.companyRepo.On("SaveCompany", s.ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.SubscriptionStatus == domain.SubscriptionTrial && c.Name == "Acme Trading"
	})).Return(nil).Once()

	c, err := s.service.CreateCompany(s.ctx, dto.CreateCompanyRequest{
		Name:                "Acme Trading",
		SubscriptionEndDate: time.Now().UTC().Add(90 * 24 * time.Hour),
	}, "admin-1")

	s.Require().NoError(err)
	s.Equal(domain.SubscriptionTrial, c.SubscriptionStatus)
	s.companyRepo.AssertExpectations(s.T())
}

func (s *CompanyServiceTestSuite) TestListCompanies_ExpiringFilterUsesWindow() {
	now := time.Now().UTC()
	expiring := []domain.Company{{
		CompanyID:           "comp-1",
		Name:                "Acme Trading",
		SubscriptionStatus:  domain.SubscriptionActive,
		SubscriptionEndDate: now.Add(3 * 24 * time.Hour),
	}}
	s.companyRepo.On("ListExpiringCompanies", s.ctx, mock.MatchedBy(func(before time.Time) bool {
		// A 7 day window resolves to a cutoff 7 days out.
		return before.After(now.Add(6*24*time.Hour)) && before.Before(now.Add(8*24*time.Hour))
	})).Return(expiring, nil).Once()

	companies, err := s.service.ListCompanies(s.ctx, dto.ListCompaniesParams{ExpiringWithinDays: 7})

	s.Require().NoError(err)
	s.Require().Len(companies, 1)
	s.Equal("comp-1", companies[0].CompanyID)
	s.Equal(domain.SubscriptionActive, companies[0].SubscriptionStatus)
	s.companyRepo.AssertNotCalled(s.T(), "ListCompanies", mock.Anything)
	s.companyRepo.AssertExpectations(s.T())
}

func (s *CompanyServiceTestSuite) TestListCompanies_NoFilterRefreshesStatus() {
	all := []domain.Company{{
		CompanyID:           "comp-2",
		SubscriptionStatus:  domain.SubscriptionActive,
		SubscriptionEndDate: time.Now().UTC().Add(-24 * time.Hour),
	}}
	s.companyRepo.On("ListCompanies", s.ctx).Return(all, nil).Once()

	companies, err := s.service.ListCompanies(s.ctx, dto.ListCompaniesParams{})

	s.Require().NoError(err)
	s.Require().Len(companies, 1)
	// A lapsed end date reads back as expired even before any write.
	s.Equal(domain.SubscriptionExpired, companies[0].SubscriptionStatus)
	s.companyRepo.AssertNotCalled(s.T(), "ListExpiringCompanies", mock.Anything, mock.Anything)
}

func TestCompanyService(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}

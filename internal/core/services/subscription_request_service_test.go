package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/core/services"
	"github.com/bizflow/erp_backend/internal/dto"
)

type SubscriptionRequestServiceTestSuite struct {
	suite.Suite
	requestRepo *MockSubscriptionRequestRepository
	companyRepo *MockCompanyRepository
	service     ports.SubscriptionRequestSvcFacade
	ctx         context.Context
}

func (s *SubscriptionRequestServiceTestSuite) SetupTest() {
	s.requestRepo = new(MockSubscriptionRequestRepository)
	s.companyRepo = new(MockCompanyRepository)
	s.service = services.NewSubscriptionRequestService(s.requestRepo, s.companyRepo)
	s.ctx = context.Background()
}

func (s *SubscriptionRequestServiceTestSuite) pendingRequest() *domain.SubscriptionRequest {
	return &domain.SubscriptionRequest{
		RequestID:      "req-1",
		CompanyName:    "Acme Trading",
		CompanyAvatar:  "https://cdn.example.com/acme.png",
		ContactName:    "Omar Haddad",
		Email:          "omar@acme.example",
		Phone:          "+962790000000",
		Plan:           "premium",
		AdditionalInfo: "needs two branches",
		Status:         domain.RequestPending,
	}
}

func (s *SubscriptionRequestServiceTestSuite) TestCreateRequest_StartsPending() {
	s.requestRepo.On("SaveRequest", s.ctx, mock.MatchedBy(func(r domain.SubscriptionRequest) bool {
		return r.Status == domain.RequestPending && r.CompanyName == "Acme Trading" && r.RequestID != ""
	})).Return(nil).Once()

	r, err := s.service.CreateRequest(s.ctx, dto.CreateSubscriptionRequestRequest{
		CompanyName: "Acme Trading",
		ContactName: "Omar Haddad",
		Email:       "omar@acme.example",
	})

	s.Require().NoError(err)
	s.Equal(domain.RequestPending, r.Status)
	// Public submissions carry no creator identity.
	s.Empty(r.CreatedBy)
	s.requestRepo.AssertExpectations(s.T())
}

func (s *SubscriptionRequestServiceTestSuite) TestProcessRequest_ApprovalProvisionsCompany() {
	req := s.pendingRequest()
	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(req, nil).Once()
	s.companyRepo.On("SaveCompany", s.ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.Name == "Acme Trading" &&
			c.Logo == "https://cdn.example.com/acme.png" &&
			c.SubscriptionType == "premium" &&
			c.SubscriptionStatus == domain.SubscriptionTrial &&
			c.Notes == "needs two branches" &&
			c.SubscriptionEndDate.After(time.Now().UTC().Add(29*24*time.Hour))
	})).Return(nil).Once()
	s.requestRepo.On("UpdateRequestStatus", s.ctx, "req-1", domain.RequestApproved, "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	approved := s.pendingRequest()
	approved.Status = domain.RequestApproved
	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(approved, nil).Once()

	r, err := s.service.ProcessRequest(s.ctx, "req-1", dto.ProcessSubscriptionRequestRequest{Status: "approved"}, "admin-1")

	s.Require().NoError(err)
	s.Equal(domain.RequestApproved, r.Status)
	s.companyRepo.AssertExpectations(s.T())
	s.requestRepo.AssertExpectations(s.T())
}

func (s *SubscriptionRequestServiceTestSuite) TestProcessRequest_FailedProvisioningLeavesPending() {
	req := s.pendingRequest()
	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(req, nil).Once()
	s.companyRepo.On("SaveCompany", s.ctx, mock.AnythingOfType("domain.Company")).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.ProcessRequest(s.ctx, "req-1", dto.ProcessSubscriptionRequestRequest{Status: "approved"}, "admin-1")

	s.Error(err)
	// The status flip never happens, so the request stays retryable.
	s.requestRepo.AssertNotCalled(s.T(), "UpdateRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *SubscriptionRequestServiceTestSuite) TestProcessRequest_RejectionSkipsProvisioning() {
	req := s.pendingRequest()
	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(req, nil).Once()
	s.requestRepo.On("UpdateRequestStatus", s.ctx, "req-1", domain.RequestRejected, "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	rejected := s.pendingRequest()
	rejected.Status = domain.RequestRejected
	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(rejected, nil).Once()

	r, err := s.service.ProcessRequest(s.ctx, "req-1", dto.ProcessSubscriptionRequestRequest{Status: "rejected"}, "admin-1")

	s.Require().NoError(err)
	s.Equal(domain.RequestRejected, r.Status)
	s.companyRepo.AssertNotCalled(s.T(), "SaveCompany", mock.Anything, mock.Anything)
}

func (s *SubscriptionRequestServiceTestSuite) TestProcessRequest_AlreadyProcessed() {
	req := s.pendingRequest()
	req.Status = domain.RequestApproved
	s.requestRepo.On("FindRequestByID", s.ctx, "req-1").Return(req, nil).Once()

	_, err := s.service.ProcessRequest(s.ctx, "req-1", dto.ProcessSubscriptionRequestRequest{Status: "rejected"}, "admin-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.companyRepo.AssertNotCalled(s.T(), "SaveCompany", mock.Anything, mock.Anything)
}

func (s *SubscriptionRequestServiceTestSuite) TestListRequests_RejectsUnknownStatus() {
	_, err := s.service.ListRequests(s.ctx, dto.ListSubscriptionRequestsParams{Status: "archived"})

	s.ErrorIs(err, apperrors.ErrValidation)
	s.requestRepo.AssertNotCalled(s.T(), "ListRequests", mock.Anything, mock.Anything)
}

func TestSubscriptionRequestService(t *testing.T) {
	suite.Run(t, new(SubscriptionRequestServiceTestSuite))
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// trialSubscriptionPeriod is the subscription window granted to a company
// provisioned from an approved signup request.
const trialSubscriptionPeriod = 30 * 24 * time.Hour

// subscriptionRequestService reviews tenant signup requests. Approval
// provisions the company; a request is processed at most once.
type subscriptionRequestService struct {
	requestRepo ports.SubscriptionRequestRepository
	companyRepo ports.CompanyRepository
}

// NewSubscriptionRequestService creates a new SubscriptionRequestService.
func NewSubscriptionRequestService(requestRepo ports.SubscriptionRequestRepository, companyRepo ports.CompanyRepository) ports.SubscriptionRequestSvcFacade {
	return &subscriptionRequestService{requestRepo: requestRepo, companyRepo: companyRepo}
}

var _ ports.SubscriptionRequestSvcFacade = (*subscriptionRequestService)(nil)

func (s *subscriptionRequestService) CreateRequest(ctx context.Context, req dto.CreateSubscriptionRequestRequest) (*domain.SubscriptionRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	r := domain.SubscriptionRequest{
		RequestID:      uuid.NewString(),
		CompanyName:    req.CompanyName,
		CompanyAvatar:  req.CompanyAvatar,
		ContactName:    req.ContactName,
		Email:          req.Email,
		Phone:          req.Phone,
		Country:        req.Country,
		CompanySize:    req.CompanySize,
		Industry:       req.Industry,
		Plan:           req.Plan,
		AdditionalInfo: req.AdditionalInfo,
		Status:         domain.RequestPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.requestRepo.SaveRequest(ctx, r); err != nil {
		logger.Error("failed to save subscription request", slog.String("request_id", r.RequestID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("subscription request received", slog.String("request_id", r.RequestID), slog.String("company_name", r.CompanyName))
	return &r, nil
}

func (s *subscriptionRequestService) GetRequestByID(ctx context.Context, requestID string) (*domain.SubscriptionRequest, error) {
	return s.requestRepo.FindRequestByID(ctx, requestID)
}

func (s *subscriptionRequestService) ListRequests(ctx context.Context, params dto.ListSubscriptionRequestsParams) ([]domain.SubscriptionRequest, error) {
	if params.Status != "" && !domain.ValidRequestStatus(params.Status) {
		return nil, fmt.Errorf("%w: unknown request status %q", apperrors.ErrValidation, params.Status)
	}
	return s.requestRepo.ListRequests(ctx, params.Status)
}

// ProcessRequest approves or rejects a pending request. Approval provisions the
// tenant company before the request status flips, so a failed provisioning
// leaves the request pending and retryable.
func (s *subscriptionRequestService) ProcessRequest(ctx context.Context, requestID string, req dto.ProcessSubscriptionRequestRequest, processorUserID string) (*domain.SubscriptionRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	r, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.RequestPending {
		return nil, fmt.Errorf("%w: request already %s", apperrors.ErrConflict, r.Status)
	}

	now := time.Now().UTC()
	status := domain.RequestStatus(req.Status)
	if status == domain.RequestApproved {
		c := domain.Company{
			CompanyID:           uuid.NewString(),
			Name:                r.CompanyName,
			Logo:                r.CompanyAvatar,
			RegistrationDate:    now,
			SubscriptionEndDate: now.Add(trialSubscriptionPeriod),
			SubscriptionType:    r.Plan,
			SubscriptionStatus:  domain.SubscriptionTrial,
			ContactEmail:        r.Email,
			ContactPhone:        r.Phone,
			Notes:               r.AdditionalInfo,
			Settings:            domain.DefaultCompanySettings(),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     processorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: processorUserID,
			},
		}
		if err := s.companyRepo.SaveCompany(ctx, c); err != nil {
			logger.Error("failed to provision company", slog.String("request_id", requestID), slog.String("error", err.Error()))
			return nil, err
		}
		logger.Info("company provisioned from request", slog.String("request_id", requestID), slog.String("company_id", c.CompanyID))
	}

	if err := s.requestRepo.UpdateRequestStatus(ctx, requestID, status, processorUserID, now); err != nil {
		return nil, err
	}
	return s.requestRepo.FindRequestByID(ctx, requestID)
}

func (s *subscriptionRequestService) DeleteRequest(ctx context.Context, requestID string) error {
	return s.requestRepo.DeleteRequest(ctx, requestID)
}

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

// serviceService provides recurring-service operations. The expense-total is
// never accepted from callers; every history mutation rederives it before the
// repository writes it.
type serviceService struct {
	serviceRepo  ports.ServiceRepository
	supplierRepo ports.SupplierRepository
}

// NewServiceService creates a new ServiceService.
func NewServiceService(serviceRepo ports.ServiceRepository, supplierRepo ports.SupplierRepository) ports.ServiceSvcFacade {
	return &serviceService{serviceRepo: serviceRepo, supplierRepo: supplierRepo}
}

var _ ports.ServiceSvcFacade = (*serviceService)(nil)

func (s *serviceService) CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorUserID string) (*domain.Service, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, supplierID := range req.Providers {
		sup, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
		if err != nil {
			return nil, fmt.Errorf("provider lookup failed for %s: %w", supplierID, err)
		}
		if sup.SupplierType != domain.ServiceProvider {
			return nil, fmt.Errorf("%w: supplier %s is not a service provider", apperrors.ErrValidation, supplierID)
		}
	}

	now := time.Now().UTC()
	svc := domain.Service{
		ServiceID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Providers:   req.Providers,
		IsActive:    true,
		CompanyID:   req.CompanyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	svc.RecalculateTotalExpenses()

	if err := s.serviceRepo.SaveService(ctx, svc); err != nil {
		logger.Error("failed to save service", slog.String("service_id", svc.ServiceID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("service created", slog.String("service_id", svc.ServiceID), slog.String("name", svc.Name))
	return &svc, nil
}

func (s *serviceService) GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	return s.serviceRepo.FindServiceByID(ctx, serviceID)
}

func (s *serviceService) ListServices(ctx context.Context, params dto.ListServicesParams) ([]domain.Service, error) {
	return s.serviceRepo.ListServices(ctx, params.SupplierID, params.CompanyID, params.CreatedBy)
}

func (s *serviceService) UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, updaterUserID string) (*domain.Service, error) {
	svc, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	svc.LastUpdatedAt = time.Now().UTC()
	svc.LastUpdatedBy = updaterUserID

	if err := s.serviceRepo.UpdateService(ctx, *svc); err != nil {
		return nil, err
	}
	return s.serviceRepo.FindServiceByID(ctx, serviceID)
}

// AddExpenseRecord appends one history entry and rewrites the derived total in
// the same transaction.
func (s *serviceService) AddExpenseRecord(ctx context.Context, serviceID string, req dto.AddServiceExpenseRequest, updaterUserID string) (*domain.Service, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: expense amount must not be negative", apperrors.ErrValidation)
	}
	svc, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	for _, e := range svc.ExpenseHistory {
		if e.ExpenseID == req.ExpenseID {
			return nil, fmt.Errorf("%w: expense %s already recorded on service", apperrors.ErrDuplicate, req.ExpenseID)
		}
	}
	svc.ExpenseHistory = append(svc.ExpenseHistory, domain.ServiceExpenseEntry{
		ExpenseID:   req.ExpenseID,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	svc.RecalculateTotalExpenses()
	svc.LastUpdatedAt = time.Now().UTC()
	svc.LastUpdatedBy = updaterUserID

	if err := s.serviceRepo.ReplaceExpenseHistory(ctx, *svc); err != nil {
		logger.Error("failed to record service expense", slog.String("service_id", serviceID), slog.String("error", err.Error()))
		return nil, err
	}
	return s.serviceRepo.FindServiceByID(ctx, serviceID)
}

func (s *serviceService) RemoveExpenseRecord(ctx context.Context, serviceID string, expenseID string, updaterUserID string) (*domain.Service, error) {
	svc, err := s.serviceRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	found := false
	kept := svc.ExpenseHistory[:0]
	for _, e := range svc.ExpenseHistory {
		if e.ExpenseID == expenseID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, fmt.Errorf("%w: expense %s not recorded on service", apperrors.ErrNotFound, expenseID)
	}
	svc.ExpenseHistory = kept
	svc.RecalculateTotalExpenses()
	svc.LastUpdatedAt = time.Now().UTC()
	svc.LastUpdatedBy = updaterUserID

	if err := s.serviceRepo.ReplaceExpenseHistory(ctx, *svc); err != nil {
		return nil, err
	}
	return s.serviceRepo.FindServiceByID(ctx, serviceID)
}

func (s *serviceService) AddProvider(ctx context.Context, serviceID string, req dto.AddProviderRequest, updaterUserID string) (*domain.Service, error) {
	sup, err := s.supplierRepo.FindSupplierByID(ctx, req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("provider lookup failed: %w", err)
	}
	if sup.SupplierType != domain.ServiceProvider {
		return nil, fmt.Errorf("%w: supplier %s is not a service provider", apperrors.ErrValidation, req.SupplierID)
	}
	if err := s.serviceRepo.AddProvider(ctx, serviceID, req.SupplierID); err != nil {
		return nil, err
	}
	return s.serviceRepo.FindServiceByID(ctx, serviceID)
}

func (s *serviceService) RemoveProvider(ctx context.Context, serviceID string, supplierID string, updaterUserID string) (*domain.Service, error) {
	if err := s.serviceRepo.RemoveProvider(ctx, serviceID, supplierID); err != nil {
		return nil, err
	}
	return s.serviceRepo.FindServiceByID(ctx, serviceID)
}

func (s *serviceService) DeleteService(ctx context.Context, serviceID string) error {
	return s.serviceRepo.DeleteService(ctx, serviceID)
}

func (s *serviceService) DeleteAllServices(ctx context.Context) (int64, error) {
	return s.serviceRepo.DeleteAllServices(ctx)
}

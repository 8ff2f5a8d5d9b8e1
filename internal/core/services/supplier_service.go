package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
)

// supplierService provides supplier operations.
type supplierService struct {
	supplierRepo ports.SupplierRepository
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(supplierRepo ports.SupplierRepository) ports.SupplierSvcFacade {
	return &supplierService{supplierRepo: supplierRepo}
}

var _ ports.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplierType := domain.GoodsSupplier
	if req.SupplierType != "" {
		supplierType = domain.SupplierType(req.SupplierType)
	}

	now := time.Now().UTC()
	sup := domain.Supplier{
		SupplierID:           uuid.NewString(),
		SupplierName:         req.SupplierName,
		CompanyName:          req.CompanyName,
		SupplierType:         supplierType,
		Phone:                req.Phone,
		BalanceDue:           decimal.Zero,
		GeographicalLocation: req.GeographicalLocation,
		Location:             req.Location,
		Notes:                req.Notes,
		CompanyID:            req.CompanyID,
		Version:              1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.supplierRepo.SaveSupplier(ctx, sup); err != nil {
		logger.Error("failed to save supplier", slog.String("supplier_id", sup.SupplierID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("supplier created", slog.String("supplier_id", sup.SupplierID))
	return &sup, nil
}

func (s *supplierService) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	return s.supplierRepo.FindSupplierByID(ctx, supplierID)
}

func (s *supplierService) ListSuppliers(ctx context.Context, companyID string) ([]domain.Supplier, error) {
	return s.supplierRepo.ListSuppliers(ctx, companyID)
}

func (s *supplierService) UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, updaterUserID string) (*domain.Supplier, error) {
	sup, err := s.supplierRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if req.Version != 0 {
		sup.Version = req.Version
	}
	if req.SupplierName != nil {
		sup.SupplierName = *req.SupplierName
	}
	if req.CompanyName != nil {
		sup.CompanyName = *req.CompanyName
	}
	if req.SupplierType != nil {
		sup.SupplierType = domain.SupplierType(*req.SupplierType)
	}
	if req.Phone != nil {
		sup.Phone = *req.Phone
	}
	if req.GeographicalLocation != nil {
		sup.GeographicalLocation = *req.GeographicalLocation
	}
	if req.Location != nil {
		sup.Location = *req.Location
	}
	if req.Notes != nil {
		sup.Notes = *req.Notes
	}
	sup.LastUpdatedAt = time.Now().UTC()
	sup.LastUpdatedBy = updaterUserID

	if err := s.supplierRepo.UpdateSupplier(ctx, *sup); err != nil {
		return nil, err
	}
	return s.supplierRepo.FindSupplierByID(ctx, supplierID)
}

func (s *supplierService) DeleteSupplier(ctx context.Context, supplierID string) error {
	return s.supplierRepo.DeleteSupplier(ctx, supplierID)
}

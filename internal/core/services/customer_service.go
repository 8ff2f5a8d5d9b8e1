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

// customerService provides customer operations. Balance mutations never happen
// here; they ride along inside invoice and payment repository transactions.
type customerService struct {
	customerRepo ports.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo ports.CustomerRepository) ports.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ ports.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	c := domain.Customer{
		CustomerID:           uuid.NewString(),
		CustomerName:         req.CustomerName,
		CompanyName:          req.CompanyName,
		CustomerType:         req.CustomerType,
		Phone:                req.Phone,
		BalanceDue:           decimal.Zero,
		GeographicalLocation: req.GeographicalLocation,
		Location:             req.Location,
		Notes:                req.Notes,
		CompanyID:            req.CompanyID,
		SalesmanID:           req.SalesmanID,
		Version:              1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, c); err != nil {
		logger.Error("failed to save customer", slog.String("customer_id", c.CustomerID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("customer created", slog.String("customer_id", c.CustomerID))
	return &c, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, companyID string) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx, companyID)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error) {
	c, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if req.Version != 0 {
		c.Version = req.Version
	}
	if req.CustomerName != nil {
		c.CustomerName = *req.CustomerName
	}
	if req.CompanyName != nil {
		c.CompanyName = *req.CompanyName
	}
	if req.CustomerType != nil {
		c.CustomerType = *req.CustomerType
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.GeographicalLocation != nil {
		c.GeographicalLocation = *req.GeographicalLocation
	}
	if req.Location != nil {
		c.Location = *req.Location
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.SalesmanID != nil {
		c.SalesmanID = req.SalesmanID
	}
	c.LastUpdatedAt = time.Now().UTC()
	c.LastUpdatedBy = updaterUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *c); err != nil {
		return nil, err
	}
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	return s.customerRepo.DeleteCustomer(ctx, customerID)
}

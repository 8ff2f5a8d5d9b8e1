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
	"github.com/bizflow/erp_backend/internal/utils"
)

// orderService provides order operations. Orders share the invoice's tagged
// party rule but their amount carries no tax surcharge and they never touch
// party balances.
type orderService struct {
	orderRepo ports.OrderRepository
	userRepo  ports.UserRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo ports.OrderRepository, userRepo ports.UserRepository) ports.OrderSvcFacade {
	return &orderService{orderRepo: orderRepo, userRepo: userRepo}
}

var _ ports.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorUserID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := domain.OrderPending
	if req.Status != "" {
		status = domain.OrderStatus(req.Status)
	}

	now := time.Now().UTC()
	o := domain.Order{
		OrderID:         uuid.NewString(),
		OrderNumber:     utils.NewBusinessRef("ORD"),
		Type:            domain.InvoiceType(req.Type),
		CustomerID:      req.CustomerID,
		SupplierID:      req.SupplierID,
		CompanyID:       req.CompanyID,
		IssuedBy:        creatorUserID,
		Email:           req.Email,
		Date:            req.Date,
		DeliveryDate:    req.DeliveryDate,
		Items:           dto.ToDomainLineItems(req.Items),
		Status:          status,
		Notes:           req.Notes,
		DeliveryStatus:  domain.DeliveryPending,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryNotes:   req.DeliveryNotes,
		DriverID:        req.DriverID,
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := o.ValidateParty(); err != nil {
		return nil, err
	}
	o.CalculateTotalAmount()

	if err := s.orderRepo.SaveOrder(ctx, o); err != nil {
		logger.Error("failed to save order", slog.String("order_id", o.OrderID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("order created", slog.String("order_id", o.OrderID), slog.String("order_number", o.OrderNumber))
	return &o, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) ([]domain.Order, error) {
	if params.Status != "" && !domain.ValidOrderStatus(params.Status) {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, params.Status)
	}
	if params.DeliveryStatus != "" && !domain.ValidDeliveryStatus(params.DeliveryStatus) {
		return nil, fmt.Errorf("%w: unknown delivery status %q", apperrors.ErrValidation, params.DeliveryStatus)
	}
	if params.Type != "" && !domain.ValidInvoiceType(params.Type) {
		return nil, fmt.Errorf("%w: unknown order type %q", apperrors.ErrValidation, params.Type)
	}
	return s.orderRepo.ListOrders(ctx, ports.OrderFilter{
		Status:         params.Status,
		DeliveryStatus: params.DeliveryStatus,
		Type:           params.Type,
		CustomerID:     params.CustomerID,
		SupplierID:     params.SupplierID,
		CompanyID:      params.CompanyID,
		IssuedBy:       params.IssuedBy,
		DriverID:       params.DriverID,
	})
}

func (s *orderService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, updaterUserID string) (*domain.Order, error) {
	o, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if req.Version != 0 {
		o.Version = req.Version
	}
	if req.Email != nil {
		o.Email = *req.Email
	}
	if req.Date != nil {
		o.Date = *req.Date
	}
	if req.DeliveryDate != nil {
		o.DeliveryDate = *req.DeliveryDate
	}
	if req.Items != nil {
		o.Items = dto.ToDomainLineItems(req.Items)
		o.CalculateTotalAmount()
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	if req.DeliveryAddress != nil {
		o.DeliveryAddress = *req.DeliveryAddress
	}
	if req.DeliveryNotes != nil {
		o.DeliveryNotes = *req.DeliveryNotes
	}
	o.LastUpdatedAt = time.Now().UTC()
	o.LastUpdatedBy = updaterUserID

	if err := s.orderRepo.UpdateOrder(ctx, *o); err != nil {
		return nil, err
	}
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest, updaterUserID string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, req.Status)
	}
	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, domain.OrderStatus(req.Status), updaterUserID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

func (s *orderService) UpdateDeliveryStatus(ctx context.Context, orderID string, req dto.UpdateDeliveryStatusRequest, updaterUserID string) (*domain.Order, error) {
	if !domain.ValidDeliveryStatus(req.DeliveryStatus) {
		return nil, fmt.Errorf("%w: unknown delivery status %q", apperrors.ErrValidation, req.DeliveryStatus)
	}
	if err := s.orderRepo.UpdateDeliveryStatus(ctx, orderID, domain.DeliveryStatus(req.DeliveryStatus), updaterUserID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// AssignDriver links a driver user to the order after checking the user exists.
func (s *orderService) AssignDriver(ctx context.Context, orderID string, req dto.AssignDriverRequest, updaterUserID string) (*domain.Order, error) {
	if _, err := s.userRepo.FindUserByID(ctx, req.DriverID); err != nil {
		return nil, fmt.Errorf("driver lookup failed: %w", err)
	}
	if err := s.orderRepo.UpdateOrderDriver(ctx, orderID, req.DriverID, updaterUserID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	return s.orderRepo.DeleteOrder(ctx, orderID)
}

func (s *orderService) DeleteAllOrders(ctx context.Context) (int64, error) {
	return s.orderRepo.DeleteAllOrders(ctx)
}
